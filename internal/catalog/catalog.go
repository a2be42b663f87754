package catalog

import (
	"fmt"
	"net/url"
	"time"

	"orderhistory/internal/money"
	"orderhistory/internal/order"
	"orderhistory/internal/rules"
)

// Options are the storefront specific inputs to rule construction.
type Options struct {
	Money money.Parser
	// BaseURL resolves relative invoice and product links, links are left
	// relative when it is nil.
	BaseURL *url.URL
}

// ItemSchema holds the rule sets run once per item block.
type ItemSchema struct {
	Title      rules.RuleSet[string]
	ProductURL rules.RuleSet[string]
	Seller     rules.RuleSet[string]
	UnitPrice  rules.RuleSet[money.Money]
	Quantity   rules.RuleSet[int]
}

// Schema is every rule set used to assemble one kind of order. A rule set
// left empty is a field the kind does not have.
type Schema struct {
	Kind     order.Kind
	Identify rules.RuleSet[bool]

	ID             rules.RuleSet[string]
	Date           rules.RuleSet[time.Time]
	Total          rules.RuleSet[money.Money]
	Subtotal       rules.RuleSet[money.Money]
	Tax            rules.RuleSet[money.Money]
	GST            rules.RuleSet[money.Money]
	PST            rules.RuleSet[money.Money]
	Shipping       rules.RuleSet[money.Money]
	ShippingRefund rules.RuleSet[money.Money]
	Discount       rules.RuleSet[money.Money]
	GiftCard       rules.RuleSet[money.Money]
	Refund         rules.RuleSet[money.Money]
	InvoiceURL     rules.RuleSet[string]
	Recipient      rules.RuleSet[string]
	Payments       rules.RuleSet[[]string]

	Blocks rules.BlockSet
	Item   ItemSchema
}

type slot struct {
	name  order.Field
	field order.Field
	rules int
}

func (s *Schema) orderSlots() []slot {
	return []slot{
		{order.FieldID, s.ID.Field, len(s.ID.Rules)},
		{order.FieldDate, s.Date.Field, len(s.Date.Rules)},
		{order.FieldTotal, s.Total.Field, len(s.Total.Rules)},
		{order.FieldSubtotal, s.Subtotal.Field, len(s.Subtotal.Rules)},
		{order.FieldTax, s.Tax.Field, len(s.Tax.Rules)},
		{order.FieldGST, s.GST.Field, len(s.GST.Rules)},
		{order.FieldPST, s.PST.Field, len(s.PST.Rules)},
		{order.FieldShipping, s.Shipping.Field, len(s.Shipping.Rules)},
		{order.FieldShippingRefund, s.ShippingRefund.Field, len(s.ShippingRefund.Rules)},
		{order.FieldDiscount, s.Discount.Field, len(s.Discount.Rules)},
		{order.FieldGiftCard, s.GiftCard.Field, len(s.GiftCard.Rules)},
		{order.FieldRefund, s.Refund.Field, len(s.Refund.Rules)},
		{order.FieldInvoiceURL, s.InvoiceURL.Field, len(s.InvoiceURL.Rules)},
		{order.FieldRecipient, s.Recipient.Field, len(s.Recipient.Rules)},
		{order.FieldPayments, s.Payments.Field, len(s.Payments.Rules)},
	}
}

func (s *Schema) itemSlots() []slot {
	return []slot{
		{order.FieldTitle, s.Item.Title.Field, len(s.Item.Title.Rules)},
		{order.FieldProductURL, s.Item.ProductURL.Field, len(s.Item.ProductURL.Rules)},
		{order.FieldSeller, s.Item.Seller.Field, len(s.Item.Seller.Rules)},
		{order.FieldUnitPrice, s.Item.UnitPrice.Field, len(s.Item.UnitPrice.Rules)},
		{order.FieldQuantity, s.Item.Quantity.Field, len(s.Item.Quantity.Rules)},
	}
}

// Validate checks that the schema only registers rule sets for fields its
// kind recognises, and that every recognised field has rules.
func (s *Schema) Validate() error {
	if s.Kind != order.KindDigital && s.Kind != order.KindPhysical {
		return fmt.Errorf("schema for unsupported kind %s", s.Kind)
	}
	if len(s.Identify.Rules) == 0 {
		return fmt.Errorf("%s: no kind identification rules", s.Kind)
	}
	if len(s.Blocks.Rules) == 0 {
		return fmt.Errorf("%s: no item block rules", s.Kind)
	}
	for _, sl := range s.orderSlots() {
		inSchema := order.InSchema(s.Kind, sl.name)
		switch {
		case sl.rules > 0 && !inSchema:
			return fmt.Errorf("%s: rule set registered for %s, which is not part of the schema", s.Kind, sl.name)
		case sl.rules == 0 && inSchema:
			return fmt.Errorf("%s: rule set for %s has no rules", s.Kind, sl.name)
		case sl.rules > 0 && sl.field != sl.name:
			return fmt.Errorf("%s: rule set for %s registered as %s", s.Kind, sl.field, sl.name)
		}
	}
	for _, sl := range s.itemSlots() {
		if sl.rules == 0 {
			return fmt.Errorf("%s: item rule set for %s has no rules", s.Kind, sl.name)
		}
		if sl.field != sl.name {
			return fmt.Errorf("%s: item rule set for %s registered as %s", s.Kind, sl.field, sl.name)
		}
	}
	return nil
}

// HeaderSchema holds the rules for order cards on order history list pages.
type HeaderSchema struct {
	Cards     rules.BlockSet
	ID        rules.RuleSet[string]
	Date      rules.RuleSet[time.Time]
	Total     rules.RuleSet[money.Money]
	Recipient rules.RuleSet[string]
	DetailURL rules.RuleSet[string]
}

// Catalog is the immutable set of schemas for every known layout, shared by
// concurrent extractions.
type Catalog struct {
	schemas map[order.Kind]*Schema
	kinds   []order.Kind
	headers HeaderSchema
}

// New builds the catalog of every supported layout. It panics if a schema is
// malformed, which is a programming error.
func New(opts Options) *Catalog {
	return NewWith(
		headerSchema(opts),
		digitalSchema(opts),
		physicalSchema(opts),
	)
}

// NewWith builds a catalog from explicit schemas, tried in the order given
// when an extraction has no kind hint.
func NewWith(headers HeaderSchema, schemas ...*Schema) *Catalog {
	c := &Catalog{
		schemas: make(map[order.Kind]*Schema, len(schemas)),
		headers: headers,
	}
	for _, s := range schemas {
		err := s.Validate()
		if err != nil {
			panic(fmt.Sprintf("catalog: %v", err))
		}
		if _, exists := c.schemas[s.Kind]; exists {
			panic(fmt.Sprintf("catalog: duplicate schema for %s", s.Kind))
		}
		c.schemas[s.Kind] = s
		c.kinds = append(c.kinds, s.Kind)
	}
	if len(c.kinds) == 0 {
		panic("catalog: no schemas")
	}
	return c
}

func (c *Catalog) Schema(kind order.Kind) (*Schema, bool) {
	s, ok := c.schemas[kind]
	return s, ok
}

// Kinds returns the kinds with a schema in their default try order.
func (c *Catalog) Kinds() []order.Kind {
	return append([]order.Kind(nil), c.kinds...)
}

func (c *Catalog) Headers() HeaderSchema {
	return c.headers
}
