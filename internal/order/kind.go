package order

import (
	"fmt"
	"strings"
)

// Kind is the order subtype, each kind has its own page layouts and schema.
type Kind int

const (
	KindUnknown Kind = iota
	KindDigital
	KindPhysical
)

var kindNames = map[Kind]string{
	KindUnknown:  "unknown",
	KindDigital:  "digital",
	KindPhysical: "physical",
}

func (k Kind) String() string {
	name, ok := kindNames[k]
	if !ok {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return name
}

func ParseKind(text string) (Kind, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return KindUnknown, nil
	}
	for kind, name := range kindNames {
		if name == text {
			return kind, nil
		}
	}
	return KindUnknown, fmt.Errorf("unknown order kind %q", text)
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Field names a semantic field of an order or of a line item.
type Field string

const (
	// FieldKind is the pseudo field resolved by kind identification rules.
	FieldKind Field = "kind"

	FieldID             Field = "id"
	FieldDate           Field = "date"
	FieldTotal          Field = "total"
	FieldSubtotal       Field = "subtotal"
	FieldTax            Field = "tax"
	FieldGST            Field = "gst"
	FieldPST            Field = "pst"
	FieldShipping       Field = "shipping"
	FieldShippingRefund Field = "shipping_refund"
	FieldDiscount       Field = "discount"
	FieldGiftCard       Field = "gift_card"
	FieldRefund         Field = "refund"
	FieldInvoiceURL     Field = "invoice_url"
	FieldRecipient      Field = "recipient"
	FieldPayments       Field = "payments"

	FieldTitle      Field = "title"
	FieldProductURL Field = "product_url"
	FieldSeller     Field = "seller"
	FieldUnitPrice  Field = "unit_price"
	FieldQuantity   Field = "quantity"

	// FieldDetailURL only exists on order history list pages.
	FieldDetailURL Field = "detail_url"
)

var digitalFields = []Field{
	FieldID,
	FieldDate,
	FieldTotal,
	FieldSubtotal,
	FieldTax,
	FieldGST,
	FieldPST,
	FieldGiftCard,
	FieldRefund,
	FieldInvoiceURL,
	FieldPayments,
}

var physicalFields = []Field{
	FieldID,
	FieldDate,
	FieldTotal,
	FieldSubtotal,
	FieldTax,
	FieldGST,
	FieldPST,
	FieldShipping,
	FieldShippingRefund,
	FieldDiscount,
	FieldGiftCard,
	FieldRefund,
	FieldInvoiceURL,
	FieldRecipient,
	FieldPayments,
}

var itemFields = []Field{
	FieldTitle,
	FieldProductURL,
	FieldSeller,
	FieldUnitPrice,
	FieldQuantity,
}

// OrderFields is the schema of order-level fields for a kind, in the order
// they are resolved. Digital orders have no recipient and none of the
// shipping or Subscribe & Save rows.
func OrderFields(kind Kind) []Field {
	switch kind {
	case KindDigital:
		return append([]Field(nil), digitalFields...)
	case KindPhysical:
		return append([]Field(nil), physicalFields...)
	}
	return nil
}

// ItemFields is the schema of line item fields, shared by every kind.
func ItemFields() []Field {
	return append([]Field(nil), itemFields...)
}

// InSchema reports whether field is an order-level field of kind.
func InSchema(kind Kind, field Field) bool {
	for _, f := range OrderFields(kind) {
		if f == field {
			return true
		}
	}
	return false
}
