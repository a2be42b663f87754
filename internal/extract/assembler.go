package extract

import (
	"context"

	"orderhistory/internal/catalog"
	"orderhistory/internal/order"
	"orderhistory/internal/rules"
	"orderhistory/internal/telemetry"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
)

type state int

const (
	stateStart state = iota
	stateIdentifyingKind
	stateResolvingFields
	stateValidating
	stateDone
)

func (s state) String() string {
	switch s {
	case stateStart:
		return "start"
	case stateIdentifyingKind:
		return "identifying_kind"
	case stateResolvingFields:
		return "resolving_fields"
	case stateValidating:
		return "validating"
	case stateDone:
		return "done"
	}
	return "invalid"
}

// assembler builds at most one order of a single kind from a parsed page.
// It moves strictly forward through its states and never retries, every
// call to run starts from a fresh assembler.
type assembler struct {
	api    telemetry.API
	schema *catalog.Schema
	root   *goquery.Selection

	state  state
	order  *order.Order
	report *order.Report
	// noMatch records why the assembler gave up, empty on success.
	noMatch string
}

func newAssembler(api telemetry.API, schema *catalog.Schema, root *goquery.Selection) *assembler {
	return &assembler{
		api:    api,
		schema: schema,
		root:   root,
		state:  stateStart,
	}
}

// attempt is the outcome of one assembler run. order is nil when the page
// did not yield an order of the attempted kind.
type attempt struct {
	kind    order.Kind
	order   *order.Order
	report  *order.Report
	noMatch string
}

func (a *assembler) run(ctx context.Context) attempt {
	_, span := tracer.Start(ctx, "assembler.run")
	defer span.End()
	span.SetAttributes(attribute.String("kind", a.schema.Kind.String()))

	for a.state != stateDone {
		switch a.state {
		case stateStart:
			a.report = &order.Report{Kind: a.schema.Kind}
			a.state = stateIdentifyingKind
		case stateIdentifyingKind:
			a.identifyKind()
		case stateResolvingFields:
			a.resolveFields()
		case stateValidating:
			a.validate()
		}
	}

	if a.noMatch != "" {
		span.SetAttributes(attribute.String("no_match", a.noMatch))
		a.api.ReportDebug("assembler: no match", a.schema.Kind.String(), a.noMatch)
	}
	return attempt{
		kind:    a.schema.Kind,
		order:   a.order,
		report:  a.report,
		noMatch: a.noMatch,
	}
}

func (a *assembler) fail(reason string) {
	a.order = nil
	a.noMatch = reason
	a.state = stateDone
}

func (a *assembler) identifyKind() {
	res := rules.Resolve(a.api, a.schema.Identify, a.root)
	if !res.Resolved {
		a.fail("kind not identified")
		return
	}
	a.report.KindRule = res.RuleName
	a.state = stateResolvingFields
}

func (a *assembler) resolveFields() {
	s := a.schema
	o := &order.Order{Kind: s.Kind}

	for _, field := range order.OrderFields(s.Kind) {
		var status order.FieldStatus
		switch field {
		case order.FieldID:
			status = resolveValue(a.api, s.ID, field, a.root, &o.ID)
		case order.FieldDate:
			status = resolveOptional(a.api, s.Date, field, a.root, &o.Date)
		case order.FieldTotal:
			status = resolveOptional(a.api, s.Total, field, a.root, &o.Total)
		case order.FieldSubtotal:
			status = resolveOptional(a.api, s.Subtotal, field, a.root, &o.Subtotal)
		case order.FieldTax:
			status = resolveOptional(a.api, s.Tax, field, a.root, &o.Tax)
		case order.FieldGST:
			status = resolveOptional(a.api, s.GST, field, a.root, &o.GST)
		case order.FieldPST:
			status = resolveOptional(a.api, s.PST, field, a.root, &o.PST)
		case order.FieldShipping:
			status = resolveOptional(a.api, s.Shipping, field, a.root, &o.Shipping)
		case order.FieldShippingRefund:
			status = resolveOptional(a.api, s.ShippingRefund, field, a.root, &o.ShippingRefund)
		case order.FieldDiscount:
			status = resolveOptional(a.api, s.Discount, field, a.root, &o.Discount)
		case order.FieldGiftCard:
			status = resolveOptional(a.api, s.GiftCard, field, a.root, &o.GiftCard)
		case order.FieldRefund:
			status = resolveOptional(a.api, s.Refund, field, a.root, &o.Refund)
		case order.FieldInvoiceURL:
			status = resolveValue(a.api, s.InvoiceURL, field, a.root, &o.InvoiceURL)
		case order.FieldRecipient:
			status = resolveValue(a.api, s.Recipient, field, a.root, &o.Recipient)
		case order.FieldPayments:
			status = resolveValue(a.api, s.Payments, field, a.root, &o.Payments)
		default:
			a.api.ReportBroken("assembler.resolve-fields", "field without resolver", string(field))
			status = order.FieldStatus{Field: field, Rule: -1}
		}
		a.report.Fields = append(a.report.Fields, status)
	}

	blocks := rules.LocateBlocks(a.api, s.Blocks, a.root)
	if len(blocks.Items) == 0 {
		a.fail("no item blocks")
		return
	}
	a.report.BlockRule = blocks.RuleName

	for row, block := range blocks.Items {
		item, itemReport := resolveItem(a.api, s.Item, row, block)
		o.Items = append(o.Items, item)
		a.report.Items = append(a.report.Items, itemReport)
	}

	a.order = o
	a.state = stateValidating
}

func (a *assembler) validate() {
	switch {
	case a.order == nil:
		a.fail("nothing assembled")
	case a.order.ID == "":
		a.fail("order id unresolved")
	case len(a.order.Items) == 0:
		a.fail("no items")
	default:
		a.state = stateDone
	}
}

func resolveItem(api telemetry.API, s catalog.ItemSchema, row int, block *goquery.Selection) (order.LineItem, order.ItemReport) {
	item := order.LineItem{Row: row, Quantity: 1}
	report := order.ItemReport{Row: row}

	for _, field := range order.ItemFields() {
		var status order.FieldStatus
		switch field {
		case order.FieldTitle:
			status = resolveValue(api, s.Title, field, block, &item.Title)
		case order.FieldProductURL:
			status = resolveValue(api, s.ProductURL, field, block, &item.ProductURL)
		case order.FieldSeller:
			status = resolveValue(api, s.Seller, field, block, &item.Seller)
		case order.FieldUnitPrice:
			status = resolveOptional(api, s.UnitPrice, field, block, &item.UnitPrice)
		case order.FieldQuantity:
			status = resolveValue(api, s.Quantity, field, block, &item.Quantity)
		default:
			api.ReportBroken("assembler.resolve-item", "field without resolver", string(field))
			status = order.FieldStatus{Field: field, Rule: -1}
		}
		report.Fields = append(report.Fields, status)
	}
	item.ASIN = catalog.ASIN(item.ProductURL)

	return item, report
}

// resolveValue stores the resolved value in dst, leaving dst untouched (and
// so at its default) when nothing resolved.
func resolveValue[T any](api telemetry.API, set rules.RuleSet[T], field order.Field, root *goquery.Selection, dst *T) order.FieldStatus {
	res := rules.Resolve(api, set, root)
	if res.Resolved {
		*dst = res.Value
	}
	return res.Status(field)
}

func resolveOptional[T any](api telemetry.API, set rules.RuleSet[T], field order.Field, root *goquery.Selection, dst **T) order.FieldStatus {
	res := rules.Resolve(api, set, root)
	if res.Resolved {
		value := res.Value
		*dst = &value
	}
	return res.Status(field)
}
