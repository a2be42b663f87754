package catalog

import (
	"time"

	"orderhistory/internal/chrono"
	"orderhistory/internal/order"
	"orderhistory/internal/rules"
)

// digital orders come in two layouts: the table based summary inside
// #digitalOrderSummaryContainer (2016 to 2020) and the data-component
// summary introduced in 2024.
func digitalSchema(opts Options) *Schema {
	const (
		container = "#digitalOrderSummaryContainer"
		component = `[data-component="digitalOrderSummary"]`
	)

	return &Schema{
		Kind: order.KindDigital,
		Identify: rules.RuleSet[bool]{
			Field: order.FieldKind,
			Rules: []rules.Rule[bool]{
				{Name: "2024 digital summary", Query: rules.Exists(component), Parse: rules.Present},
				{Name: "digital summary container", Query: rules.Exists(container), Parse: rules.Present},
				{
					Name:  "digital order heading",
					Query: rules.Containing(".orderSummary b, .orderSummary h1, .orderSummary h2", digitalOrderLabels...),
					Parse: rules.Present,
				},
			},
		},

		ID: orderID(
			rules.Rule[string]{
				Name:  "order id component",
				Query: rules.Text(component + ` [data-component="orderId"]`),
				Parse: parseOrderID,
			},
		),
		Date: orderDate(
			rules.Rule[time.Time]{
				Name:  "order date component",
				Query: rules.Text(component + ` [data-component="orderDate"]`),
				Parse: chrono.FindDate,
			},
			rules.Rule[time.Time]{
				Name:  "digital order heading",
				Query: rules.Regex(".orderSummary b, .orderSummary div, .orderSummary td", orderDateRegex),
				Parse: chrono.FindDate,
			},
		),
		Total:      summaryAmount(opts, order.FieldTotal, totalLabels, component, container),
		Subtotal:   summaryAmount(opts, order.FieldSubtotal, subtotalLabels, component, container),
		Tax:        tax(opts, component, container),
		GST:        gst(opts, component, container),
		PST:        pst(opts, component, container),
		GiftCard:   giftCard(opts, component, container),
		Refund:     refund(opts, component, container),
		InvoiceURL: invoiceURL(opts),
		Payments:   payments(),

		Blocks: rules.BlockSet{
			Rules: []rules.BlockRule{
				{Name: "2024 digital item", Selector: `[data-component="digitalItem"]`},
				{
					Name:     "digital item row",
					Selector: `tr:has(a[href*="/dp/"]):not(:has(tr)), tr:has(a[href*="/gp/product/"]):not(:has(tr))`,
				},
				{
					Name:     "ordered block",
					Selector: ".a-box:has(a[href*=\"/dp/\"])",
					Keep:     keepInnermost,
				},
			},
		},
		Item: itemSchema(opts),
	}
}
