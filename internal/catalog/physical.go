package catalog

import (
	"time"

	"orderhistory/internal/chrono"
	"orderhistory/internal/order"
	"orderhistory/internal/rules"

	"github.com/PuerkitoBio/goquery"
)

// physical orders come in three layouts: the data-component page rolled out
// in 2025, the #orderDetails page with its #od-subtotals summary (2016 to
// 2023) and the legacy table page that only states "Total for this Order".
func physicalSchema(opts Options) *Schema {
	const (
		component = `[data-component="orderDetails"]`
		subtotals = "#od-subtotals"
		summary   = `[data-component="orderSubtotals"]`
	)

	shipping := summaryAmountExcept(opts, order.FieldShipping, shippingLabels, shippingRefundLabels, summary, subtotals)

	return &Schema{
		Kind: order.KindPhysical,
		Identify: rules.RuleSet[bool]{
			Field: order.FieldKind,
			Rules: []rules.Rule[bool]{
				{Name: "2025 order details", Query: rules.Exists(component), Parse: rules.Present},
				{Name: "order details", Query: rules.Exists("#orderDetails"), Parse: rules.Present},
				{Name: "od subtotals", Query: rules.Exists(subtotals), Parse: rules.Present},
				{Name: "order date invoice item", Query: rules.Exists(".order-date-invoice-item"), Parse: rules.Present},
				{Name: "legacy order total", Query: rules.Containing("b", "Total for this Order"), Parse: rules.Present},
			},
		},

		ID: orderID(
			rules.Rule[string]{
				Name:  "order id component",
				Query: rules.Text(`[data-component="orderId"]`),
				Parse: parseOrderID,
			},
			rules.Rule[string]{
				Name:  "order date invoice item",
				Query: rules.Text(".order-date-invoice-item bdi"),
				Parse: parseOrderID,
			},
		),
		Date: orderDate(
			rules.Rule[time.Time]{
				Name:  "order date component",
				Query: rules.Regex(`[data-component="orderDate"]`, orderDateRegex),
				Parse: chrono.FindDate,
			},
			rules.Rule[time.Time]{
				Name:  "order date invoice item",
				Query: rules.Regex(".order-date-invoice-item", orderDateRegex),
				Parse: chrono.FindDate,
			},
		),
		Total:          summaryAmount(opts, order.FieldTotal, totalLabels, summary, subtotals),
		Subtotal:       summaryAmount(opts, order.FieldSubtotal, subtotalLabels, summary, subtotals),
		Tax:            tax(opts, summary, subtotals),
		GST:            gst(opts, summary, subtotals),
		PST:            pst(opts, summary, subtotals),
		Shipping:       shipping,
		ShippingRefund: summaryAmount(opts, order.FieldShippingRefund, shippingRefundLabels, summary, subtotals),
		Discount:       summaryAmount(opts, order.FieldDiscount, discountLabels, summary, subtotals),
		GiftCard:       giftCard(opts, summary, subtotals),
		Refund:         refund(opts, summary, subtotals),
		InvoiceURL:     invoiceURL(opts),
		Payments:       payments(),
		Recipient: rules.RuleSet[string]{
			Field: order.FieldRecipient,
			Rules: []rules.Rule[string]{
				{Name: "display address full name", Query: rules.Text(".displayAddressFullName"), Parse: rules.String},
				{
					Name:  "shipping address component",
					Query: rules.Text(`[data-component="shippingAddress"] ul li:first-child`),
					Parse: rules.String,
				},
				{Name: "recipient trigger", Query: rules.Text(".recipient .trigger-text"), Parse: rules.String},
				{Name: "ship to label", Query: rules.Labelled(labelElements, recipientLabels...), Parse: rules.String},
			},
		},

		Blocks: rules.BlockSet{
			Rules: []rules.BlockRule{
				{Name: "2025 purchased items", Selector: `[data-component="purchasedItems"]`},
				{
					Name:     "fixed left grid",
					Selector: ".a-fixed-left-grid-inner",
					Keep:     hasProductLink,
				},
				{
					Name:     "legacy item row",
					Selector: `#orderDetails tr:has(a[href*="/product/"]):not(:has(tr)), tr:has(a[href*="/dp/"]):not(:has(tr))`,
				},
			},
		},
		Item: itemSchema(opts),
	}
}

func hasProductLink(block *goquery.Selection) bool {
	return block.Find(productLinks).Length() > 0
}
