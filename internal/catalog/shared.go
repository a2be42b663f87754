package catalog

import (
	"strings"
	"time"

	"orderhistory/internal/chrono"
	"orderhistory/internal/money"
	"orderhistory/internal/order"
	"orderhistory/internal/rules"
)

// summaryAmount is the rule set for an amount shown as a labelled row of an
// order summary. scopes are tried in order, each scoped to one layout's
// summary block, before falling back to the whole page.
func summaryAmount(opts Options, field order.Field, labels []string, scopes ...string) rules.RuleSet[money.Money] {
	return summaryAmountExcept(opts, field, labels, nil, scopes...)
}

// summaryAmountExcept is summaryAmount ignoring rows whose label also
// carries one of excluded.
func summaryAmountExcept(opts Options, field order.Field, labels, excluded []string, scopes ...string) rules.RuleSet[money.Money] {
	set := rules.RuleSet[money.Money]{Field: field}
	for _, scope := range scopes {
		set.Rules = append(set.Rules, rules.Rule[money.Money]{
			Name:  scope + " label",
			Query: rules.LabelledExcept(scopeElements(scope), labels, excluded),
			Parse: opts.Money.Find,
		})
	}
	set.Rules = append(set.Rules, rules.Rule[money.Money]{
		Name:  "page label",
		Query: rules.LabelledExcept(labelElements, labels, excluded),
		Parse: opts.Money.Find,
	})
	return set
}

func tax(opts Options, scopes ...string) rules.RuleSet[money.Money] {
	return summaryAmountExcept(opts, order.FieldTax, taxLabels, taxExclusions, scopes...)
}

func gst(opts Options, scopes ...string) rules.RuleSet[money.Money] {
	return summaryAmountExcept(opts, order.FieldGST, gstLabels, taxExclusions, scopes...)
}

func pst(opts Options, scopes ...string) rules.RuleSet[money.Money] {
	return summaryAmountExcept(opts, order.FieldPST, pstLabels, taxExclusions, scopes...)
}

// payments lists the payment instruments of the order. Gift card balances
// show up as instruments of their own.
func payments() rules.RuleSet[[]string] {
	return rules.RuleSet[[]string]{
		Field: order.FieldPayments,
		Rules: []rules.Rule[[]string]{
			{
				Name:  "payment plan instrument box",
				Query: rules.TextAll(`[data-component^="viewPaymentPlanSummary"] .pmts-payments-instrument-detail-box`),
				Parse: rules.Lines,
			},
			{
				Name:  "payment instrument",
				Query: rules.TextAll(".pmts-payment-instrument"),
				Parse: rules.Lines,
			},
			{
				Name:  "payment plan summary",
				Query: rules.TextAll(`[data-component="viewPaymentPlanSummary"] span`),
				Parse: rules.Lines,
			},
		},
	}
}

// scopeElements expands to the label elements under scope.
func scopeElements(scope string) string {
	elements := strings.Split(labelElements, ", ")
	for i, el := range elements {
		elements[i] = scope + " " + el
	}
	return strings.Join(elements, ", ")
}

func orderID(scopes ...rules.Rule[string]) rules.RuleSet[string] {
	set := rules.RuleSet[string]{Field: order.FieldID}
	set.Rules = append(set.Rules, scopes...)
	set.Rules = append(set.Rules,
		rules.Rule[string]{
			Name:  "order number label",
			Query: rules.Labelled(labelElements, orderNumberLabels...),
			Parse: parseOrderID,
		},
		rules.Rule[string]{
			Name:  "orderID link parameter",
			Query: rules.AttrRegex(`a[href*="orderID="]`, "href", orderIDRegex),
			Parse: parseOrderID,
		},
		rules.Rule[string]{
			Name:  "page text",
			Query: rules.Page(orderIDRegex),
			Parse: parseOrderID,
		},
	)
	return set
}

func invoiceURL(opts Options) rules.RuleSet[string] {
	return rules.RuleSet[string]{
		Field: order.FieldInvoiceURL,
		Rules: []rules.Rule[string]{
			{Name: "invoice link", Query: rules.Attr(`a[href*="/invoice"]`, "href"), Parse: link(opts.BaseURL)},
			{Name: "invoice underscore link", Query: rules.Attr(`a[href*="_invoice"]`, "href"), Parse: link(opts.BaseURL)},
			{Name: "printable summary link", Query: rules.Attr(`a[href*="summary/print.html"]`, "href"), Parse: link(opts.BaseURL)},
			{Name: "print parameter link", Query: rules.Attr(`a[href*="print=1"]`, "href"), Parse: link(opts.BaseURL)},
		},
	}
}

func giftCard(opts Options, scopes ...string) rules.RuleSet[money.Money] {
	return summaryAmount(opts, order.FieldGiftCard, giftCardLabels, scopes...)
}

func refund(opts Options, scopes ...string) rules.RuleSet[money.Money] {
	return summaryAmount(opts, order.FieldRefund, refundLabels, scopes...)
}

func orderDate(scopes ...rules.Rule[time.Time]) rules.RuleSet[time.Time] {
	set := rules.RuleSet[time.Time]{Field: order.FieldDate}
	set.Rules = append(set.Rules, scopes...)
	set.Rules = append(set.Rules,
		rules.Rule[time.Time]{
			Name:  "order placed label",
			Query: rules.Labelled(labelElements, orderPlacedLabels...),
			Parse: chrono.FindDate,
		},
	)
	return set
}
