package catalog

import (
	"orderhistory/internal/money"
	"orderhistory/internal/order"
	"orderhistory/internal/rules"

	"github.com/PuerkitoBio/goquery"
)

var headerTotalLabels = append([]string{"Total", "Montant total", "Summe", "Totale"}, totalLabels...)

// headerSchema covers the order cards of the order history list, every rule
// runs scoped to one card.
func headerSchema(opts Options) HeaderSchema {
	return HeaderSchema{
		Cards: rules.BlockSet{
			Rules: []rules.BlockRule{
				{Name: "order card", Selector: ".order-card, .js-order-card", Keep: hasOrderID},
				{Name: "order box group", Selector: ".a-box-group.order", Keep: hasOrderID},
				{Name: "order info box", Selector: ".order-info", Keep: hasOrderID},
			},
		},
		ID: rules.RuleSet[string]{
			Field: order.FieldID,
			Rules: []rules.Rule[string]{
				{Name: "yohtmlc order id", Query: rules.Text(`.yohtmlc-order-id span[dir="ltr"]`), Parse: parseOrderID},
				{Name: "yohtmlc order id text", Query: rules.Text(".yohtmlc-order-id"), Parse: parseOrderID},
				{Name: "order number label", Query: rules.Labelled(labelElements, orderNumberLabels...), Parse: parseOrderID},
				{Name: "orderID link parameter", Query: rules.AttrRegex(`a[href*="orderID="]`, "href", orderIDRegex), Parse: parseOrderID},
			},
		},
		Date: orderDate(),
		Total: rules.RuleSet[money.Money]{
			Field: order.FieldTotal,
			Rules: []rules.Rule[money.Money]{
				{Name: "total label", Query: rules.Labelled("span, div", headerTotalLabels...), Parse: opts.Money.Find},
			},
		},
		Recipient: rules.RuleSet[string]{
			Field: order.FieldRecipient,
			Rules: []rules.Rule[string]{
				{Name: "recipient trigger", Query: rules.Text(".recipient .trigger-text"), Parse: rules.String},
				{Name: "ship to label", Query: rules.Labelled("span, div", recipientLabels...), Parse: rules.String},
			},
		},
		DetailURL: rules.RuleSet[string]{
			Field: order.FieldDetailURL,
			Rules: []rules.Rule[string]{
				{Name: "order details link", Query: rules.Attr(`a[href*="order-details"]`, "href"), Parse: link(opts.BaseURL)},
				{Name: "order summary link", Query: rules.Attr(`a[href*="order-summary"]`, "href"), Parse: link(opts.BaseURL)},
			},
		},
	}
}

func hasOrderID(card *goquery.Selection) bool {
	return orderIDRegex.MatchString(card.Text())
}
