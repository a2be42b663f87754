package catalog

import (
	"regexp"

	"orderhistory/internal/money"
	"orderhistory/internal/order"
	"orderhistory/internal/rules"

	"github.com/PuerkitoBio/goquery"
)

const productLinks = `a[href*="/dp/"], a[href*="/gp/product/"]`

var (
	qtyRegex   = regexp.MustCompile(`(?i)(?:Qty|Quantity|Quantité|Menge|Anzahl|Cantidad|Quantità)\s*:\s*(\d+)`)
	ofRegex    = regexp.MustCompile(`\b(\d+)\s+(?:of|x)\s*:`)
	titleClean = regexp.MustCompile(`^\d+\s+of:\s*`)
)

// keepInnermost drops blocks that contain another block with a product link,
// the inner one is the item.
func keepInnermost(block *goquery.Selection) bool {
	return block.Find(".a-box " + `a[href*="/dp/"]`).Length() == 0
}

func itemSchema(opts Options) ItemSchema {
	return ItemSchema{
		Title: rules.RuleSet[string]{
			Field: order.FieldTitle,
			Rules: []rules.Rule[string]{
				{Name: "item title component", Query: rules.Text(`[data-component="itemTitle"]`), Parse: rules.String},
				{Name: "product link text", Query: rules.Text(productLinks), Parse: rules.String},
				{Name: "legacy product link text", Query: rules.Text(`a[href*="/product/"]`), Parse: rules.String},
				{
					Name:  "italic title",
					Query: rules.Text("i"),
					Parse: func(raw string) (string, bool) {
						return rules.String(titleClean.ReplaceAllString(raw, ""))
					},
				},
			},
		},
		ProductURL: rules.RuleSet[string]{
			Field: order.FieldProductURL,
			Rules: []rules.Rule[string]{
				{Name: "item title link", Query: rules.Attr(`[data-component="itemTitle"] a`, "href"), Parse: productLink(opts.BaseURL)},
				{Name: "product link", Query: rules.Attr(productLinks, "href"), Parse: productLink(opts.BaseURL)},
				{Name: "legacy product link", Query: rules.Attr(`a[href*="/product/"]`, "href"), Parse: productLink(opts.BaseURL)},
			},
		},
		Seller: rules.RuleSet[string]{
			Field: order.FieldSeller,
			Rules: []rules.Rule[string]{
				{
					Name:  "ordered merchant component",
					Query: rules.Labelled(`[data-component="orderedMerchant"] span`, sellerLabels...),
					Parse: rules.String,
				},
				{
					Name:  "sold by label",
					Query: rules.Labelled("span, div, td, li", sellerLabels...),
					Parse: rules.String,
				},
			},
		},
		UnitPrice: rules.RuleSet[money.Money]{
			Field: order.FieldUnitPrice,
			Rules: []rules.Rule[money.Money]{
				{Name: "unit price component", Query: rules.Text(`[data-component="unitPrice"] .a-offscreen`), Parse: opts.Money.Find},
				{Name: "price color", Query: rules.Text(".a-color-price"), Parse: opts.Money.Find},
				{Name: "price class", Query: rules.Text(".price, .item-price"), Parse: opts.Money.Find},
				{Name: "right aligned cell", Query: rules.Text(`td[align="right"]`), Parse: opts.Money.Find},
			},
		},
		Quantity: rules.RuleSet[int]{
			Field: order.FieldQuantity,
			Rules: []rules.Rule[int]{
				{Name: "item view qty", Query: rules.Text(".item-view-qty, .od-item-view-qty"), Parse: rules.Positive},
				{Name: "quantity component", Query: rules.Text(`[data-component="quantity"]`), Parse: rules.Positive},
				{Name: "qty label", Query: rules.Page(qtyRegex), Parse: rules.Positive},
				{Name: "n of prefix", Query: rules.Page(ofRegex), Parse: rules.Positive},
			},
		},
	}
}
