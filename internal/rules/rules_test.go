package rules

import (
	"context"
	"regexp"
	"testing"

	"orderhistory/internal/order"
	"orderhistory/internal/telemetry"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

const summaryPage = `<html><body>
<div id="summary">
  <div class="row"><span>Order #</span><span id="order-id">204-1234567-7654321</span></div>
  <div class="row">
    <div class="col"><span>Item(s) Subtotal:</span></div>
    <div class="col"><span>£4.49</span></div>
  </div>
  <div class="row"><span>Grand Total: £5.39</span></div>
  <a class="invoice" href="/gp/invoice?orderID=204-1234567-7654321">Invoice</a>
</div>
<ul>
  <li class="item"><a href="/dp/B000000001">First</a><span class="qty">Qty: 2</span></li>
  <li class="item"><a href="/dp/B000000002">Second</a></li>
  <li class="item ad">Sponsored</li>
</ul>
</body></html>`

func parse(t *testing.T, markup string) *goquery.Selection {
	doc, err := ParseDocument(context.Background(), markup)
	require.NoError(t, err)
	return doc.Selection
}

func TestResolveFirstMatchWins(t *testing.T) {
	root := parse(t, summaryPage)

	set := RuleSet[string]{
		Field: order.FieldID,
		Rules: []Rule[string]{
			{Name: "missing", Query: Text("#nope"), Parse: String},
			{Name: "by id", Query: Text("#order-id"), Parse: String},
			{Name: "page regex", Query: Page(regexp.MustCompile(`(\d{3}-\d{7}-\d{7})`)), Parse: String},
		},
	}

	res := Resolve(nil, set, root)
	require.True(t, res.Resolved)
	require.Equal(t, "204-1234567-7654321", res.Value)
	require.Equal(t, 1, res.Rule)
	require.Equal(t, "by id", res.RuleName)

	status := res.Status(order.FieldID)
	require.Equal(t, order.FieldStatus{Field: order.FieldID, Resolved: true, Rule: 1, RuleName: "by id"}, status)
}

func TestResolveUnresolved(t *testing.T) {
	root := parse(t, summaryPage)
	res := Resolve(nil, RuleSet[string]{
		Field: order.FieldRecipient,
		Rules: []Rule[string]{{Name: "missing", Query: Text(".recipient"), Parse: String}},
	}, root)
	require.False(t, res.Resolved)
	require.Equal(t, -1, res.Rule)
	require.Equal(t, "", res.Value)
}

func TestResolveRecoversPanics(t *testing.T) {
	root := parse(t, summaryPage)
	recorder := &telemetry.Recorder{}

	res := Resolve(recorder, RuleSet[string]{
		Field: order.FieldTitle,
		Rules: []Rule[string]{
			{
				Name:  "explodes",
				Query: Text("#order-id"),
				Parse: func(string) (string, bool) { panic("unexpected shape") },
			},
			{Name: "fallback", Query: Text("#order-id"), Parse: String},
		},
	}, root)

	require.True(t, res.Resolved)
	require.Equal(t, 1, res.Rule)
	warnings := recorder.Find(telemetry.LevelWarning, report_resolver_rule)
	require.Len(t, warnings, 1)
	require.Equal(t, []any{"title", "explodes", "unexpected shape"}, warnings[0].Params)
}

func TestLabelled(t *testing.T) {
	root := parse(t, summaryPage)

	raw, ok := Labelled("span", "Item(s) Subtotal")(root)
	require.True(t, ok)
	require.Equal(t, "£4.49", raw)

	raw, ok = Labelled("span", "Grand Total")(root)
	require.True(t, ok)
	require.Equal(t, "£5.39", raw)

	_, ok = Labelled("span", "VAT")(root)
	require.False(t, ok)
}

const vatSummary = `<html><body><div id="od-subtotals">
  <div class="a-row"><div><span>Item(s) Subtotal:</span></div><div><span>£10.00</span></div></div>
  <div class="a-row"><div><span>Total before VAT:</span></div><div><span>£8.33</span></div></div>
  <div class="a-row"><div><span>VAT:</span></div><div><span>£1.67</span></div></div>
  <div class="a-row"><div><span>Grand Total:</span></div><div><span>£10.00</span></div></div>
</div></body></html>`

func TestLabelledExcept(t *testing.T) {
	root := parse(t, vatSummary)

	raw, ok := Labelled("span", "VAT")(root)
	require.True(t, ok)
	require.Equal(t, "£8.33", raw, "the first row carrying the label wins")

	raw, ok = LabelledExcept("span", []string{"VAT"}, []string{"before", "esclusa"})(root)
	require.True(t, ok)
	require.Equal(t, "£1.67", raw)

	_, ok = LabelledExcept("span", []string{"VAT"}, []string{"VAT"})(root)
	require.False(t, ok)
}

func TestTextAll(t *testing.T) {
	root := parse(t, `<html><body>
<div class="pay">Visa ending in 1234</div>
<div class="pay"> </div>
<div class="pay">Gift card</div>
<div class="pay">Visa  ending in 1234</div>
</body></html>`)

	raw, ok := TextAll(".pay")(root)
	require.True(t, ok)

	lines, ok := Lines(raw)
	require.True(t, ok)
	require.Equal(t, []string{"Visa ending in 1234", "Gift card"}, lines)

	_, ok = TextAll(".missing")(root)
	require.False(t, ok)
	_, ok = Lines("\n \n")
	require.False(t, ok)
}

func TestQueries(t *testing.T) {
	root := parse(t, summaryPage)

	raw, ok := Attr("a.invoice", "href")(root)
	require.True(t, ok)
	require.Equal(t, "/gp/invoice?orderID=204-1234567-7654321", raw)

	raw, ok = AttrRegex("a", "href", regexp.MustCompile(`orderID=([\d-]+)`))(root)
	require.True(t, ok)
	require.Equal(t, "204-1234567-7654321", raw)

	_, ok = Exists("#summary")(root)
	require.True(t, ok)

	raw, ok = Containing("div.row", "grand total")(root)
	require.True(t, ok)
	require.Equal(t, "Grand Total: £5.39", raw)

	raw, ok = First(Text("#nope"), OwnText("li.ad"))(root)
	require.True(t, ok)
	require.Equal(t, "Sponsored", raw)
}

func TestLocateBlocks(t *testing.T) {
	root := parse(t, summaryPage)

	blocks := LocateBlocks(nil, BlockSet{Rules: []BlockRule{
		{Name: "missing", Selector: ".shipment .item"},
		{
			Name:     "list items",
			Selector: "li.item",
			Keep: func(block *goquery.Selection) bool {
				return block.Find("a").Length() > 0
			},
		},
	}}, root)

	require.Equal(t, 1, blocks.Rule)
	require.Equal(t, "list items", blocks.RuleName)
	require.Len(t, blocks.Items, 2)

	qty := Resolve(nil, RuleSet[int]{
		Field: order.FieldQuantity,
		Rules: []Rule[int]{{Name: "qty", Query: Text(".qty"), Parse: Positive}},
	}, blocks.Items[0])
	require.Equal(t, 2, qty.Value)

	none := LocateBlocks(nil, BlockSet{Rules: []BlockRule{{Name: "missing", Selector: "tr.item"}}}, root)
	require.Equal(t, -1, none.Rule)
	require.Empty(t, none.Items)
}

func TestParseDocumentRejects(t *testing.T) {
	for _, markup := range []string{"", "   \n", "just some text", "<html>\x00</html>"} {
		_, err := ParseDocument(context.Background(), markup)
		require.ErrorIs(t, err, ErrUnparseable, "%q", markup)
	}
}

func TestParsers(t *testing.T) {
	seller, ok := TrimPrefix("Sold by")("Sold by: Amazon EU S.a.r.L.")
	require.True(t, ok)
	require.Equal(t, "Amazon EU S.a.r.L.", seller)

	n, ok := Positive("Qty: 3")
	require.True(t, ok)
	require.Equal(t, 3, n)

	_, ok = Positive("Qty: 0")
	require.False(t, ok)
}
