package compare

import (
	"fmt"
	"testing"

	"orderhistory/internal/money"
	"orderhistory/internal/order"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func items(titles ...string) []order.LineItem {
	out := make([]order.LineItem, len(titles))
	for i, title := range titles {
		out[i] = order.LineItem{Row: i, Title: title, Quantity: 1}
	}
	return out
}

func TestPairItems(t *testing.T) {
	testCases := []struct {
		old      []order.LineItem
		new      []order.LineItem
		expected []Pair
	}{
		{
			old: []order.LineItem{{Title: "Wolf Hall", ASIN: "B00ANM5NY4"}},
			new: []order.LineItem{{Title: "Wolf Hall (The Wolf Hall Trilogy, Book 1)", ASIN: "B00ANM5NY4"}},
			expected: []Pair{
				{Old: 0, New: 0, Correlation: 1},
			},
		},
		{
			old: items("Le Petit Prince", "Moleskine Classic Notebook"),
			new: items("Moleskine Classic Notebook", "Le Petit Prince"),
			expected: []Pair{
				{Old: 0, New: 1, Correlation: 1},
				{Old: 1, New: 0, Correlation: 1},
			},
		},
		{
			old: items("Moleskine Classic Notebook, Large"),
			new: items("Moleskine Classic Notebook, Large, Ruled, Black"),
			expected: []Pair{
				{Old: 0, New: 0},
			},
		},
		{
			old: items("Pilot G2 Retractable Pens"),
			new: items("Der Gesang der Flusskrebse"),
			expected: []Pair{
				{Old: 0, New: -1},
				{Old: -1, New: 0},
			},
		},
		{
			old:      items(),
			new:      items(),
			expected: nil,
		},
	}

	for i, test := range testCases {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			pairs := PairItems(test.old, test.new, 0.9)
			diff := cmp.Diff(test.expected, pairs, cmpopts.IgnoreFields(Pair{}, "Correlation"))
			require.Empty(t, diff)
			for j, p := range pairs {
				if test.expected[j].Correlation == 1 {
					require.Equal(t, 1.0, p.Correlation)
				}
				if p.Old >= 0 && p.New >= 0 {
					require.GreaterOrEqual(t, p.Correlation, 0.9)
				}
			}
		})
	}
}

func TestOrders(t *testing.T) {
	total := money.MustNew(currency.GBP, "5.39")
	price := money.MustNew(currency.GBP, "4.49")

	oldOrder := &order.Order{
		ID:       "D01-9960417-3589456",
		Kind:     order.KindDigital,
		Total:    &total,
		Payments: []string{"Visa ending in 1234"},
		Items: []order.LineItem{
			{Title: "Wolf Hall", ASIN: "B00ANM5NY4", UnitPrice: &price, Quantity: 1},
		},
	}
	newOrder := &order.Order{
		ID:       "D01-9960417-3589456",
		Kind:     order.KindDigital,
		Payments: []string{"Visa ending in 1234", "Gift card balance"},
		Items: []order.LineItem{
			{Title: "Wolf Hall", ASIN: "B00ANM5NY4", UnitPrice: &price, Quantity: 2},
			{Title: "Bring Up the Bodies", Quantity: 1},
		},
	}

	diffs, pairs := Orders(oldOrder, newOrder, 0.9)
	require.Equal(t, []Pair{{Old: 0, New: 0, Correlation: 1}, {Old: -1, New: 1}}, pairs)
	require.Equal(t, []Difference{
		{Row: -1, Field: order.FieldTotal, Old: "GBP 5.39", New: ""},
		{Row: -1, Field: order.FieldPayments, Old: "Visa ending in 1234", New: "Visa ending in 1234; Gift card balance"},
		{Row: 0, Field: order.FieldQuantity, Old: "1", New: "2"},
		{Row: 1, Field: order.FieldTitle, Old: "", New: "Bring Up the Bodies"},
		{Row: 1, Field: order.FieldQuantity, Old: "", New: "1"},
	}, diffs)

	same, _ := Orders(oldOrder, oldOrder, 0.9)
	require.Empty(t, same)
}
