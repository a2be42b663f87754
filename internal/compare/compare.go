package compare

import (
	"strconv"
	"strings"
	"time"

	"orderhistory/internal/money"
	"orderhistory/internal/order"

	"github.com/antzucaro/matchr"
)

// Pair links a line item of the old extraction to one of the new. Old or New
// is -1 when the item has no counterpart.
type Pair struct {
	Old         int
	New         int
	Correlation float64
}

// PairItems matches the items of two extractions of the same order. Items
// are paired by ASIN, then by identical title, then by the most similar
// remaining title as long as the similarity reaches threshold.
func PairItems(oldItems, newItems []order.LineItem, threshold float64) []Pair {
	var result []Pair
	matchedOld := make(map[int]struct{})
	matchedNew := make(map[int]struct{})

	match := func(i, j int, correlation float64) {
		result = append(result, Pair{Old: i, New: j, Correlation: correlation})
		matchedOld[i] = struct{}{}
		matchedNew[j] = struct{}{}
	}

	exact := func(key func(order.LineItem) string) {
		for i, left := range oldItems {
			if _, ok := matchedOld[i]; ok || key(left) == "" {
				continue
			}
			for j, right := range newItems {
				if _, ok := matchedNew[j]; ok {
					continue
				}
				if key(left) == key(right) {
					match(i, j, 1)
					break
				}
			}
		}
	}
	exact(func(item order.LineItem) string { return item.ASIN })
	exact(func(item order.LineItem) string { return item.Title })

	for i, left := range oldItems {
		if _, ok := matchedOld[i]; ok || left.Title == "" {
			continue
		}

		var mostSimilarity float64
		mostSimilar := -1
		for j, right := range newItems {
			if _, ok := matchedNew[j]; ok || right.Title == "" {
				continue
			}
			similarity := matchr.JaroWinkler(left.Title, right.Title, false)
			if similarity > mostSimilarity {
				mostSimilarity = similarity
				mostSimilar = j
			}
		}

		if mostSimilar >= 0 && mostSimilarity >= threshold {
			match(i, mostSimilar, mostSimilarity)
		}
	}

	for i := range oldItems {
		if _, ok := matchedOld[i]; !ok {
			result = append(result, Pair{Old: i, New: -1})
		}
	}
	for j := range newItems {
		if _, ok := matchedNew[j]; !ok {
			result = append(result, Pair{Old: -1, New: j})
		}
	}
	return result
}

// Difference is a field whose value changed between two extractions. Row is
// -1 for order-level fields.
type Difference struct {
	Row   int
	Field order.Field
	Old   string
	New   string
}

// Orders lists every field that differs between two extractions of the same
// order, items being paired with PairItems first.
func Orders(oldOrder, newOrder *order.Order, threshold float64) ([]Difference, []Pair) {
	var diffs []Difference
	add := func(row int, field order.Field, oldValue, newValue string) {
		if oldValue != newValue {
			diffs = append(diffs, Difference{Row: row, Field: field, Old: oldValue, New: newValue})
		}
	}

	var oldItems, newItems []order.LineItem
	if oldOrder != nil {
		oldItems = oldOrder.Items
	}
	if newOrder != nil {
		newItems = newOrder.Items
	}

	oldFields := orderValues(oldOrder)
	newFields := orderValues(newOrder)
	for _, field := range orderFields {
		add(-1, field, oldFields[field], newFields[field])
	}

	pairs := PairItems(oldItems, newItems, threshold)
	for _, p := range pairs {
		var oldValues, newValues map[order.Field]string
		if p.Old >= 0 {
			oldValues = itemValues(oldItems[p.Old])
		}
		if p.New >= 0 {
			newValues = itemValues(newItems[p.New])
		}
		row := p.Old
		if row < 0 {
			row = p.New
		}
		for _, field := range order.ItemFields() {
			add(row, field, oldValues[field], newValues[field])
		}
	}

	return diffs, pairs
}

var orderFields = []order.Field{
	order.FieldKind,
	order.FieldID,
	order.FieldDate,
	order.FieldTotal,
	order.FieldSubtotal,
	order.FieldTax,
	order.FieldGST,
	order.FieldPST,
	order.FieldShipping,
	order.FieldShippingRefund,
	order.FieldDiscount,
	order.FieldGiftCard,
	order.FieldRefund,
	order.FieldInvoiceURL,
	order.FieldRecipient,
	order.FieldPayments,
}

func orderValues(o *order.Order) map[order.Field]string {
	if o == nil {
		return nil
	}
	return map[order.Field]string{
		order.FieldKind:           o.Kind.String(),
		order.FieldID:             o.ID,
		order.FieldDate:           formatDate(o.Date),
		order.FieldTotal:          formatMoney(o.Total),
		order.FieldSubtotal:       formatMoney(o.Subtotal),
		order.FieldTax:            formatMoney(o.Tax),
		order.FieldGST:            formatMoney(o.GST),
		order.FieldPST:            formatMoney(o.PST),
		order.FieldShipping:       formatMoney(o.Shipping),
		order.FieldShippingRefund: formatMoney(o.ShippingRefund),
		order.FieldDiscount:       formatMoney(o.Discount),
		order.FieldGiftCard:       formatMoney(o.GiftCard),
		order.FieldRefund:         formatMoney(o.Refund),
		order.FieldInvoiceURL:     o.InvoiceURL,
		order.FieldRecipient:      o.Recipient,
		order.FieldPayments:       strings.Join(o.Payments, "; "),
	}
}

func itemValues(item order.LineItem) map[order.Field]string {
	return map[order.Field]string{
		order.FieldTitle:      item.Title,
		order.FieldProductURL: item.ProductURL,
		order.FieldSeller:     item.Seller,
		order.FieldUnitPrice:  formatMoney(item.UnitPrice),
		order.FieldQuantity:   strconv.Itoa(item.Quantity),
	}
}

func formatMoney(m *money.Money) string {
	if m == nil {
		return ""
	}
	return m.String()
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.DateOnly)
}
