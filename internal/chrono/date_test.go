package chrono

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFindDate(t *testing.T) {
	testCases := []struct {
		text     string
		expected time.Time
		ok       bool
	}{
		{text: "Ordered on October 14, 2016", expected: date(2016, time.October, 14), ok: true},
		{text: "Order placed Oct. 14, 2016", expected: date(2016, time.October, 14), ok: true},
		{text: "Digital Order: 15 July 2018", expected: date(2018, time.July, 15), ok: true},
		{text: "Bestellt am 29. Dezember 2017", expected: date(2017, time.December, 29), ok: true},
		{text: "Commandé le 29 mai 2018", expected: date(2018, time.May, 29), ok: true},
		{text: "Commandé le 1er mai 2018", expected: date(2018, time.May, 1), ok: true},
		{text: "Pedido realizado el 16 de noviembre de 2018", expected: date(2018, time.November, 16), ok: true},
		{text: "Ordine effettuato il 22. luglio 2016", expected: date(2016, time.July, 22), ok: true},
		{text: "Commandé le 3 févr. 2019", expected: date(2019, time.February, 3), ok: true},
		{text: "placed 2018-07-15T10:00:00Z", expected: date(2018, time.July, 15), ok: true},
		{text: "Ordered on October 14, 2016 Delivered 18 October 2016", expected: date(2016, time.October, 14), ok: true},
		{text: "Delivered 18 October 2016, invoice 2016-10-20", expected: date(2016, time.October, 18), ok: true},
		{text: "31 June 2018, reissued 2018-07-02", expected: date(2018, time.July, 2), ok: true},
		{text: "31 June 2018", ok: false},
		{text: "Qty: 2", ok: false},
		{text: "", ok: false},
	}

	for _, test := range testCases {
		t.Run(test.text, func(t *testing.T) {
			got, ok := FindDate(test.text)
			require.Equal(t, test.ok, ok)
			if test.ok {
				require.True(t, test.expected.Equal(got), "got %s", got)
				require.Equal(t, time.UTC, got.Location())
			}
		})
	}
}

func TestParseMonth(t *testing.T) {
	month, ok := ParseMonth("Décembre")
	require.True(t, ok)
	require.Equal(t, time.December, month)

	month, ok = ParseMonth("sept.")
	require.True(t, ok)
	require.Equal(t, time.September, month)

	_, ok = ParseMonth("order")
	require.False(t, ok)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
