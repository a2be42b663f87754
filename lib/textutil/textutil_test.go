package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeLabel(t *testing.T) {
	require.Equal(t, "commande le", NormalizeLabel("  Commandé  LE "))
	require.Equal(t, "gesamtsumme", NormalizeLabel("Gesamtsumme"))
}

func TestFirstLabel(t *testing.T) {
	labels := []string{"Grand Total", "VAT", "TVA"}

	label, ok := FirstLabel("Montant TVA : 0,90 €", labels)
	require.True(t, ok)
	require.Equal(t, "TVA", label)

	_, ok = FirstLabel("Ships from a private seller", labels)
	require.False(t, ok, "VAT must not match inside a word")

	require.True(t, MatchLabel("grand   total:", labels))
}

func TestAfterLabel(t *testing.T) {
	testCases := []struct {
		text     string
		labels   []string
		expected string
		ok       bool
	}{
		{text: "Grand Total: £5.39", labels: []string{"grand total"}, expected: "£5.39", ok: true},
		{text: "Montant total TTC : EUR 12,34", labels: []string{"montant total ttc"}, expected: "EUR 12,34", ok: true},
		{text: "Commandé le 29 mai 2018", labels: []string{"commande le"}, expected: "29 mai 2018", ok: true},
		{text: "VAT:", labels: []string{"VAT"}, expected: "", ok: true},
		{text: "Subtotal £4.49", labels: []string{"total"}, ok: false},
	}

	for _, test := range testCases {
		got, ok := AfterLabel(test.text, test.labels)
		require.Equal(t, test.ok, ok, test.text)
		require.Equal(t, test.expected, got, test.text)
	}
}
