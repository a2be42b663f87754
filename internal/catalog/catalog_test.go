package catalog

import (
	"net/url"
	"testing"

	"orderhistory/internal/order"
	"orderhistory/internal/rules"

	"github.com/stretchr/testify/require"
)

func testOptions(t *testing.T) Options {
	base, err := url.Parse("https://www.amazon.com")
	require.NoError(t, err)
	return Options{BaseURL: base}
}

func TestBuiltinSchemasAreValid(t *testing.T) {
	opts := testOptions(t)
	require.NoError(t, digitalSchema(opts).Validate())
	require.NoError(t, physicalSchema(opts).Validate())

	c := New(opts)
	require.Equal(t, []order.Kind{order.KindDigital, order.KindPhysical}, c.Kinds())

	_, ok := c.Schema(order.KindUnknown)
	require.False(t, ok)
	physical, ok := c.Schema(order.KindPhysical)
	require.True(t, ok)
	require.Equal(t, order.KindPhysical, physical.Kind)
}

func TestValidateRejectsFieldsOutsideSchema(t *testing.T) {
	opts := testOptions(t)

	digital := digitalSchema(opts)
	digital.Recipient = rules.RuleSet[string]{
		Field: order.FieldRecipient,
		Rules: []rules.Rule[string]{{Name: "ship to", Query: rules.Text(".ship-to"), Parse: rules.String}},
	}
	require.ErrorContains(t, digital.Validate(), "not part of the schema")
	require.Panics(t, func() {
		NewWith(headerSchema(opts), digital)
	})

	physical := physicalSchema(opts)
	physical.Shipping.Rules = nil
	require.ErrorContains(t, physical.Validate(), "has no rules")

	mislabelled := physicalSchema(opts)
	mislabelled.Tax.Field = order.FieldTotal
	require.Error(t, mislabelled.Validate())

	noItems := digitalSchema(opts)
	noItems.Item.Quantity.Rules = nil
	require.Error(t, noItems.Validate())
}

func TestNewWithRejectsDuplicatesAndEmpty(t *testing.T) {
	opts := testOptions(t)
	require.Panics(t, func() {
		NewWith(headerSchema(opts), digitalSchema(opts), digitalSchema(opts))
	})
	require.Panics(t, func() {
		NewWith(headerSchema(opts))
	})
}

func TestProductLinks(t *testing.T) {
	opts := testOptions(t)
	canonical := productLink(opts.BaseURL)

	cases := []struct {
		raw      string
		expected string
		asin     string
	}{
		{"/gp/product/B00006IE7J/ref=od_aui_detailpages00?ie=UTF8&psc=1", "https://www.amazon.com/dp/B00006IE7J", "B00006IE7J"},
		{"/dp/8883701127?ref_=ppx_hzod_title", "https://www.amazon.com/dp/8883701127", "8883701127"},
		{"https://www.amazon.com/Some-Title/dp/B076HZ1KSG/ref=x", "https://www.amazon.com/dp/B076HZ1KSG", "B076HZ1KSG"},
		{"/gp/aag/main?seller=ATVPDKIKX0DER", "https://www.amazon.com/gp/aag/main?seller=ATVPDKIKX0DER", ""},
	}
	for _, c := range cases {
		out, ok := canonical(c.raw)
		require.True(t, ok, c.raw)
		require.Equal(t, c.expected, out)
		require.Equal(t, c.asin, ASIN(out))
	}

	_, ok := canonical("   ")
	require.False(t, ok)
}

func TestParseOrderID(t *testing.T) {
	id, ok := parseOrderID("Order# 112-5187204-3213849")
	require.True(t, ok)
	require.Equal(t, "112-5187204-3213849", id)

	id, ok = parseOrderID("Bestellnummer: D01-4420893-1180654")
	require.True(t, ok)
	require.Equal(t, "D01-4420893-1180654", id)

	_, ok = parseOrderID("Order# 112-518720-3213849")
	require.False(t, ok)
}
