package htmlutil

import (
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`
		<div id="summary">
			<script>var orderId = "000-0000000-0000000";</script>
			<style>.total { color: red }</style>
			<b>Grand Total:</b>&nbsp;&nbsp;£5.39
			<span>ignored</span>
		</div>`))
	require.NoError(t, err)

	summary := doc.Find("#summary")
	require.Equal(t, "Grand Total: £5.39 ignored", Text(summary))
	require.Equal(t, "£5.39", OwnText(summary))
	require.Equal(t, "", Text(doc.Find("#missing")))
}

func TestClean(t *testing.T) {
	require.Equal(t, "EUR 24,98", Clean("\n  EUR 24,98\t"))
	require.Equal(t, "a b", Clean("a\u200b \u00a0 b"))
}

func TestResolve(t *testing.T) {
	base, err := url.Parse("https://www.amazon.co.uk")
	require.NoError(t, err)

	require.Equal(t, "https://www.amazon.co.uk/dp/B00ANM5NY4", Resolve(base, "/dp/B00ANM5NY4"))
	require.Equal(t, "https://example.com/x", Resolve(base, "https://example.com/x"))
	require.Equal(t, "/dp/B00ANM5NY4", Resolve(nil, " /dp/B00ANM5NY4 "))
	require.Equal(t, "", Resolve(base, "  "))
}
