package catalog

import (
	"net/url"
	"regexp"
	"strings"

	"orderhistory/internal/rules"
	"orderhistory/lib/htmlutil"
)

var orderIDRegex = regexp.MustCompile(`\b([A-Z0-9]{3}-\d{7}-\d{7})\b`)

var parseOrderID = rules.Match(orderIDRegex)

var asinRegex = regexp.MustCompile(`/(?:gp/product|dp|gp/aw/d|product)/([A-Z0-9]{10})(?:[/?#]|$)`)

// ASIN returns the product code embedded in a product link.
func ASIN(link string) string {
	m := asinRegex.FindStringSubmatch(link)
	if m == nil {
		return ""
	}
	return m[1]
}

// link resolves an href against base.
func link(base *url.URL) rules.Parse[string] {
	return func(raw string) (string, bool) {
		out := htmlutil.Resolve(base, raw)
		return out, out != ""
	}
}

// productLink canonicalises product links to /dp/<ASIN>, so that the links
// of old and new layouts compare equal.
func productLink(base *url.URL) rules.Parse[string] {
	return func(raw string) (string, bool) {
		raw = strings.TrimSpace(raw)
		if asin := ASIN(raw); asin != "" {
			return htmlutil.Resolve(base, "/dp/"+asin), true
		}
		out := htmlutil.Resolve(base, raw)
		return out, out != ""
	}
}

// orderDateRegex captures what follows an "ordered on" style label.
var orderDateRegex = regexp.MustCompile(
	`(?i)(?:Ordered on|Order placed|Digital Order:|Commandé le|Commande effectuée(?: le)?|Bestellt am|Bestellung aufgegeben(?: am)?|Digitale Bestellung:|Pedido realizado(?: el)?|Ordine effettuato(?: il)?)\s*(.+)`,
)
