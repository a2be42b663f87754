package rules

import (
	"regexp"
	"strings"

	"orderhistory/lib/htmlutil"
	"orderhistory/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

// find is root.Find that also considers root itself, so that a query written
// for a whole page works the same inside an item block.
func find(root *goquery.Selection, selector string) *goquery.Selection {
	return root.Filter(selector).AddSelection(root.Find(selector))
}

// Text is the text of the first non-empty element matching selector.
func Text(selector string) Query {
	return func(root *goquery.Selection) (string, bool) {
		var out string
		find(root, selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			out = htmlutil.Text(s)
			return out == ""
		})
		return out, out != ""
	}
}

// OwnText is Text restricted to the direct text children of the element.
func OwnText(selector string) Query {
	return func(root *goquery.Selection) (string, bool) {
		var out string
		find(root, selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			out = htmlutil.OwnText(s)
			return out == ""
		})
		return out, out != ""
	}
}

// TextAll is the text of every non-empty element matching selector, one per
// line, in document order.
func TextAll(selector string) Query {
	return func(root *goquery.Selection) (string, bool) {
		var lines []string
		find(root, selector).Each(func(_ int, s *goquery.Selection) {
			if text := htmlutil.Text(s); text != "" {
				lines = append(lines, text)
			}
		})
		return strings.Join(lines, "\n"), len(lines) > 0
	}
}

// Attr is the first non-empty value of attr among elements matching selector.
func Attr(selector, attr string) Query {
	return func(root *goquery.Selection) (string, bool) {
		var out string
		find(root, selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			value, _ := s.Attr(attr)
			out = value
			return out == ""
		})
		return out, out != ""
	}
}

// Exists matches when any element matches selector, the raw text is the
// selector itself.
func Exists(selector string) Query {
	return func(root *goquery.Selection) (string, bool) {
		if find(root, selector).Length() == 0 {
			return "", false
		}
		return selector, true
	}
}

// Containing matches when an element matching selector has text containing
// one of labels, the raw text is that element's text.
func Containing(selector string, labels ...string) Query {
	return func(root *goquery.Selection) (string, bool) {
		var out string
		find(root, selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := htmlutil.Text(s)
			if textutil.MatchLabel(text, labels) {
				out = text
				return false
			}
			return true
		})
		return out, out != ""
	}
}

// Regex is the first capture group of re (or the whole match without a
// group) in the text of the elements matching selector, tried in document
// order.
func Regex(selector string, re *regexp.Regexp) Query {
	return func(root *goquery.Selection) (string, bool) {
		var out string
		find(root, selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			out = submatch(re, htmlutil.Text(s))
			return out == ""
		})
		return out, out != ""
	}
}

// AttrRegex is Regex over an attribute value instead of the element text.
func AttrRegex(selector, attr string, re *regexp.Regexp) Query {
	return func(root *goquery.Selection) (string, bool) {
		var out string
		find(root, selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			value, _ := s.Attr(attr)
			out = submatch(re, value)
			return out == ""
		})
		return out, out != ""
	}
}

func submatch(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	if len(m) > 1 {
		return m[1]
	}
	return m[0]
}

// maxLabelDepth is how many ancestors of a label element are searched for
// the element holding its value.
const maxLabelDepth = 3

// Labelled finds the element matching selector whose own text carries one
// of labels and returns the value that goes with the label. Starting at that
// element and moving up at most maxLabelDepth ancestors, the value is the
// text following the label when there is any, otherwise the text of the
// nearest non-empty following sibling. This covers values sharing the
// label's element as well as label/value cells of summary tables.
func Labelled(selector string, labels ...string) Query {
	return LabelledExcept(selector, labels, nil)
}

// LabelledExcept is Labelled skipping label elements whose own text also
// carries one of excluded, so "VAT" passes over a "Total before VAT" row.
func LabelledExcept(selector string, labels, excluded []string) Query {
	return func(root *goquery.Selection) (string, bool) {
		var out string
		find(root, selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			own := htmlutil.OwnText(s)
			if !textutil.MatchLabel(own, labels) || textutil.MatchLabel(own, excluded) {
				return true
			}
			out = labelValue(s, labels)
			return out == ""
		})
		return out, out != ""
	}
}

func labelValue(s *goquery.Selection, labels []string) string {
	current := s
	for depth := 0; depth <= maxLabelDepth && current.Length() > 0; depth++ {
		rest, _ := textutil.AfterLabel(htmlutil.Text(current), labels)
		if rest != "" {
			return rest
		}
		var sibling string
		current.NextAll().EachWithBreak(func(_ int, next *goquery.Selection) bool {
			sibling = htmlutil.Text(next)
			return sibling == ""
		})
		if sibling != "" {
			return sibling
		}
		current = current.Parent()
	}
	return ""
}

// Page is the first capture group of re in the whole text under root.
func Page(re *regexp.Regexp) Query {
	return func(root *goquery.Selection) (string, bool) {
		out := submatch(re, htmlutil.Text(root))
		return out, out != ""
	}
}

// First tries each query in order and returns the first match.
func First(queries ...Query) Query {
	return func(root *goquery.Selection) (string, bool) {
		for _, q := range queries {
			raw, ok := q(root)
			if ok {
				return raw, true
			}
		}
		return "", false
	}
}
