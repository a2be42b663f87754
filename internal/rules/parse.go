package rules

import (
	"regexp"
	"strconv"
	"strings"

	"orderhistory/lib/htmlutil"
)

// String accepts any non-empty text.
func String(raw string) (string, bool) {
	raw = htmlutil.Clean(raw)
	return raw, raw != ""
}

// Present accepts any match, used for rules whose only job is to recognise
// a layout.
func Present(raw string) (bool, bool) {
	return true, true
}

// Match keeps the first capture group of re, or the whole match when re has
// no group.
func Match(re *regexp.Regexp) Parse[string] {
	return func(raw string) (string, bool) {
		out := submatch(re, raw)
		return out, out != ""
	}
}

// TrimPrefix removes the first of labels that prefixes the text, for values
// like "Sold by: Amazon EU S.a.r.L." where the label shares the element.
func TrimPrefix(labels ...string) Parse[string] {
	return func(raw string) (string, bool) {
		raw = htmlutil.Clean(raw)
		lower := strings.ToLower(raw)
		for _, label := range labels {
			if strings.HasPrefix(lower, strings.ToLower(label)) {
				raw = strings.TrimSpace(strings.TrimLeft(raw[len(label):], ": "))
				break
			}
		}
		return raw, raw != ""
	}
}

// Lines splits the output of TextAll, dropping empty and repeated lines.
func Lines(raw string) ([]string, bool) {
	var out []string
	seen := make(map[string]bool)
	for _, line := range strings.Split(raw, "\n") {
		line = htmlutil.Clean(line)
		if line == "" || seen[line] {
			continue
		}
		seen[line] = true
		out = append(out, line)
	}
	return out, len(out) > 0
}

var firstInteger = regexp.MustCompile(`\d+`)

// Positive parses the first integer in the text, accepting only values above
// zero.
func Positive(raw string) (int, bool) {
	m := firstInteger.FindString(raw)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
