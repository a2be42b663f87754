package textutil

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// FoldAccents strips combining marks, so "Février" becomes "Fevrier".
func FoldAccents(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return folded
}

// NormalizeLabel lowercases, folds accents and collapses whitespace so that
// page vocabulary from different locales and markup revisions compares equal.
func NormalizeLabel(label string) string {
	label = strings.ToLower(FoldAccents(label))
	label = strings.ReplaceAll(label, "\u00a0", " ")
	label = whitespaceRegex.ReplaceAllString(label, " ")
	return strings.TrimSpace(label)
}

// MatchLabel reports whether text contains any of the given labels after
// both sides are normalized.
func MatchLabel(text string, labels []string) bool {
	_, ok := FirstLabel(text, labels)
	return ok
}

// FirstLabel returns the first label (in declared order) contained in text as
// whole words, so "VAT" never matches inside "private".
func FirstLabel(text string, labels []string) (string, bool) {
	text = NormalizeLabel(text)
	for _, l := range labels {
		if indexWord(text, NormalizeLabel(l)) >= 0 {
			return l, true
		}
	}
	return "", false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// indexWord is strings.Index restricted to matches that do not start or end
// in the middle of a word.
func indexWord(text, needle string) int {
	if needle == "" {
		return -1
	}
	offset := 0
	for {
		idx := strings.Index(text[offset:], needle)
		if idx < 0 {
			return -1
		}
		start := offset + idx
		end := start + len(needle)

		before, _ := utf8.DecodeLastRuneInString(text[:start])
		after, _ := utf8.DecodeRuneInString(text[end:])
		first, _ := utf8.DecodeRuneInString(needle)
		last, _ := utf8.DecodeLastRuneInString(needle)

		leftOK := start == 0 || !isWordRune(first) || !isWordRune(before)
		rightOK := end == len(text) || !isWordRune(last) || !isWordRune(after)
		if leftOK && rightOK {
			return start
		}
		offset = start + 1
		for offset < len(text) && !utf8.RuneStart(text[offset]) {
			offset++
		}
	}
}

// AfterLabel returns the part of text following the first occurrence of any
// label, with a leading colon or whitespace trimmed. Matching ignores case and
// accents; the returned remainder keeps the original spelling.
func AfterLabel(text string, labels []string) (string, bool) {
	original := NormalizeSpace(text)
	folded, offsets := foldWithOffsets(original)
	for _, l := range labels {
		needle := NormalizeLabel(l)
		idx := indexWord(folded, needle)
		if idx < 0 {
			continue
		}
		rest := original[offsets[idx+len(needle)]:]
		rest = strings.TrimLeft(rest, ": \t")
		return strings.TrimSpace(rest), true
	}
	return "", false
}

// foldWithOffsets lowercases and accent-folds text rune by rune, recording
// for every byte of the result the byte offset it came from in text.
func foldWithOffsets(text string) (string, []int) {
	var out strings.Builder
	offsets := make([]int, 0, len(text)+1)
	for i, r := range text {
		folded := strings.ToLower(FoldAccents(string(r)))
		for range len(folded) {
			offsets = append(offsets, i)
		}
		out.WriteString(folded)
	}
	offsets = append(offsets, len(text))
	return out.String(), offsets
}

// NormalizeSpace collapses whitespace without any other transformation.
func NormalizeSpace(text string) string {
	text = strings.ReplaceAll(text, "\u00a0", " ")
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(text, " "))
}
