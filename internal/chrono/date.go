package chrono

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"orderhistory/lib/textutil"
)

// months maps accent-folded, lowercased month names and abbreviations in
// every storefront language to their month.
var months = map[string]time.Month{}

func init() {
	names := [][]string{
		// english
		{"january", "jan"}, {"february", "feb"}, {"march", "mar"}, {"april", "apr"},
		{"may"}, {"june", "jun"}, {"july", "jul"}, {"august", "aug"},
		{"september", "sep", "sept"}, {"october", "oct"}, {"november", "nov"}, {"december", "dec"},
		// deutsch
		{"januar", "jän", "janner"}, {"februar"}, {"märz", "mrz"}, {},
		{"mai"}, {"juni"}, {"juli"}, {},
		{}, {"oktober", "okt"}, {}, {"dezember", "dez"},
		// français
		{"janvier", "janv"}, {"février", "févr", "fév"}, {"mars"}, {"avril", "avr"},
		{}, {"juin"}, {"juillet", "juil"}, {"août"},
		{"septembre"}, {"octobre"}, {"novembre"}, {"décembre", "déc"},
		// español
		{"enero", "ene"}, {"febrero"}, {"marzo"}, {"abril", "abr"},
		{"mayo"}, {"junio"}, {"julio"}, {"agosto", "ago"},
		{"septiembre", "setiembre"}, {"octubre"}, {"noviembre"}, {"diciembre", "dic"},
		// italiano
		{"gennaio", "gen"}, {"febbraio"}, {"marzo"}, {"aprile"},
		{"maggio", "mag"}, {"giugno", "giu"}, {"luglio", "lug"}, {"agosto"},
		{"settembre", "set"}, {"ottobre", "ott"}, {"novembre"}, {"dicembre"},
	}
	for i, group := range names {
		month := time.Month(i%12 + 1)
		for _, name := range group {
			months[textutil.NormalizeLabel(name)] = month
		}
	}
}

// ParseMonth returns the month named by text in any supported locale.
func ParseMonth(text string) (time.Month, bool) {
	text = strings.TrimSuffix(textutil.NormalizeLabel(text), ".")
	month, ok := months[text]
	return month, ok
}

var (
	isoDate        = regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})`)
	dayFirstDate   = regexp.MustCompile(`(\d{1,2})(?:\.|er|st|nd|rd|th)?\s+(?:de\s+)?(\p{L}+)\.?\s+(?:de\s+)?(\d{4})`)
	monthFirstDate = regexp.MustCompile(`(\p{L}+)\.?\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{4})`)
)

func civil(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// reject dates that time.Date silently normalized, like 31 June
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t, true
}

type datePattern struct {
	re    *regexp.Regexp
	parse func(groups []string) (time.Time, bool)
}

// datePatterns are tried in this order for matches starting at the same
// position.
var datePatterns = []datePattern{
	{isoDate, func(g []string) (time.Time, bool) {
		year, _ := strconv.Atoi(g[1])
		month, _ := strconv.Atoi(g[2])
		day, _ := strconv.Atoi(g[3])
		return civil(year, month, day)
	}},
	{dayFirstDate, func(g []string) (time.Time, bool) {
		month, ok := ParseMonth(g[2])
		if !ok {
			return time.Time{}, false
		}
		day, _ := strconv.Atoi(g[1])
		year, _ := strconv.Atoi(g[3])
		return civil(year, int(month), day)
	}},
	{monthFirstDate, func(g []string) (time.Time, bool) {
		month, ok := ParseMonth(g[1])
		if !ok {
			return time.Time{}, false
		}
		day, _ := strconv.Atoi(g[2])
		year, _ := strconv.Atoi(g[3])
		return civil(year, int(month), day)
	}},
}

func submatches(text string, idx []int) []string {
	out := make([]string, len(idx)/2)
	for i := range out {
		if idx[2*i] >= 0 {
			out[i] = text[idx[2*i]:idx[2*i+1]]
		}
	}
	return out
}

// FindDate returns the first calendar date mentioned in text, in any of the
// storefront locales. The result is a civil date at midnight UTC.
func FindDate(text string) (time.Time, bool) {
	text = textutil.NormalizeSpace(text)

	var found time.Time
	start := -1
	for _, p := range datePatterns {
		for _, idx := range p.re.FindAllStringSubmatchIndex(text, -1) {
			if start >= 0 && idx[0] >= start {
				break
			}
			if t, ok := p.parse(submatches(text, idx)); ok {
				found, start = t, idx[0]
				break
			}
		}
	}
	return found, start >= 0
}
