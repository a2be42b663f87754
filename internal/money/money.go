package money

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Money is an amount with an explicit currency. The zero value is not a valid
// amount, callers should use *Money for optional values.
type Money struct {
	Currency currency.Unit
	Amount   decimal.Decimal
}

func New(unit currency.Unit, amount string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	return Money{Currency: unit, Amount: d}, nil
}

// MustNew is New but panics, meant for literals in tests and tables.
func MustNew(unit currency.Unit, amount string) Money {
	m, err := New(unit, amount)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Equal(other Money) bool {
	return m.Currency == other.Currency && m.Amount.Equal(other.Amount)
}

func (m Money) Abs() Money {
	return Money{Currency: m.Currency, Amount: m.Amount.Abs()}
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Currency.String(), m.Amount.StringFixed(2))
}

type jsonMoney struct {
	Currency string `json:"currency"`
	Amount   string `json:"amount"`
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonMoney{
		Currency: m.Currency.String(),
		Amount:   m.Amount.StringFixed(2),
	})
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var raw jsonMoney
	err := json.Unmarshal(data, &raw)
	if err != nil {
		return err
	}
	unit, err := currency.ParseISO(raw.Currency)
	if err != nil {
		return fmt.Errorf("parse currency %q: %w", raw.Currency, err)
	}
	parsed, err := New(unit, raw.Amount)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

var symbols = map[string]currency.Unit{
	"£":    currency.GBP,
	"€":    currency.EUR,
	"¥":    currency.JPY,
	"₹":    currency.INR,
	"CDN$": currency.CAD,
	"CDN":  currency.CAD,
	"C$":   currency.CAD,
	"A$":   currency.AUD,
	"R$":   currency.BRL,
	"US$":  currency.USD,
}

const number = `\d{1,3}(?:[,. \x{a0}]\d{3})+(?:[.,]\d{1,2})?|\d+(?:[.,]\d{1,2})?`

// amountRegex captures, in order: a leading sign, an ISO code before the
// number, a currency symbol before the number, a sign placed after the
// symbol, the number itself and an ISO code or symbol after the number.
var amountRegex = regexp.MustCompile(
	`([-−])?(?:\b([A-Z]{3})\b\s*)?(CDN\$|C\$|A\$|R\$|US\$|[$£€¥₹])?\s*([-−])?(` + number + `)(?:\s*(€|\b[A-Z]{3}\b))?`,
)

// Parser finds monetary amounts in page text.
//
// A bare "$" is ambiguous between storefronts, so it only resolves when
// Dollar is set; otherwise such amounts are treated as having no currency and
// are skipped.
type Parser struct {
	Dollar currency.Unit
	// HasDollar reports whether Dollar was configured, since the zero
	// currency.Unit is itself a valid unit (XXX).
	HasDollar bool
}

func NewParser(dollar string) (Parser, error) {
	if dollar == "" {
		return Parser{}, nil
	}
	unit, err := currency.ParseISO(dollar)
	if err != nil {
		return Parser{}, fmt.Errorf("dollar currency %q: %w", dollar, err)
	}
	return Parser{Dollar: unit, HasDollar: true}, nil
}

func (p Parser) unit(code, symbol, suffix string) (currency.Unit, bool) {
	if symbol != "" && symbol != "$" {
		unit, ok := symbols[symbol]
		return unit, ok
	}
	for _, c := range []string{code, suffix} {
		if c == "" {
			continue
		}
		if unit, ok := symbols[c]; ok {
			return unit, true
		}
		unit, err := currency.ParseISO(c)
		if err == nil {
			return unit, true
		}
	}
	if symbol == "$" && p.HasDollar {
		return p.Dollar, true
	}
	return currency.Unit{}, false
}

var continuesWithAmount = regexp.MustCompile(`^\s*[\d$£€¥₹]`)

// Find returns the first amount in text that carries a resolvable currency.
func (p Parser) Find(text string) (Money, bool) {
	pos := 0
	for pos < len(text) {
		rest := text[pos:]
		idx := amountRegex.FindStringSubmatchIndex(rest)
		if idx == nil {
			break
		}
		group := func(n int) string {
			if idx[2*n] < 0 {
				return ""
			}
			return rest[idx[2*n]:idx[2*n+1]]
		}
		sign := group(1) + group(4)
		code := group(2)
		symbol := group(3)
		suffix := group(6)

		// "Qty: 2 €4.49" must not read as two euros, rescan from the symbol
		if code == "" && symbol == "" && suffix != "" &&
			continuesWithAmount.MatchString(rest[idx[1]:]) {
			pos += idx[12]
			continue
		}
		pos += idx[1]

		unit, ok := p.unit(code, symbol, suffix)
		if !ok {
			continue
		}
		amount, ok := parseNumber(group(5))
		if !ok {
			continue
		}
		if sign != "" {
			amount = amount.Neg()
		}
		return Money{Currency: unit, Amount: amount}, true
	}
	return Money{}, false
}

// Parse is Find for callers that need an error.
func (p Parser) Parse(text string) (Money, error) {
	m, ok := p.Find(text)
	if !ok {
		return Money{}, fmt.Errorf("no amount with a known currency in %q", text)
	}
	return m, nil
}

var decimalTail = regexp.MustCompile(`[.,](\d{1,2})$`)

// parseNumber handles both grouping conventions: a separator followed by
// exactly one or two trailing digits is the decimal point, every other
// separator is grouping.
func parseNumber(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	fraction := ""
	if m := decimalTail.FindStringSubmatchIndex(raw); m != nil {
		fraction = raw[m[2]:m[3]]
		raw = raw[:m[0]]
	}
	integer := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	if integer == "" {
		integer = "0"
	}
	normalized := integer
	if fraction != "" {
		normalized += "." + fraction
	}
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
