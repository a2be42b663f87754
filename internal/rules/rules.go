package rules

import (
	"fmt"
	"strings"

	"orderhistory/internal/order"
	"orderhistory/internal/telemetry"

	"github.com/PuerkitoBio/goquery"
)

const report_resolver_rule = "resolver.rule"
const report_resolver_block = "resolver.block"

// Query extracts raw text from a page, ok is false when the page has nothing
// for it.
type Query func(root *goquery.Selection) (raw string, ok bool)

// Parse turns raw text into a typed value, ok is false when the text holds no
// usable value.
type Parse[T any] func(raw string) (value T, ok bool)

// Rule is one way of finding one field on one layout.
type Rule[T any] struct {
	Name  string
	Query Query
	Parse Parse[T]
}

// RuleSet is the ordered list of rules for one field, most specific first.
type RuleSet[T any] struct {
	Field order.Field
	Rules []Rule[T]
}

// Resolution is the outcome of running a RuleSet. Rule is -1 when nothing
// matched.
type Resolution[T any] struct {
	Value    T
	Resolved bool
	Rule     int
	RuleName string
}

func (r Resolution[T]) Status(field order.Field) order.FieldStatus {
	return order.FieldStatus{
		Field:    field,
		Resolved: r.Resolved,
		Rule:     r.Rule,
		RuleName: r.RuleName,
	}
}

// Resolve tries every rule of set against root in declared order and returns
// the first typed value produced. A rule that panics is reported and counts
// as no match.
func Resolve[T any](api telemetry.API, set RuleSet[T], root *goquery.Selection) Resolution[T] {
	for i, rule := range set.Rules {
		value, ok := try(api, set.Field, rule, root)
		if ok {
			return Resolution[T]{
				Value:    value,
				Resolved: true,
				Rule:     i,
				RuleName: rule.Name,
			}
		}
	}
	return Resolution[T]{Rule: -1}
}

func try[T any](api telemetry.API, field order.Field, rule Rule[T], root *goquery.Selection) (value T, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if api != nil {
				api.ReportWarning(report_resolver_rule, string(field), rule.Name, fmt.Sprint(r))
			}
			var zero T
			value = zero
			ok = false
		}
	}()

	if rule.Query == nil || rule.Parse == nil {
		return value, false
	}
	raw, found := rule.Query(root)
	if !found {
		return value, false
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return value, false
	}
	return rule.Parse(raw)
}

// BlockRule locates the repeated elements that each hold one line item.
// Keep, when set, filters out matched elements that are not items.
type BlockRule struct {
	Name     string
	Selector string
	Keep     func(block *goquery.Selection) bool
}

// BlockSet is the ordered list of item block rules for one kind.
type BlockSet struct {
	Rules []BlockRule
}

// Blocks is the outcome of LocateBlocks. Rule is -1 when no rule found any
// block.
type Blocks struct {
	Items    []*goquery.Selection
	Rule     int
	RuleName string
}

// LocateBlocks returns the blocks of the first rule that finds at least one.
func LocateBlocks(api telemetry.API, set BlockSet, root *goquery.Selection) Blocks {
	for i, rule := range set.Rules {
		items := tryBlocks(api, rule, root)
		if len(items) > 0 {
			return Blocks{Items: items, Rule: i, RuleName: rule.Name}
		}
	}
	return Blocks{Rule: -1}
}

func tryBlocks(api telemetry.API, rule BlockRule, root *goquery.Selection) (items []*goquery.Selection) {
	defer func() {
		if r := recover(); r != nil {
			if api != nil {
				api.ReportWarning(report_resolver_block, rule.Name, fmt.Sprint(r))
			}
			items = nil
		}
	}()

	root.Find(rule.Selector).Each(func(_ int, block *goquery.Selection) {
		if rule.Keep != nil && !rule.Keep(block) {
			return
		}
		// a block nested in an already located block is part of that item
		for _, outer := range items {
			if outer.Contains(block.Nodes[0]) {
				return
			}
		}
		items = append(items, block)
	})
	return items
}
