package order

// FieldStatus records how one field was resolved. Rule is the index of the
// winning rule within its rule set, or -1 when no rule produced a value.
type FieldStatus struct {
	Field    Field  `json:"field"`
	Resolved bool   `json:"resolved"`
	Rule     int    `json:"rule"`
	RuleName string `json:"rule_name,omitempty"`
}

type ItemReport struct {
	Row    int           `json:"row"`
	Fields []FieldStatus `json:"fields"`
}

// Report lists every field the assembler attempted for one candidate kind,
// resolved or not.
type Report struct {
	Kind     Kind   `json:"kind"`
	KindRule string `json:"kind_rule,omitempty"`
	// BlockRule names the item block rule that located the items.
	BlockRule string        `json:"block_rule,omitempty"`
	Fields    []FieldStatus `json:"fields"`
	Items     []ItemReport  `json:"items"`
}

// Status returns the status of an order-level field.
func (r *Report) Status(field Field) (FieldStatus, bool) {
	if r == nil {
		return FieldStatus{}, false
	}
	for _, s := range r.Fields {
		if s.Field == field {
			return s, true
		}
	}
	return FieldStatus{}, false
}

// Unresolved lists the order-level fields no rule could resolve.
func (r *Report) Unresolved() []Field {
	if r == nil {
		return nil
	}
	var out []Field
	for _, s := range r.Fields {
		if !s.Resolved {
			out = append(out, s.Field)
		}
	}
	return out
}

// ResolvedCount counts resolved fields across the order and its items.
func (r *Report) ResolvedCount() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, s := range r.Fields {
		if s.Resolved {
			n++
		}
	}
	for _, item := range r.Items {
		for _, s := range item.Fields {
			if s.Resolved {
				n++
			}
		}
	}
	return n
}

// Coverage is the fraction of attempted fields that resolved.
func (r *Report) Coverage() float64 {
	if r == nil {
		return 0
	}
	total := len(r.Fields)
	for _, item := range r.Items {
		total += len(item.Fields)
	}
	if total == 0 {
		return 0
	}
	return float64(r.ResolvedCount()) / float64(total)
}

// Reason explains why a Result carries no order.
type Reason string

const (
	ReasonNone         Reason = ""
	ReasonNotOrderPage Reason = "not an order page"
	ReasonParseFailure Reason = "parse failure"
)

// Result is the outcome of extracting one page. Report is nil only on a
// parse failure.
type Result struct {
	Order  *Order  `json:"order,omitempty"`
	Report *Report `json:"report,omitempty"`
	Reason Reason  `json:"reason,omitempty"`
}

func (r Result) OK() bool {
	return r.Order != nil
}
