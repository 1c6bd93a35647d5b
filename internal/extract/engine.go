package extract

import (
	"regexp"
	"strings"
)

// Kind selects the canonicalisation applied to a rule's captured value.
type Kind int

const (
	// KindText keeps the captured span verbatim.
	KindText Kind = iota
	// KindStatus maps the captured span into the canonical status vocabulary.
	KindStatus
	// KindDate keeps the captured span but discards it when it parses under
	// none of the recognised locale date formats.
	KindDate
)

// Rule binds one output field to an ordered list of pattern candidates.
// Candidates are evaluated in order against the canonical page text and the
// first one that matches supplies the field's value. The value is the span of
// the last non-empty capture group, not the first: candidates wrap dates and
// phrases in labeling prefixes ("estimada", "prevista") captured as earlier,
// optional groups.
type Rule struct {
	Field      Field
	Kind       Kind
	Candidates []*regexp.Regexp
}

// Extract applies a carrier's ordered rule list against canonical page text.
// Fields are independent: one field finding nothing never affects another,
// and a partially populated Result is the normal outcome. Extract never
// fails; the input is carrier-page-shaped but not schema-validated, so any
// evaluation problem is treated as "no match" for that field.
func Extract(rules []Rule, text string) Result {
	var out Result
	for _, rule := range rules {
		if hasField(&out, rule.Field) {
			continue
		}
		raw, ok := matchField(rule, text)
		if !ok {
			continue
		}
		setField(&out, rule, raw)
	}
	return out
}

func matchField(rule Rule, text string) (value string, ok bool) {
	defer func() {
		if recover() != nil {
			value, ok = "", false
		}
	}()
	for _, re := range rule.Candidates {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		span := strings.TrimSpace(lastGroup(m))
		if span == "" || IsBoilerplate(span) {
			continue
		}
		return span, true
	}
	return "", false
}

// lastGroup returns the last non-empty capture group of a match, falling back
// to the whole match for patterns without capture groups.
func lastGroup(m []string) string {
	for i := len(m) - 1; i >= 1; i-- {
		if strings.TrimSpace(m[i]) != "" {
			return m[i]
		}
	}
	return m[0]
}

func hasField(r *Result, field Field) bool {
	switch field {
	case FieldStatus:
		return r.Status != nil
	case FieldETA:
		return r.ETA != nil
	case FieldDeliveredAt:
		return r.DeliveredAt != nil
	case FieldSignedBy:
		return r.SignedBy != nil
	case FieldOrigin:
		return r.Origin != nil
	case FieldDestination:
		return r.Destination != nil
	}
	return false
}

func setField(r *Result, rule Rule, raw string) {
	switch rule.Kind {
	case KindStatus:
		status := CanonicalStatus(raw)
		if rule.Field == FieldStatus {
			r.Status = &status
		}
		return
	case KindDate:
		if _, ok := ParseDate(raw); !ok {
			return
		}
	}
	switch rule.Field {
	case FieldETA:
		r.ETA = &raw
	case FieldDeliveredAt:
		r.DeliveredAt = &raw
	case FieldSignedBy:
		r.SignedBy = &raw
	case FieldOrigin:
		r.Origin = &raw
	case FieldDestination:
		r.Destination = &raw
	}
}
