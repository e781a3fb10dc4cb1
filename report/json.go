package report

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// UnmarshalJSON accepts violations either already partitioned by severity
// (the shape Marshal produces) or as one flat array, and heading levels
// either numeric or in "H1".."H6" form, for compatibility with renderer
// adapters that predate this schema.
func (r *AuditReport) UnmarshalJSON(data []byte) error {
	type alias AuditReport
	aux := struct {
		Violations json.RawMessage `json:"violations"`
		*alias
	}{alias: (*alias)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if len(aux.Violations) == 0 || string(aux.Violations) == "null" {
		return nil
	}

	var buckets Buckets
	if err := json.Unmarshal(aux.Violations, &buckets); err == nil {
		r.Violations = buckets
		return nil
	}

	var flat []Violation
	if err := json.Unmarshal(aux.Violations, &flat); err != nil {
		return fmt.Errorf("violations: neither partitioned nor flat: %w", err)
	}
	r.Violations = partitionBySeverity(flat)
	return nil
}

func partitionBySeverity(flat []Violation) Buckets {
	var b Buckets
	for _, v := range flat {
		switch v.Severity {
		case SeverityCritical:
			b.Critical = append(b.Critical, v)
		case SeveritySerious:
			b.Serious = append(b.Serious, v)
		case SeverityModerate:
			b.Moderate = append(b.Moderate, v)
		default:
			b.Minor = append(b.Minor, v)
		}
	}
	return b
}

// UnmarshalJSON accepts either the nested {lcp:{value,rating}, ...} shape
// or a flat {lcp, lcpRating, ...} shape.
func (p *Performance) UnmarshalJSON(data []byte) error {
	type alias Performance
	var nested alias
	if err := json.Unmarshal(data, &nested); err == nil && (nested.LCP != nil || nested.CLS != nil || nested.INP != nil || nested.TBT != nil || nested.FCP != nil || nested.TTFB != nil) {
		*p = Performance(nested)
		return nil
	}

	var flat map[string]json.RawMessage
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}

	get := func(key string) *Metric {
		raw, ok := flat[key]
		if !ok {
			return nil
		}
		var value float64
		if err := json.Unmarshal(raw, &value); err != nil {
			return nil
		}
		m := &Metric{Value: value}
		if ratingRaw, ok := flat[key+"Rating"]; ok {
			_ = json.Unmarshal(ratingRaw, &m.Rating)
		}
		return m
	}

	p.LCP = get("lcp")
	p.CLS = get("cls")
	p.INP = get("inp")
	p.TBT = get("tbt")
	p.FCP = get("fcp")
	p.TTFB = get("ttfb")
	return nil
}

// UnmarshalJSON accepts level as an int (1-6) or as "H1".."H6".
func (h *Heading) UnmarshalJSON(data []byte) error {
	type alias Heading
	aux := struct {
		Level json.RawMessage `json:"level"`
		*alias
	}{alias: (*alias)(h)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	var n int
	if err := json.Unmarshal(aux.Level, &n); err == nil {
		h.Level = n
		return nil
	}

	var s string
	if err := json.Unmarshal(aux.Level, &s); err != nil {
		return fmt.Errorf("heading level: neither int nor string: %w", err)
	}
	s = strings.TrimPrefix(strings.ToUpper(s), "H")
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("heading level %q: %w", s, err)
	}
	h.Level = n
	return nil
}
