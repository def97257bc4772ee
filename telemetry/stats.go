package telemetry

import (
	"log/slog"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// AttributeSummary aggregates one attribute across all particles.
type AttributeSummary struct {
	Round     int     `csv:"round"`
	Attribute string  `csv:"attribute"`
	Kind      string  `csv:"kind"`
	Count     int     `csv:"count"`
	Mean      float64 `csv:"mean"`
	Std       float64 `csv:"std"`
	Min       float64 `csv:"min"`
	P50       float64 `csv:"p50"`
	Max       float64 `csv:"max"`

	// Occurrences of each text value, for enum and bool attributes.
	Counts map[string]int `csv:"-"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// Summarize groups records by attribute name, keeping first-seen order.
// Numeric attributes get distribution statistics; the others get value counts.
func Summarize(records []AttributeRecord) []AttributeSummary {
	var order []string
	byName := make(map[string][]AttributeRecord)
	for _, r := range records {
		if _, ok := byName[r.Attribute]; !ok {
			order = append(order, r.Attribute)
		}
		byName[r.Attribute] = append(byName[r.Attribute], r)
	}

	out := make([]AttributeSummary, 0, len(order))
	for _, name := range order {
		group := byName[name]
		s := AttributeSummary{
			Round:     group[0].Round,
			Attribute: name,
			Kind:      group[0].Kind,
			Count:     len(group),
		}
		switch s.Kind {
		case "int", "float":
			summarizeNumeric(&s, group)
		default:
			s.Counts = make(map[string]int)
			for _, r := range group {
				s.Counts[r.Value]++
			}
		}
		out = append(out, s)
	}
	return out
}

func summarizeNumeric(s *AttributeSummary, group []AttributeRecord) {
	values := make([]float64, 0, len(group))
	for _, r := range group {
		v, err := strconv.ParseFloat(r.Value, 64)
		if err != nil {
			continue
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return
	}

	sort.Float64s(values)
	s.Mean = stat.Mean(values, nil)
	if len(values) > 1 {
		s.Std = stat.StdDev(values, nil)
	}
	s.Min = floats.Min(values)
	s.Max = floats.Max(values)
	s.P50 = Percentile(values, 0.5)
}

// LogValue implements slog.LogValuer for structured logging.
func (s AttributeSummary) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("attribute", s.Attribute),
		slog.String("kind", s.Kind),
		slog.Int("count", s.Count),
	}
	if s.Counts != nil {
		keys := make([]string, 0, len(s.Counts))
		for k := range s.Counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			attrs = append(attrs, slog.Int("n_"+k, s.Counts[k]))
		}
	} else {
		attrs = append(attrs,
			slog.Float64("mean", s.Mean),
			slog.Float64("std", s.Std),
			slog.Float64("min", s.Min),
			slog.Float64("p50", s.P50),
			slog.Float64("max", s.Max),
		)
	}
	return slog.GroupValue(attrs...)
}
