package grouping

import (
	"fmt"
	"math"
	"strings"

	json "github.com/goccy/go-json"
)

// ============================================================================
// AGGREGATES: per-group count, sum, avg, min, max
// ============================================================================
// Summaries follow the order of the Groups they are computed from. Records
// whose measure is missing or not numeric are counted but not measured.
// ============================================================================

// Aggregation names a per-group reduction.
type Aggregation string

const (
	AggCount Aggregation = "count"
	AggSum   Aggregation = "sum"
	AggAvg   Aggregation = "avg"
	AggMin   Aggregation = "min"
	AggMax   Aggregation = "max"
)

// ParseAggregation validates an aggregation name.
func ParseAggregation(s string) (Aggregation, error) {
	switch a := Aggregation(strings.ToLower(strings.TrimSpace(s))); a {
	case AggCount, AggSum, AggAvg, AggMin, AggMax:
		return a, nil
	default:
		return "", fmt.Errorf("unknown aggregation %q (want count, sum, avg, min or max)", s)
	}
}

// Label returns a column heading for the aggregation.
func (a Aggregation) Label() string {
	switch a {
	case AggSum:
		return "Sum"
	case AggAvg:
		return "Average"
	case AggMin:
		return "Minimum"
	case AggMax:
		return "Maximum"
	default:
		return "Count"
	}
}

// Summary is the reduction of one group.
type Summary struct {
	Key      Key
	Count    int
	Measured int
	Value    float64
}

// MarshalJSON writes the key as text, matching Groups.MarshalJSON.
func (s Summary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key      string  `json:"key"`
		Count    int     `json:"count"`
		Measured int     `json:"measured"`
		Value    float64 `json:"value"`
	}{s.Key.String(), s.Count, s.Measured, s.Value})
}

// Measure returns a numeric accessor for a named field. Values that do not
// key as finite numbers report false.
func Measure[T Fielder](name string) func(T) (float64, bool) {
	return func(r T) (float64, bool) {
		v, ok := r.Field(name)
		if !ok {
			return 0, false
		}
		f, ok := KeyOf(v).Float()
		if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
}

// Summarize reduces every group with agg. measure may be nil for AggCount.
func Summarize[T any](g *Groups[T], agg Aggregation, measure func(T) (float64, bool)) []Summary {
	out := make([]Summary, 0, g.Len())
	for _, grp := range g.All() {
		s := Summary{Key: grp.Key, Count: len(grp.Items)}
		if agg == AggCount || measure == nil {
			s.Value = float64(s.Count)
			out = append(out, s)
			continue
		}

		var total float64
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, item := range grp.Items {
			v, ok := measure(item)
			if !ok {
				continue
			}
			s.Measured++
			total += v
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}

		if s.Measured > 0 {
			switch agg {
			case AggSum:
				s.Value = total
			case AggAvg:
				s.Value = total / float64(s.Measured)
			case AggMin:
				s.Value = lo
			case AggMax:
				s.Value = hi
			}
		}
		out = append(out, s)
	}
	return out
}

// ============================================================================
// FILTERS
// ============================================================================

// Where holds field constraints. Fields are AND-combined; the values listed
// for one field are OR-combined. Values match the key text of the field,
// case-insensitively, so "(missing)" selects records without the field.
type Where map[string][]string

// ParseWhere parses "field=value" terms. Repeating a field adds values.
func ParseWhere(terms []string) (Where, error) {
	w := Where{}
	for _, t := range terms {
		field, value, ok := strings.Cut(t, "=")
		field = strings.TrimSpace(field)
		if !ok || field == "" {
			return nil, fmt.Errorf("invalid filter %q (want field=value)", t)
		}
		w[field] = append(w[field], strings.TrimSpace(value))
	}
	return w, nil
}

// Filter returns the records matching every constraint in w, in input
// order. An empty Where returns records unchanged.
func Filter[T Fielder](records []T, w Where) []T {
	if len(w) == 0 {
		return records
	}

	sets := make(map[string]map[string]bool, len(w))
	for field, allowed := range w {
		set := make(map[string]bool, len(allowed))
		for _, v := range allowed {
			set[strings.ToLower(v)] = true
		}
		sets[field] = set
	}

	out := make([]T, 0, len(records))
	for _, r := range records {
		pass := true
		for field, set := range sets {
			v, _ := r.Field(field)
			if !set[strings.ToLower(KeyOf(v).String())] {
				pass = false
				break
			}
		}
		if pass {
			out = append(out, r)
		}
	}
	return out
}
