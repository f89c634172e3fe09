package render

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	json "github.com/goccy/go-json"

	"github.com/spektr-org/wordgroup/grouping"
	"github.com/spektr-org/wordgroup/lookup"
	"github.com/spektr-org/wordgroup/saved"
)

// ============================================================================
// RENDERERS: text, json, pretty, csv
// ============================================================================
// Every output surface of the CLI and the shell goes through a Renderer.
// Text is for people, json/pretty for scripts, csv for spreadsheets.
// ============================================================================

// Format is an output format.
type Format string

const (
	FormatText   Format = "text"
	FormatJSON   Format = "json"
	FormatPretty Format = "pretty"
	FormatCSV    Format = "csv"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat validates a format name. Empty means text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatPretty, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (want text, json, pretty or csv)", ErrUnknownFormat, s)
	}
}

// Renderer writes results in one format.
type Renderer struct {
	Format Format
	Color  bool
}

// New creates a Renderer for the named format.
func New(format string, useColor bool) (*Renderer, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return &Renderer{Format: f, Color: useColor}, nil
}

func (r *Renderer) paint(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if r.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// ============================================================================
// LOOKUP RESULTS
// ============================================================================

// Lookup writes one or more lookup results.
func (r *Renderer) Lookup(w io.Writer, results ...*lookup.Result) error {
	switch r.Format {
	case FormatJSON, FormatPretty:
		if len(results) == 1 {
			return r.writeJSON(w, results[0])
		}
		return r.writeJSON(w, results)
	case FormatCSV:
		return writeLookupCSV(w, results)
	default:
		for i, res := range results {
			if i > 0 {
				fmt.Fprintln(w)
			}
			r.writeLookupText(w, res)
		}
		return nil
	}
}

func (r *Renderer) writeLookupText(w io.Writer, res *lookup.Result) {
	r.paint(color.Bold).Fprintln(w, res.Description)
	if res.Empty() {
		fmt.Fprintln(w, lookup.NoResults)
		return
	}
	heading := r.paint(color.FgCyan, color.Bold)
	for _, s := range res.Sections {
		if s.Title != "" {
			heading.Fprintln(w, s.Title)
		}
		for _, word := range s.Words {
			fmt.Fprintf(w, "  - %s\n", word.Word)
		}
	}
}

func writeLookupCSV(w io.Writer, results []*lookup.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"relation", "query", "section", "word", "score", "syllables"}); err != nil {
		return err
	}
	for _, res := range results {
		for _, s := range res.Sections {
			for _, word := range s.Words {
				syllables := ""
				if n, ok := word.Syllables(); ok {
					syllables = strconv.Itoa(n)
				}
				row := []string{res.Kind, res.Query, strings.TrimSuffix(s.Title, ":"), word.Word, strconv.Itoa(word.Score), syllables}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// Failure writes the user-facing failure for a lookup error.
func (r *Renderer) Failure(w io.Writer, err error) error {
	switch r.Format {
	case FormatJSON, FormatPretty:
		return r.writeJSON(w, struct {
			Error  string `json:"error"`
			Detail string `json:"detail"`
		}{lookup.FailureMessage, err.Error()})
	default:
		r.paint(color.FgRed).Fprintln(w, lookup.FailureMessage)
		return nil
	}
}

// ============================================================================
// GENERIC GROUPS
// ============================================================================

// Groups writes a grouping result. Records are shown as compact JSON in text
// and csv output.
func Groups[T any](r *Renderer, w io.Writer, g *grouping.Groups[T]) error {
	switch r.Format {
	case FormatJSON, FormatPretty:
		return r.writeJSON(w, g)
	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"key", "record"}); err != nil {
			return err
		}
		for _, grp := range g.All() {
			for _, item := range grp.Items {
				b, err := json.Marshal(item)
				if err != nil {
					return fmt.Errorf("failed to encode record: %w", err)
				}
				if err := cw.Write([]string{grp.Key.String(), string(b)}); err != nil {
					return err
				}
			}
		}
		cw.Flush()
		return cw.Error()
	default:
		if g.Len() == 0 {
			fmt.Fprintln(w, lookup.NoResults)
			return nil
		}
		heading := r.paint(color.FgCyan, color.Bold)
		for _, grp := range g.All() {
			heading.Fprintf(w, "%s (%d):\n", grp.Key, len(grp.Items))
			for _, item := range grp.Items {
				b, err := json.Marshal(item)
				if err != nil {
					return fmt.Errorf("failed to encode record: %w", err)
				}
				fmt.Fprintf(w, "  %s\n", b)
			}
		}
		return nil
	}
}

// Summaries writes per-group aggregates. measure names the aggregated field
// and is empty for counts.
func (r *Renderer) Summaries(w io.Writer, agg grouping.Aggregation, measure string, sums []grouping.Summary) error {
	switch r.Format {
	case FormatJSON, FormatPretty:
		return r.writeJSON(w, sums)
	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"key", "count", strings.ToLower(agg.Label())}); err != nil {
			return err
		}
		for _, s := range sums {
			row := []string{s.Key.String(), strconv.Itoa(s.Count), strconv.FormatFloat(s.Value, 'f', -1, 64)}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	default:
		if len(sums) == 0 {
			fmt.Fprintln(w, lookup.NoResults)
			return nil
		}
		label := agg.Label()
		if measure != "" && agg != grouping.AggCount {
			label = fmt.Sprintf("%s of %s", label, measure)
		}
		r.paint(color.Bold).Fprintln(w, label+":")
		for _, s := range sums {
			fmt.Fprintf(w, "  %s: %s (%d)\n", s.Key, strconv.FormatFloat(s.Value, 'f', -1, 64), s.Count)
		}
		return nil
	}
}

// ============================================================================
// SAVED WORDS
// ============================================================================

// Saved writes the saved-words list.
func (r *Renderer) Saved(w io.Writer, l *saved.List) error {
	switch r.Format {
	case FormatJSON, FormatPretty:
		return r.writeJSON(w, l.Words())
	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"word"}); err != nil {
			return err
		}
		for _, word := range l.Words() {
			if err := cw.Write([]string{word}); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	default:
		fmt.Fprintf(w, "%s %s\n", r.paint(color.Bold).Sprint("Saved words:"), l)
		return nil
	}
}

// ============================================================================
// JSON OUTPUT
// ============================================================================

func (r *Renderer) writeJSON(w io.Writer, v any) error {
	var out []byte
	var err error

	if r.Format == FormatPretty {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
