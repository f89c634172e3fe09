package main

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spektr-org/wordgroup/datamuse"
	"github.com/spektr-org/wordgroup/grouping"
	"github.com/spektr-org/wordgroup/records"
	"github.com/spektr-org/wordgroup/render"
)

func (a *app) groupCmd() *cobra.Command {
	var (
		by       string
		rhymes   string
		synonyms string
		where    []string
		agg      string
		measure  string
	)

	cmd := &cobra.Command{
		Use:   "group --by <field> [file]",
		Short: "Group records by a field",
		Long: `Group JSON or CSV records by the value of one field.

Records are read from file, or stdin when file is "-" or omitted. A JSON
input must be an array of objects; a CSV input needs a header row. Records
without the field are grouped last under "(missing)".

With --rhymes or --synonyms the records are the words Datamuse returns, and
--by names one of their fields: word, score, numSyllables, tags.

--where keeps only records whose field renders as one of the given values
(case-insensitive). --agg replaces the record listing with one summary row
per group: count, or sum/avg/min/max of the numeric --measure field.`,
		Example: `  wordgroup group --by team people.csv
  cat scores.json | wordgroup group --by score --order lexical
  wordgroup group --by score --rhymes cat --format pretty
  wordgroup group --by team --where region=emea --agg avg --measure score data.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			by = strings.TrimSpace(by)
			if by == "" {
				return errors.New("--by is required")
			}

			opts, err := newGroupOptions(by, where, agg, measure)
			if err != nil {
				return err
			}

			if rhymes != "" || synonyms != "" {
				if len(args) > 0 {
					return errors.New("a file cannot be combined with --rhymes or --synonyms")
				}
				return a.groupWords(cmd, opts, rhymes, synonyms)
			}

			var recs []grouping.Record
			if len(args) == 0 || args[0] == "-" {
				recs, err = records.Read(cmd.InOrStdin())
			} else {
				recs, err = records.Load(args[0])
			}
			if err != nil {
				return err
			}

			return runGroup(a, cmd, recs, opts)
		},
	}

	cmd.Flags().StringVar(&by, "by", "", "field to group by (required)")
	cmd.Flags().StringVar(&rhymes, "rhymes", "", "group the rhymes of this word")
	cmd.Flags().StringVar(&synonyms, "synonyms", "", "group the similar-meaning words of this word")
	cmd.Flags().StringArrayVar(&where, "where", nil, "keep records with field=value (repeatable)")
	cmd.Flags().StringVar(&agg, "agg", "", "summarize each group: count, sum, avg, min, max")
	cmd.Flags().StringVar(&measure, "measure", "", "numeric field for --agg sum/avg/min/max")
	cmd.MarkFlagsMutuallyExclusive("rhymes", "synonyms")
	return cmd
}

// groupOptions are the validated group flags.
type groupOptions struct {
	by      string
	where   grouping.Where
	agg     grouping.Aggregation
	measure string
}

func newGroupOptions(by string, where []string, agg, measure string) (groupOptions, error) {
	opts := groupOptions{by: by, measure: strings.TrimSpace(measure)}

	w, err := grouping.ParseWhere(where)
	if err != nil {
		return opts, err
	}
	opts.where = w

	if agg != "" {
		if opts.agg, err = grouping.ParseAggregation(agg); err != nil {
			return opts, err
		}
		if opts.agg != grouping.AggCount && opts.measure == "" {
			return opts, fmt.Errorf("--agg %s needs --measure", opts.agg)
		}
	} else if opts.measure != "" {
		return opts, errors.New("--measure needs --agg")
	}
	return opts, nil
}

// runGroup filters, groups and renders records of any Fielder type.
func runGroup[T grouping.Fielder](a *app, cmd *cobra.Command, recs []T, opts groupOptions) error {
	recs = grouping.Filter(recs, opts.where)
	groups := grouping.GroupBy(recs, grouping.ByField[T](opts.by), grouping.WithOrder(a.keyOrder))
	a.logger.Debug("grouped records",
		zap.String("field", opts.by),
		zap.Int("records", groups.Total()),
		zap.Int("groups", groups.Len()))

	if opts.agg == "" {
		return render.Groups(a.renderer, cmd.OutOrStdout(), groups)
	}
	var measure func(T) (float64, bool)
	if opts.agg != grouping.AggCount {
		measure = grouping.Measure[T](opts.measure)
	}
	sums := grouping.Summarize(groups, opts.agg, measure)
	return a.renderer.Summaries(cmd.OutOrStdout(), opts.agg, opts.measure, sums)
}

func (a *app) groupWords(cmd *cobra.Command, opts groupOptions, rhymes, synonyms string) error {
	fields := datamuse.FieldNames()
	for _, f := range append([]string{opts.by, opts.measure}, keys(opts.where)...) {
		if f != "" && !slices.Contains(fields, f) {
			return fmt.Errorf("unknown word field %q (want one of %s)", f, strings.Join(fields, ", "))
		}
	}

	rel, word := datamuse.Rhymes, rhymes
	if synonyms != "" {
		rel, word = datamuse.MeansLike, synonyms
	}

	words, err := a.client.Find(cmd.Context(), rel, word)
	if err != nil {
		_ = a.renderer.Failure(cmd.OutOrStdout(), err)
		return fmt.Errorf("%s for %q: %w", rel, word, err)
	}

	return runGroup(a, cmd, words, opts)
}

func keys(w grouping.Where) []string {
	out := make([]string, 0, len(w))
	for k := range w {
		out = append(out, k)
	}
	return out
}
