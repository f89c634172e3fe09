// Package lookup turns a word query into render-ready results: a
// description line and titled sections of words. Rhymes are sectioned by
// syllable count; synonyms come back as one flat section.
package lookup

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spektr-org/wordgroup/datamuse"
	"github.com/spektr-org/wordgroup/grouping"
)

// FailureMessage is shown in place of the description when the API call fails.
const FailureMessage = "Failed to fetch from Datamuse API."

// NoResults is shown when the API returned no words.
const NoResults = "(no results)"

// Section is a titled run of words. Title is empty for synonyms.
type Section struct {
	Title string          `json:"title,omitempty"`
	Words []datamuse.Word `json:"words"`
}

// Result is the outcome of one lookup.
type Result struct {
	Query       string            `json:"query"`
	Relation    datamuse.Relation `json:"-"`
	Kind        string            `json:"kind"`
	Description string            `json:"description"`
	Sections    []Section         `json:"sections"`
}

// Empty reports whether the lookup found no words.
func (r *Result) Empty() bool {
	for _, s := range r.Sections {
		if len(s.Words) > 0 {
			return false
		}
	}
	return true
}

// Count returns the number of words across all sections.
func (r *Result) Count() int {
	n := 0
	for _, s := range r.Sections {
		n += len(s.Words)
	}
	return n
}

// Service runs lookups through a Finder.
type Service struct {
	finder datamuse.Finder
	logger *zap.Logger
	order  grouping.Order
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithOrder sets how syllable sections are ordered.
func WithOrder(o grouping.Order) Option {
	return func(s *Service) {
		s.order = o
	}
}

// New creates a Service.
func New(finder datamuse.Finder, opts ...Option) *Service {
	s := &Service{
		finder: finder,
		logger: zap.NewNop(),
		order:  grouping.OrderNatural,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rhymes looks up words that rhyme with word, sectioned by syllable count.
func (s *Service) Rhymes(ctx context.Context, word string) (*Result, error) {
	return s.Lookup(ctx, datamuse.Rhymes, word)
}

// Synonyms looks up words with a meaning similar to word.
func (s *Service) Synonyms(ctx context.Context, word string) (*Result, error) {
	return s.Lookup(ctx, datamuse.MeansLike, word)
}

// Lookup runs one query of the given relation.
func (s *Service) Lookup(ctx context.Context, rel datamuse.Relation, word string) (*Result, error) {
	word = strings.TrimSpace(word)

	words, err := s.finder.Find(ctx, rel, word)
	if err != nil {
		s.logger.Warn("lookup failed",
			zap.String("relation", rel.String()),
			zap.String("word", word),
			zap.Error(err))
		return nil, fmt.Errorf("%s for %q: %w", rel, word, err)
	}

	result := &Result{
		Query:       word,
		Relation:    rel,
		Kind:        rel.String(),
		Description: Describe(rel, word),
	}

	switch {
	case len(words) == 0:
		result.Sections = []Section{}
	case rel == datamuse.Rhymes:
		result.Sections = s.syllableSections(words)
	default:
		result.Sections = []Section{{Words: words}}
	}

	s.logger.Info("lookup",
		zap.String("relation", rel.String()),
		zap.String("word", word),
		zap.Int("results", len(words)),
		zap.Int("sections", len(result.Sections)))

	return result, nil
}

// Both runs the rhyme and synonym lookups concurrently. If either fails the
// other is canceled and the first error is returned.
func (s *Service) Both(ctx context.Context, word string) (rhymes, synonyms *Result, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rhymes, err = s.Rhymes(gctx, word)
		return err
	})
	g.Go(func() error {
		var err error
		synonyms, err = s.Synonyms(gctx, word)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return rhymes, synonyms, nil
}

func (s *Service) syllableSections(words []datamuse.Word) []Section {
	groups := grouping.GroupBy(words, grouping.ByField[datamuse.Word]("numSyllables"),
		grouping.WithOrder(s.order))

	sections := make([]Section, 0, groups.Len())
	for _, g := range groups.All() {
		sections = append(sections, Section{
			Title: SyllableTitle(g.Key),
			Words: g.Items,
		})
	}
	return sections
}

// Describe returns the description line shown above the results.
func Describe(rel datamuse.Relation, word string) string {
	if rel == datamuse.Rhymes {
		return fmt.Sprintf("Words that rhyme with %s:", word)
	}
	return fmt.Sprintf("Words with a meaning similar to %s:", word)
}

// SyllableTitle renders a syllable-count group key as "1 syllable:",
// "3 syllables:" and so on. Keys without a count render as "? syllables:".
func SyllableTitle(k grouping.Key) string {
	if k.IsMissing() {
		return "? syllables:"
	}
	n, ok := k.Float()
	if !ok {
		return fmt.Sprintf("%s syllables:", k)
	}
	return fmt.Sprintf("%s syllable%s:", k, Plural(n))
}

// Plural returns "" for exactly one and "s" otherwise.
func Plural(n float64) string {
	if n == 1 {
		return ""
	}
	return "s"
}
