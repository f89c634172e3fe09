package datamuse

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spektr-org/wordgroup/grouping"
)

// ============================================================================
// DATAMUSE: Word-relations API boundary
// ============================================================================
// The Client is the ONLY component that calls the Datamuse API.
// It receives a relation + word and returns decoded Words. Grouping and
// presentation happen in the lookup and render packages.
// ============================================================================

// Relation is a kind of word query.
type Relation int

const (
	// Rhymes finds perfect rhymes (rel_rhy).
	Rhymes Relation = iota
	// MeansLike finds words with a similar meaning (ml).
	MeansLike
)

// Param returns the query parameter the API uses for the relation.
func (r Relation) Param() string {
	if r == MeansLike {
		return "ml"
	}
	return "rel_rhy"
}

func (r Relation) String() string {
	if r == MeansLike {
		return "synonyms"
	}
	return "rhymes"
}

// Word is one API result.
type Word struct {
	Word         string   `json:"word"`
	Score        int      `json:"score,omitempty"`
	NumSyllables *int     `json:"numSyllables,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

var wordFields = grouping.NewFields[Word]().
	Field("word", func(w Word) any { return w.Word }).
	Field("score", func(w Word) any { return w.Score }).
	Field("numSyllables", func(w Word) any { return w.NumSyllables }).
	Field("tags", func(w Word) any {
		if len(w.Tags) == 0 {
			return nil
		}
		return fmt.Sprint(w.Tags)
	})

// Field implements grouping.Fielder.
func (w Word) Field(name string) (any, bool) { return wordFields.Get(w, name) }

// FieldNames lists the fields Word exposes for grouping.
func FieldNames() []string { return wordFields.Names() }

// Syllables returns the syllable count and whether the API reported one.
func (w Word) Syllables() (int, bool) {
	if w.NumSyllables == nil {
		return 0, false
	}
	return *w.NumSyllables, true
}

// Finder looks up words related to a word.
// Implementations: Client (HTTP), test fakes.
type Finder interface {
	Find(ctx context.Context, rel Relation, word string) ([]Word, error)
}

// Config holds client configuration.
type Config struct {
	Endpoint string        // API endpoint (empty = DefaultEndpoint)
	Timeout  time.Duration // per-request timeout (0 = DefaultTimeout)
	Max      int           // result cap sent as max= (0 = server default)
}

const (
	DefaultEndpoint = "https://api.datamuse.com/words"
	DefaultTimeout  = 10 * time.Second
)

// DefaultConfig returns a Config with the public endpoint.
func DefaultConfig() Config {
	return Config{
		Endpoint: DefaultEndpoint,
		Timeout:  DefaultTimeout,
	}
}

// ErrEmptyWord is returned when the query word is blank.
var ErrEmptyWord = errors.New("datamuse: empty word")

// StatusError reports a non-200 response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("datamuse API returned %d", e.Code)
	}
	return fmt.Sprintf("datamuse API returned %d: %s", e.Code, e.Body)
}
