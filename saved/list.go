// Package saved keeps the user's list of saved words.
package saved

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"golang.org/x/text/cases"
)

// None is what an empty list renders as.
const None = "(none)"

// List is an insertion-ordered set of words. Words that differ only in case
// are the same word; the first spelling wins.
type List struct {
	words []string
	seen  map[string]bool
	fold  cases.Caser
}

// NewList creates a list holding words, duplicates removed.
func NewList(words ...string) *List {
	l := &List{
		seen: make(map[string]bool),
		fold: cases.Fold(),
	}
	for _, w := range words {
		l.Add(w)
	}
	return l
}

// Add appends word unless it is blank or already saved. It reports whether
// the list changed.
func (l *List) Add(word string) bool {
	word = strings.TrimSpace(word)
	if word == "" {
		return false
	}
	key := l.fold.String(word)
	if l.seen[key] {
		return false
	}
	l.seen[key] = true
	l.words = append(l.words, word)
	return true
}

// Contains reports whether word is saved.
func (l *List) Contains(word string) bool {
	return l.seen[l.fold.String(strings.TrimSpace(word))]
}

// Words returns the saved words in the order they were added.
func (l *List) Words() []string {
	out := make([]string, len(l.words))
	copy(out, l.words)
	return out
}

// Len returns the number of saved words.
func (l *List) Len() int { return len(l.words) }

// String joins the words with ", ", or returns None for an empty list.
func (l *List) String() string {
	if len(l.words) == 0 {
		return None
	}
	return strings.Join(l.words, ", ")
}

// Load reads a list from a JSON array file. A missing file yields an empty list.
func Load(path string) (*List, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewList(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read saved words: %w", err)
	}

	var words []string
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, fmt.Errorf("failed to parse saved words %s: %w", path, err)
	}
	return NewList(words...), nil
}

// Save writes the list to path as a JSON array, replacing the file atomically.
func (l *List) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}

	words := l.words
	if words == nil {
		words = []string{}
	}
	data, err := json.MarshalIndent(words, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode saved words: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".saved-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write saved words: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write saved words: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
