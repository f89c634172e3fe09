package lookup

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/spektr-org/wordgroup/datamuse"
	"github.com/spektr-org/wordgroup/grouping"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeFinder struct {
	mu      sync.Mutex
	results map[datamuse.Relation][]datamuse.Word
	errs    map[datamuse.Relation]error
	calls   []string
}

func (f *fakeFinder) Find(ctx context.Context, rel datamuse.Relation, word string) ([]datamuse.Word, error) {
	f.mu.Lock()
	f.calls = append(f.calls, rel.String()+":"+word)
	f.mu.Unlock()
	if err := f.errs[rel]; err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.results[rel], nil
}

func syl(n int) *int { return &n }

func catFinder() *fakeFinder {
	return &fakeFinder{
		results: map[datamuse.Relation][]datamuse.Word{
			datamuse.Rhymes: {
				{Word: "hat", NumSyllables: syl(1)},
				{Word: "acrobat", NumSyllables: syl(3)},
				{Word: "format", NumSyllables: syl(2)},
				{Word: "that", NumSyllables: syl(1)},
				{Word: "diplomat", NumSyllables: syl(3)},
			},
			datamuse.MeansLike: {
				{Word: "kitty"},
				{Word: "feline"},
			},
		},
	}
}

func TestRhymesSectionedBySyllables(t *testing.T) {
	svc := New(catFinder())

	res, err := svc.Rhymes(context.Background(), " cat ")
	require.NoError(t, err)

	assert.Equal(t, "cat", res.Query)
	assert.Equal(t, "rhymes", res.Kind)
	assert.Equal(t, "Words that rhyme with cat:", res.Description)
	require.Len(t, res.Sections, 3)

	assert.Equal(t, "1 syllable:", res.Sections[0].Title)
	assert.Equal(t, []string{"hat", "that"}, words(res.Sections[0]))
	assert.Equal(t, "2 syllables:", res.Sections[1].Title)
	assert.Equal(t, []string{"format"}, words(res.Sections[1]))
	assert.Equal(t, "3 syllables:", res.Sections[2].Title)
	assert.Equal(t, []string{"acrobat", "diplomat"}, words(res.Sections[2]))

	assert.False(t, res.Empty())
	assert.Equal(t, 5, res.Count())
}

func TestRhymesLexicalOrder(t *testing.T) {
	f := &fakeFinder{results: map[datamuse.Relation][]datamuse.Word{
		datamuse.Rhymes: {
			{Word: "a", NumSyllables: syl(2)},
			{Word: "b", NumSyllables: syl(10)},
			{Word: "c", NumSyllables: syl(1)},
			{Word: "d"},
		},
	}}

	res, err := New(f, WithOrder(grouping.OrderLexical)).Rhymes(context.Background(), "x")
	require.NoError(t, err)

	titles := make([]string, len(res.Sections))
	for i, s := range res.Sections {
		titles[i] = s.Title
	}
	assert.Equal(t, []string{"1 syllable:", "10 syllables:", "2 syllables:", "? syllables:"}, titles)
}

func TestSynonymsFlat(t *testing.T) {
	res, err := New(catFinder()).Synonyms(context.Background(), "cat")
	require.NoError(t, err)

	assert.Equal(t, "Words with a meaning similar to cat:", res.Description)
	require.Len(t, res.Sections, 1)
	assert.Empty(t, res.Sections[0].Title)
	assert.Equal(t, []string{"kitty", "feline"}, words(res.Sections[0]))
}

func TestLookupNoResults(t *testing.T) {
	res, err := New(&fakeFinder{}).Rhymes(context.Background(), "orange")
	require.NoError(t, err)
	assert.True(t, res.Empty())
	assert.NotNil(t, res.Sections)
	assert.Equal(t, 0, res.Count())
}

func TestLookupFailure(t *testing.T) {
	boom := errors.New("connection refused")
	f := &fakeFinder{errs: map[datamuse.Relation]error{datamuse.Rhymes: boom}}

	_, err := New(f).Rhymes(context.Background(), "cat")
	require.ErrorIs(t, err, boom)
	assert.Equal(t, `rhymes for "cat": connection refused`, err.Error())
}

func TestBoth(t *testing.T) {
	f := catFinder()
	rhymes, synonyms, err := New(f).Both(context.Background(), "cat")
	require.NoError(t, err)

	assert.Equal(t, 5, rhymes.Count())
	assert.Equal(t, 2, synonyms.Count())
	assert.ElementsMatch(t, []string{"rhymes:cat", "synonyms:cat"}, f.calls)
}

func TestBothFailure(t *testing.T) {
	boom := errors.New("boom")
	f := catFinder()
	f.errs = map[datamuse.Relation]error{datamuse.MeansLike: boom}

	rhymes, synonyms, err := New(f).Both(context.Background(), "cat")
	require.ErrorIs(t, err, boom)
	assert.Nil(t, rhymes)
	assert.Nil(t, synonyms)
}

func TestSyllableTitle(t *testing.T) {
	cases := []struct {
		key  grouping.Key
		want string
	}{
		{grouping.Number(1), "1 syllable:"},
		{grouping.Number(0), "0 syllables:"},
		{grouping.Number(4), "4 syllables:"},
		{grouping.Missing(), "? syllables:"},
		{grouping.StringKey("many"), "many syllables:"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, SyllableTitle(c.key))
	}
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "", Plural(1))
	assert.Equal(t, "s", Plural(0))
	assert.Equal(t, "s", Plural(2))
}

func words(s Section) []string {
	out := make([]string, len(s.Words))
	for i, w := range s.Words {
		out[i] = w.Word
	}
	return out
}
