package grouping

import (
	"bytes"
	"sort"

	json "github.com/goccy/go-json"
)

// ============================================================================
// GROUPBY: Partition records into key-sorted groups
// ============================================================================
// Pipeline: resolve selector → bucket in input order → sort buckets by key.
// Buckets keep first-seen record order; the sort is stable.
// ============================================================================

// Group is one bucket of a grouping result.
type Group[T any] struct {
	Key   Key
	Items []T
}

// Groups is the ordered result of GroupBy, sorted ascending by key.
type Groups[T any] struct {
	groups []Group[T]
	index  map[keyID]int
	order  Order
}

// GroupBy partitions records by the key sel computes for each of them.
// Every record lands in exactly one group. Groups are sorted by key under
// the configured Order; records inside a group keep their input order.
//
// Example:
//
//	teams := grouping.GroupBy([]grouping.Record{
//	    {"name": "Steve", "team": "blue"},
//	    {"name": "Jack", "team": "red"},
//	    {"name": "Carol", "team": "blue"},
//	}, grouping.ByField[grouping.Record]("team"))
//	// blue: [Steve Carol], red: [Jack]
func GroupBy[T any](records []T, sel Selector[T], opts ...Option) *Groups[T] {
	cfg := applyOptions(opts)
	keyOf := sel.resolve()

	g := newGroups[T](cfg.Order)
	for _, r := range records {
		g.add(keyOf(r), r)
	}
	g.sort()
	return g
}

// GroupByE is GroupBy for key functions that can fail. The first error is
// returned exactly as fn produced it and no result is returned with it.
func GroupByE[T any](records []T, fn func(T) (any, error), opts ...Option) (*Groups[T], error) {
	cfg := applyOptions(opts)

	g := newGroups[T](cfg.Order)
	for _, r := range records {
		v, err := fn(r)
		if err != nil {
			return nil, err
		}
		g.add(KeyOf(v), r)
	}
	g.sort()
	return g, nil
}

func newGroups[T any](order Order) *Groups[T] {
	return &Groups[T]{
		index: make(map[keyID]int),
		order: order,
	}
}

func (g *Groups[T]) add(k Key, r T) {
	id := k.id()
	i, exists := g.index[id]
	if !exists {
		i = len(g.groups)
		g.index[id] = i
		g.groups = append(g.groups, Group[T]{Key: k})
	}
	g.groups[i].Items = append(g.groups[i].Items, r)
}

func (g *Groups[T]) sort() {
	sort.SliceStable(g.groups, func(i, j int) bool {
		return g.order.Less(g.groups[i].Key, g.groups[j].Key)
	})
	for i := range g.groups {
		g.index[g.groups[i].Key.id()] = i
	}
}

// Len returns the number of groups.
func (g *Groups[T]) Len() int { return len(g.groups) }

// Total returns the number of records across all groups.
func (g *Groups[T]) Total() int {
	n := 0
	for _, grp := range g.groups {
		n += len(grp.Items)
	}
	return n
}

// Keys returns the group keys in sorted order.
func (g *Groups[T]) Keys() []Key {
	keys := make([]Key, len(g.groups))
	for i, grp := range g.groups {
		keys[i] = grp.Key
	}
	return keys
}

// All returns the groups in sorted order. The slice is shared with g.
func (g *Groups[T]) All() []Group[T] { return g.groups }

// Lookup returns the records grouped under key. key is coerced the same way
// selector results are, so Lookup(2) and Lookup(2.0) find the same group.
func (g *Groups[T]) Lookup(key any) ([]T, bool) {
	i, ok := g.index[KeyOf(key).id()]
	if !ok {
		return nil, false
	}
	return g.groups[i].Items, true
}

// Order returns the key order the groups were sorted with.
func (g *Groups[T]) Order() Order { return g.order }

// MarshalJSON encodes the groups as a JSON object whose members appear in
// key order: {"blue":[...],"red":[...]}.
func (g *Groups[T]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, grp := range g.groups {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(grp.Key.String())
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')

		items := grp.Items
		if items == nil {
			items = []T{}
		}
		body, err := json.Marshal(items)
		if err != nil {
			return nil, err
		}
		buf.Write(body)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
