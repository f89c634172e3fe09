package grouping

// ============================================================================
// SELECTORS: Field-name or function key extraction
// ============================================================================
// A Selector is resolved once, at the start of GroupBy, into a single
// func(T) Key. The two constructors are the only ways to build one.
//
// Usage:
//
//	grouping.GroupBy(records, grouping.ByField[grouping.Record]("team"))
//	grouping.GroupBy(words, grouping.ByFunc(func(w Word) any { return w.Score > 1000 }))
//
// ============================================================================

// Fielder is implemented by records that expose named fields.
// ok is false when the record has no such field.
type Fielder interface {
	Field(name string) (value any, ok bool)
}

// Record is a schemaless record: field name → value.
type Record map[string]any

// Field implements Fielder.
func (r Record) Field(name string) (any, bool) {
	v, ok := r[name]
	return v, ok
}

// Selector computes the group key of a record of type T.
type Selector[T any] struct {
	field string
	fn    func(T) any
}

// ByField groups by a named field. Records without the field land in the
// Missing group.
func ByField[T Fielder](name string) Selector[T] {
	return Selector[T]{
		field: name,
		fn: func(r T) any {
			v, ok := r.Field(name)
			if !ok {
				return nil
			}
			return v
		},
	}
}

// ByFunc groups by the value fn returns. A panic inside fn reaches the caller
// of GroupBy unchanged.
func ByFunc[T any](fn func(T) any) Selector[T] {
	return Selector[T]{fn: fn}
}

// Field returns the field name for ByField selectors and "" otherwise.
func (s Selector[T]) Field() string { return s.field }

func (s Selector[T]) resolve() func(T) Key {
	fn := s.fn
	if fn == nil {
		return func(T) Key { return Missing() }
	}
	return func(r T) Key { return KeyOf(fn(r)) }
}

// ============================================================================
// FIELDS: Named accessors for typed structs
// ============================================================================
//
// Usage:
//
//	fields := grouping.NewFields[Word]().
//	    Field("word", func(w Word) any { return w.Word }).
//	    Field("numSyllables", func(w Word) any { return w.NumSyllables })
//
//	func (w Word) Field(name string) (any, bool) { return fields.Get(w, name) }
//
// ============================================================================

// Fields maps field names to accessor functions for a struct type.
// Declare once, read many times.
type Fields[T any] struct {
	order []string
	fns   map[string]func(T) any
}

// NewFields creates an empty accessor registry for type T.
func NewFields[T any]() *Fields[T] {
	return &Fields[T]{fns: make(map[string]func(T) any)}
}

// Field registers an accessor. Registering a name twice replaces the accessor.
func (f *Fields[T]) Field(name string, fn func(T) any) *Fields[T] {
	if _, exists := f.fns[name]; !exists {
		f.order = append(f.order, name)
	}
	f.fns[name] = fn
	return f
}

// Get reads a named field from v.
func (f *Fields[T]) Get(v T, name string) (any, bool) {
	fn, ok := f.fns[name]
	if !ok {
		return nil, false
	}
	return fn(v), true
}

// Names returns the registered field names in registration order.
func (f *Fields[T]) Names() []string { return f.order }

// ByField builds a selector over a registered field. Unknown names select
// the Missing key for every record.
func (f *Fields[T]) ByField(name string) Selector[T] {
	fn, ok := f.fns[name]
	if !ok {
		return Selector[T]{field: name, fn: func(T) any { return nil }}
	}
	return Selector[T]{field: name, fn: fn}
}
