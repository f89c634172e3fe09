package grouping

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// ============================================================================
// KEY: Sortable group key
// ============================================================================
// Selectors return arbitrary values. Every value is coerced once into a Key
// so that grouping and sorting never inspect the raw value again.
// Integers keep their exact value: 2^53 and 2^53+1 are different keys.
// ============================================================================

// Kind classifies a Key. The declaration order is the natural sort rank.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindBool
	KindMissing
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	default:
		return "missing"
	}
}

// MissingText is how a Missing key renders as text.
const MissingText = "(missing)"

// maxExact is 2^64: whole numbers below it in magnitude are held exactly.
const maxExact = 1 << 64

// Key is a group key coerced from whatever a selector returned.
type Key struct {
	kind Kind
	num  float64
	str  string

	// exact integer value, sign and magnitude
	exact bool
	neg   bool
	mag   uint64
}

// keyID is the identity of a Key inside a map. Floats are not used directly
// so that NaN keys collapse into one group.
type keyID struct {
	kind Kind
	text string
}

// Missing returns the key used for absent fields and nil values.
func Missing() Key { return Key{kind: KindMissing} }

// Number returns a numeric key. Whole values are held as exact integers, so
// Number(2) and Int(2) are the same key.
func Number(f float64) Key {
	if f == 0 {
		f = 0 // folds -0 into 0
	}
	k := Key{kind: KindNumber, num: f}
	if f == math.Trunc(f) && math.Abs(f) < maxExact {
		k.exact = true
		k.neg = f < 0
		k.mag = uint64(math.Abs(f))
	}
	return k
}

// Int returns an exact integer key.
func Int(i int64) Key {
	k := Key{kind: KindNumber, num: float64(i), exact: true}
	if i < 0 {
		k.neg = true
		k.mag = uint64(-(i + 1)) + 1
	} else {
		k.mag = uint64(i)
	}
	return k
}

// Uint returns an exact unsigned integer key.
func Uint(u uint64) Key {
	return Key{kind: KindNumber, num: float64(u), exact: true, mag: u}
}

// StringKey returns a string key.
func StringKey(s string) Key { return Key{kind: KindString, str: s} }

// Bool returns a boolean key.
func Bool(b bool) Key {
	if b {
		return Key{kind: KindBool, num: 1}
	}
	return Key{kind: KindBool}
}

// KeyOf coerces a selector result into a Key. Pointers are followed; a nil
// pointer is Missing.
func KeyOf(v any) Key {
	switch x := v.(type) {
	case nil:
		return Missing()
	case Key:
		return x
	case string:
		return StringKey(x)
	case bool:
		return Bool(x)
	case int:
		return Int(int64(x))
	case int8:
		return Int(int64(x))
	case int16:
		return Int(int64(x))
	case int32:
		return Int(int64(x))
	case int64:
		return Int(x)
	case uint:
		return Uint(uint64(x))
	case uint8:
		return Uint(uint64(x))
	case uint16:
		return Uint(uint64(x))
	case uint32:
		return Uint(uint64(x))
	case uint64:
		return Uint(x)
	case float32:
		return Number(float64(x))
	case float64:
		return Number(x)
	case json.Number:
		return numberKey(x.String())
	}
	return reflectKey(v)
}

// numberKey parses decoded JSON number text, integers first so that large
// IDs stay exact.
func numberKey(s string) Key {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(i)
	}
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return Uint(u)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Number(f)
	}
	return StringKey(s)
}

func reflectKey(v any) Key {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return Missing()
		}
		if s, ok := v.(fmt.Stringer); ok {
			return StringKey(s.String())
		}
		return KeyOf(rv.Elem().Interface())
	}
	if s, ok := v.(fmt.Stringer); ok {
		return StringKey(s.String())
	}

	// named types over basic kinds
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Uint(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return Number(rv.Float())
	case reflect.String:
		return StringKey(rv.String())
	case reflect.Bool:
		return Bool(rv.Bool())
	}
	return StringKey(fmt.Sprint(v))
}

// Kind reports the key's kind.
func (k Key) Kind() Kind { return k.kind }

// IsMissing reports whether the key came from an absent field or nil value.
func (k Key) IsMissing() bool { return k.kind == KindMissing }

// Float returns the numeric value and whether the key is a number.
// Integers beyond 2^53 are rounded.
func (k Key) Float() (float64, bool) {
	return k.num, k.kind == KindNumber
}

// Value returns the key as a plain Go value: float64, string, bool or nil.
// Integers too large for a float64 to hold exactly come back as int64 or
// uint64.
func (k Key) Value() any {
	switch k.kind {
	case KindNumber:
		if k.exact && k.mag > 1<<53 {
			switch {
			case !k.neg:
				return k.mag
			case k.mag <= 1<<63:
				return -int64(k.mag-1) - 1
			}
		}
		return k.num
	case KindString:
		return k.str
	case KindBool:
		return k.num == 1
	default:
		return nil
	}
}

// String renders the key the way a default string conversion would.
// Whole numbers have no decimal point, so 2 renders as "2"; very large and
// very small fractions use exponent form, so 1e21 renders as "1e+21".
func (k Key) String() string {
	switch k.kind {
	case KindNumber:
		if k.exact {
			if k.neg {
				return "-" + strconv.FormatUint(k.mag, 10)
			}
			return strconv.FormatUint(k.mag, 10)
		}
		return formatNumber(k.num)
	case KindString:
		return k.str
	case KindBool:
		return strconv.FormatBool(k.num == 1)
	default:
		return MissingText
	}
}

// Equal reports whether two keys identify the same group.
func (k Key) Equal(o Key) bool { return k.id() == o.id() }

func (k Key) id() keyID {
	if k.kind == KindMissing {
		return keyID{kind: KindMissing}
	}
	return keyID{kind: k.kind, text: k.String()}
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	if abs := math.Abs(f); abs >= 1e21 || (abs != 0 && abs < 1e-6) {
		// 1.5e-07 → 1.5e-7
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
		return mant + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
