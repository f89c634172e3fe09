package grouping

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"unicode/utf16"
)

// ============================================================================
// OPTIONS: Functional options for GroupBy()
// ============================================================================

// Order selects how group keys are sorted.
type Order int

const (
	// OrderNatural sorts numbers numerically, then strings, then booleans,
	// with missing keys last: 1, 2, 10.
	OrderNatural Order = iota
	// OrderLexical sorts keys by their text, missing keys last: 1, 10, 2.
	// Text is compared by UTF-16 code unit the way a JavaScript sort does,
	// so "\U0001F600" sorts before "\uFF61" and 1e21 sorts as "1e+21".
	OrderLexical
)

func (o Order) String() string {
	if o == OrderLexical {
		return "lexical"
	}
	return "natural"
}

// ParseOrder accepts "natural", "numeric" or "lexical". Empty means natural.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "natural", "numeric":
		return OrderNatural, nil
	case "lexical", "text":
		return OrderLexical, nil
	default:
		return OrderNatural, fmt.Errorf("unknown key order %q", s)
	}
}

// Less reports whether key a sorts before key b under the order.
func (o Order) Less(a, b Key) bool {
	return o.compare(a, b) < 0
}

func (o Order) compare(a, b Key) int {
	// Missing sorts last under every order.
	if a.kind == KindMissing || b.kind == KindMissing {
		return compareInt(missingRank(a), missingRank(b))
	}
	if o == OrderLexical {
		if c := compareUTF16(a.String(), b.String()); c != 0 {
			return c
		}
	}
	return compareNatural(a, b)
}

func compareNatural(a, b Key) int {
	if a.kind != b.kind {
		return compareInt(int(a.kind), int(b.kind))
	}
	switch a.kind {
	case KindNumber:
		return compareNumber(a, b)
	case KindString:
		return strings.Compare(a.str, b.str)
	case KindBool:
		return compareFloat(a.num, b.num)
	}
	return 0
}

func missingRank(k Key) int {
	if k.kind == KindMissing {
		return 1
	}
	return 0
}

func compareUTF16(a, b string) int {
	return slices.Compare(utf16.Encode([]rune(a)), utf16.Encode([]rune(b)))
}

// compareNumber compares exact integers without rounding them to float64.
func compareNumber(a, b Key) int {
	if a.exact && b.exact {
		switch {
		case a.neg != b.neg:
			if a.neg {
				return -1
			}
			return 1
		case a.neg:
			return compareUint(b.mag, a.mag)
		default:
			return compareUint(a.mag, b.mag)
		}
	}
	c := compareFloat(a.num, b.num)
	if c != 0 || a.exact == b.exact {
		return c
	}
	// A float that rounds onto an exact integer lies beyond 2^64, so the
	// exact key is the one nearer zero.
	if a.exact != (a.num < 0) {
		return -1
	}
	return 1
}

func compareUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// compareFloat orders NaN after every other number.
func compareFloat(a, b float64) int {
	an, bn := math.IsNaN(a), math.IsNaN(b)
	switch {
	case an && bn:
		return 0
	case an:
		return 1
	case bn:
		return -1
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Option configures GroupBy via the functional options pattern.
type Option func(*config)

type config struct {
	Order Order
}

// WithOrder sets the key order. The default is OrderNatural.
func WithOrder(o Order) Option {
	return func(c *config) {
		c.Order = o
	}
}

func applyOptions(opts []Option) *config {
	cfg := &config{Order: OrderNatural}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
