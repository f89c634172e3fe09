package grouping

import (
	"math"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyOf(t *testing.T) {
	three := 3
	var nilInt *int
	word := "cat"
	half := 1.5
	big := int64(1 << 62)
	yes := true
	var nilFloat *float64
	type level int

	cases := []struct {
		assertion string
		input     any
		kind      Kind
		text      string
	}{
		{"nil is missing", nil, KindMissing, MissingText},
		{"int", 2, KindNumber, "2"},
		{"uint8", uint8(7), KindNumber, "7"},
		{"float", 2.5, KindNumber, "2.5"},
		{"whole float", 10.0, KindNumber, "10"},
		{"negative zero", math.Copysign(0, -1), KindNumber, "0"},
		{"json number", json.Number("12"), KindNumber, "12"},
		{"bad json number", json.Number("1x"), KindString, "1x"},
		{"int pointer", &three, KindNumber, "3"},
		{"nil int pointer", nilInt, KindMissing, MissingText},
		{"string pointer", &word, KindString, "cat"},
		{"float pointer", &half, KindNumber, "1.5"},
		{"nil float pointer", nilFloat, KindMissing, MissingText},
		{"int64 pointer", &big, KindNumber, "4611686018427387904"},
		{"bool pointer", &yes, KindBool, "true"},
		{"named int", level(4), KindNumber, "4"},
		{"max uint64", uint64(math.MaxUint64), KindNumber, "18446744073709551615"},
		{"min int64", int64(math.MinInt64), KindNumber, "-9223372036854775808"},
		{"large json integer", json.Number("9007199254740993"), KindNumber, "9007199254740993"},
		{"json float", json.Number("2.50"), KindNumber, "2.5"},
		{"large float", 1e21, KindNumber, "1e+21"},
		{"small float", 1.5e-7, KindNumber, "1.5e-7"},
		{"string", "blue", KindString, "blue"},
		{"bool", true, KindBool, "true"},
		{"stringer", time.Second, KindString, "1s"},
		{"slice", []int{1, 2}, KindString, "[1 2]"},
		{"key passthrough", StringKey("x"), KindString, "x"},
		{"infinity", math.Inf(1), KindNumber, "Infinity"},
	}
	for _, c := range cases {
		t.Run(c.assertion, func(t *testing.T) {
			k := KeyOf(c.input)
			assert.Equal(t, c.kind, k.Kind())
			assert.Equal(t, c.text, k.String())
		})
	}
}

func TestKeyValue(t *testing.T) {
	assert.Equal(t, 2.0, Number(2).Value())
	assert.Equal(t, "a", StringKey("a").Value())
	assert.Equal(t, false, Bool(false).Value())
	assert.Nil(t, Missing().Value())

	f, ok := Number(4).Float()
	assert.True(t, ok)
	assert.Equal(t, 4.0, f)
	_, ok = StringKey("4").Float()
	assert.False(t, ok)

	assert.Equal(t, uint64(9007199254740993), Int(9007199254740993).Value())
	assert.Equal(t, int64(-9007199254740993), Int(-9007199254740993).Value())
	assert.Equal(t, int64(math.MinInt64), Int(math.MinInt64).Value())
	assert.Equal(t, 9007199254740992.0, Int(9007199254740992).Value())
}

func TestKeyEqual(t *testing.T) {
	assert.True(t, KeyOf(2).Equal(KeyOf(2.0)))
	assert.True(t, KeyOf(math.NaN()).Equal(KeyOf(math.NaN())))
	assert.True(t, Missing().Equal(KeyOf(nil)))
	assert.False(t, KeyOf(2).Equal(KeyOf("2")))
	assert.False(t, KeyOf(true).Equal(KeyOf("true")))

	assert.False(t, KeyOf(int64(9007199254740992)).Equal(KeyOf(int64(9007199254740993))))
	assert.False(t, KeyOf(uint64(math.MaxUint64)).Equal(KeyOf(uint64(math.MaxUint64-1))))
	assert.True(t, KeyOf(json.Number("7")).Equal(KeyOf(int8(7))))
}

func TestGroupByLargeIntegers(t *testing.T) {
	dec := json.NewDecoder(strings.NewReader(`[{"id":9007199254740992},{"id":9007199254740993},{"id":9007199254740992}]`))
	dec.UseNumber()
	var recs []Record
	require.NoError(t, dec.Decode(&recs))

	g := GroupBy(recs, ByField[Record]("id"))
	require.Equal(t, 2, g.Len())
	assert.Equal(t, "9007199254740992", g.Keys()[0].String())
	assert.Equal(t, "9007199254740993", g.Keys()[1].String())
	assert.Len(t, g.All()[0].Items, 2)

	ids := GroupBy([]int64{9007199254740993, 9007199254740992}, ByFunc(func(i int64) any { return i }))
	require.Equal(t, 2, ids.Len())
	assert.Equal(t, "9007199254740992", ids.Keys()[0].String())
}

func TestGroupByPointers(t *testing.T) {
	a, b := 1.5, 1.5
	var none *float64

	g := GroupBy([]*float64{&a, none, &b}, ByFunc(func(p *float64) any { return p }))
	require.Equal(t, 2, g.Len())
	assert.Equal(t, "1.5", g.Keys()[0].String())
	assert.Len(t, g.All()[0].Items, 2)
	assert.True(t, g.Keys()[1].IsMissing())
}

func TestOrderLess(t *testing.T) {
	cases := []struct {
		assertion string
		order     Order
		a, b      Key
		less      bool
	}{
		{"numbers numeric", OrderNatural, Number(2), Number(10), true},
		{"numbers lexical", OrderLexical, Number(10), Number(2), true},
		{"number before string", OrderNatural, Number(99), StringKey("a"), true},
		{"lexical mixes kinds by text", OrderLexical, StringKey("a"), Number(5), false},
		{"equal text falls back to kind", OrderLexical, Number(2), StringKey("2"), true},
		{"string before bool", OrderNatural, StringKey("zzz"), Bool(false), true},
		{"false before true", OrderNatural, Bool(false), Bool(true), true},
		{"nan after numbers", OrderNatural, Number(math.Inf(1)), Number(math.NaN()), true},
		{"missing last natural", OrderNatural, Missing(), Bool(true), false},
		{"missing last lexical", OrderLexical, StringKey("~"), Missing(), true},
		{"missing not less than missing", OrderLexical, Missing(), Missing(), false},
		{"missing after number", OrderNatural, Number(1), Missing(), true},
		{"large integers exact", OrderNatural, Int(9007199254740992), Int(9007199254740993), true},
		{"large integers exact reversed", OrderNatural, Int(9007199254740993), Int(9007199254740992), false},
		{"negative integers exact", OrderNatural, Int(-9007199254740993), Int(-9007199254740992), true},
		{"negative before positive", OrderNatural, Int(math.MinInt64), Uint(0), true},
		{"uint beyond int64", OrderNatural, Int(math.MaxInt64), Uint(math.MaxUint64), true},
		{"exact before larger float", OrderNatural, Uint(math.MaxUint64), Number(1 << 64), true},
		{"exact after more negative float", OrderNatural, Int(math.MinInt64), Number(-(1 << 64)), false},
		{"fraction between integers", OrderNatural, Number(2.5), Int(3), true},
		{"lexical utf16 surrogates first", OrderLexical, StringKey("\U0001F600"), StringKey("\uFF61"), true},
		{"natural bytes surrogates last", OrderNatural, StringKey("\U0001F600"), StringKey("\uFF61"), false},
		{"lexical exponent text", OrderLexical, Number(1e21), Number(2), true},
	}
	for _, c := range cases {
		t.Run(c.assertion, func(t *testing.T) {
			assert.Equal(t, c.less, c.order.Less(c.a, c.b))
		})
	}
}

func TestParseOrder(t *testing.T) {
	for input, want := range map[string]Order{
		"":        OrderNatural,
		"natural": OrderNatural,
		"Numeric": OrderNatural,
		"lexical": OrderLexical,
		" text ":  OrderLexical,
	} {
		got, err := ParseOrder(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseOrder("random")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"random"`)
}
