package shapejson_test

import (
	"math"
	"strings"
	"testing"

	"github.com/shapejson/shapejson"
)

func TestStringifyScalars(t *testing.T) {
	if got := shapejson.Stringify(true, shapejson.Bool[bool]()); got != "true" {
		t.Fatalf("got %s", got)
	}
	if got := shapejson.Stringify(false, shapejson.Bool[bool]()); got != "false" {
		t.Fatalf("got %s", got)
	}
	if got := shapejson.Stringify(-914, shapejson.Number[int]()); got != "-914" {
		t.Fatalf("got %s", got)
	}
	if got := shapejson.Stringify(uint8(200), shapejson.Number[uint8]()); got != "200" {
		t.Fatalf("got %s", got)
	}
	if got := shapejson.Stringify(2.5, shapejson.Number[float64]()); got != "2.5" {
		t.Fatalf("got %s", got)
	}
	if got := shapejson.Stringify("hello", shapejson.String[string]()); got != `"hello"` {
		t.Fatalf("got %s", got)
	}
}

func TestStringifyStringEscapes(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"a\nb\tc", `"a\nb\tc"`},
		{`say "hi"`, `"say \"hi\""`},
		{"a/b", `"a\/b"`},
		{"\x01", `"\u0001"`},
		{"\x7f", `"\u007f"`},
		{"héllo", `"héllo"`},
	}
	for _, tc := range cases {
		if got := shapejson.Stringify(tc.in, shapejson.String[string]()); got != tc.want {
			t.Fatalf("Stringify(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

// Non-finite floats fall outside JSON; their textual forms are documented
// as a limitation and pinned here.
func TestStringifyNonFiniteFloats(t *testing.T) {
	d := shapejson.Number[float64]()
	if got := shapejson.Stringify(math.NaN(), d); got != "NaN" {
		t.Fatalf("got %s", got)
	}
	if got := shapejson.Stringify(math.Inf(1), d); got != "+Inf" {
		t.Fatalf("got %s", got)
	}
	if got := shapejson.Stringify(math.Inf(-1), d); got != "-Inf" {
		t.Fatalf("got %s", got)
	}
}

func TestStringifyChar(t *testing.T) {
	if got := shapejson.Stringify(byte('x'), shapejson.Char()); got != `"x"` {
		t.Fatalf("got %s", got)
	}
	if got := shapejson.Stringify(byte('\n'), shapejson.Char()); got != `"\n"` {
		t.Fatalf("got %s", got)
	}
}

func TestStringifyCharsStopsAtNUL(t *testing.T) {
	buf := []byte("hel\x00lo")
	if got := shapejson.Stringify(buf, shapejson.Chars()); got != `"hel"` {
		t.Fatalf("got %s", got)
	}
}

func TestStringifyFields(t *testing.T) {
	p := point{X: 3, Y: 4}
	if got := shapejson.Stringify(p, pointDesc); got != `{"x":3,"y":4}` {
		t.Fatalf("dense: %s", got)
	}
	if got := shapejson.Stringify(p, pointDesc, shapejson.Format{}); got != `{ "x": 3, "y": 4 }` {
		t.Fatalf("spaced: %s", got)
	}
	want := "{\n\t\"x\": 3,\n\t\"y\": 4\n}"
	if got := shapejson.Stringify(p, pointDesc, shapejson.Pretty); got != want {
		t.Fatalf("pretty: %q, want %q", got, want)
	}
}

// Positional encodings stay minimal in every format.
func TestStringifyElements(t *testing.T) {
	p := person{Name: "Steve", Age: 25, Active: true}
	want := `["Steve",25,true]`
	for _, f := range []shapejson.Format{shapejson.Dense, {}, shapejson.Pretty} {
		if got := shapejson.Stringify(p, personDesc, f); got != want {
			t.Fatalf("got %s, want %s", got, want)
		}
	}
}

func TestStringifyObjectSortsKeys(t *testing.T) {
	m := map[string]int{"red": 1, "green": 8, "blue": -914}
	d := shapejson.Object(shapejson.Number[int]())
	if got := shapejson.Stringify(m, d); got != `{"blue":-914,"green":8,"red":1}` {
		t.Fatalf("got %s", got)
	}
	if got := shapejson.Stringify(m, d, shapejson.Format{}); got != `{ "blue": -914, "green": 8, "red": 1 }` {
		t.Fatalf("got %s", got)
	}
}

func TestStringifyArrayFormats(t *testing.T) {
	v := []int{4, 5, 6}
	d := shapejson.Array(shapejson.Number[int]())
	if got := shapejson.Stringify(v, d); got != "[4,5,6]" {
		t.Fatalf("dense: %s", got)
	}
	if got := shapejson.Stringify(v, d, shapejson.Format{}); got != "[ 4, 5, 6 ]" {
		t.Fatalf("spaced: %s", got)
	}
	// trivial elements stay on one line unless NewlineTrivialArrays is set
	if got := shapejson.Stringify(v, d, shapejson.Pretty); got != "[ 4, 5, 6 ]" {
		t.Fatalf("pretty: %s", got)
	}
	f := shapejson.Format{NewlineElements: true, NewlineTrivialArrays: true}
	want := "[\n\t4,\n\t5,\n\t6\n]"
	if got := shapejson.Stringify(v, d, f); got != want {
		t.Fatalf("newlined: %q, want %q", got, want)
	}
}

func TestStringifyNestedArrayPretty(t *testing.T) {
	v := [][]int{{1, 2}, {3}}
	d := shapejson.Array(shapejson.Array(shapejson.Number[int]()))
	want := "[\n\t[ 1, 2 ],\n\t[ 3 ]\n]"
	if got := shapejson.Stringify(v, d, shapejson.Pretty); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestStringifyIndentOption(t *testing.T) {
	p := point{X: 3, Y: 4}
	f := shapejson.Format{NewlineElements: true, Indent: "  "}
	want := "{\n  \"x\": 3,\n  \"y\": 4\n}"
	if got := shapejson.Stringify(p, pointDesc, f); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestStringifyEmptyContainers(t *testing.T) {
	if got := shapejson.Stringify(nil, shapejson.Array(shapejson.Number[int]()), shapejson.Pretty); got != "[]" {
		t.Fatalf("array: %s", got)
	}
	if got := shapejson.Stringify(nil, shapejson.Object(shapejson.Number[int]()), shapejson.Pretty); got != "{}" {
		t.Fatalf("object: %s", got)
	}
}

// Dense output carries no whitespace outside string literals.
func TestStringifyDenseNoWhitespace(t *testing.T) {
	v := map[string][]float64{"a b": {1, 2.5}, "c": {}}
	d := shapejson.Object(shapejson.Array(shapejson.Number[float64]()))
	got := shapejson.Stringify(v, d)
	inString := false
	for i := 0; i < len(got); i++ {
		switch c := got[i]; {
		case inString && c == '\\':
			i++
		case c == '"':
			inString = !inString
		case !inString && (c == ' ' || c == '\t' || c == '\n'):
			t.Fatalf("whitespace at %d in %s", i, got)
		}
	}
}

func TestStringifyOptional(t *testing.T) {
	d := shapejson.Optional(shapejson.Number[int]())
	if got := shapejson.Stringify(nil, d); got != "null" {
		t.Fatalf("got %s", got)
	}
	v := 5
	if got := shapejson.Stringify(&v, d); got != "5" {
		t.Fatalf("got %s", got)
	}
}

func TestWrite(t *testing.T) {
	var sb strings.Builder
	if err := shapejson.Write(&sb, point{X: 3, Y: 4}, pointDesc); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if sb.String() != `{"x":3,"y":4}` {
		t.Fatalf("got %s", sb.String())
	}
}
