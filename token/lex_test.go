package token

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/dts-format/ir"
)

func TestLex(t *testing.T) {
	tests := []struct {
		rhs  string
		want *ir.Property
	}{
		{`"okay"`, ir.NewString("p", "okay")},
		{`"a", "b", "c"`, &ir.Property{Name: "p", Type: ir.StringListType, Strings: []string{"a", "b", "c"}}},
		{`<1>, <2>`, &ir.Property{Name: "p", Type: ir.TupleListType, Tuples: [][]string{{"1"}, {"2"}}}},
		{`<1 2 3>`, ir.NewTuple("p", "1", "2", "3")},
		{`<&gpio0 (1 << 3) GPIO_ACTIVE_LOW>`, ir.NewTuple("p", "&gpio0", "(1 << 3)", "GPIO_ACTIVE_LOW")},
		{`<>`, ir.NewTuple("p")},
		{`__CLK__`, ir.NewBareString("p", "__CLK__")},
		{`&uart0`, ir.NewBareString("p", "&uart0")},
		{`&{/soc/serial@1000}`, ir.NewBareString("p", "&{/soc/serial@1000}")},
		{`[00 1f 20]`, ir.NewBareString("p", "[00 1f 20]")},
		{`"a,b", "c\"d"`, &ir.Property{Name: "p", Type: ir.StringListType, Strings: []string{"a,b", `c\"d`}}},
		{`"__X__", __Y__`, &ir.Property{Name: "p", Type: ir.StringListType, Strings: []string{"__X__", "__Y__"}, Bare: []bool{false, true}}},
		{`"&mem"`, ir.NewString("p", "&mem")},
		{"  <0x0 0x1000>  ,\t<0x2000 0x10>", &ir.Property{Name: "p", Type: ir.TupleListType, Tuples: [][]string{{"0x0", "0x1000"}, {"0x2000", "0x10"}}}},
	}
	for _, tc := range tests {
		got, err := Lex("p", tc.rhs)
		if err != nil {
			t.Errorf("%q: %v", tc.rhs, err)
			continue
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("%q (-want +got):\n%s", tc.rhs, diff)
		}
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		rhs  string
		want error
	}{
		{``, ir.ErrParse},
		{`"abc`, ErrUnterminated},
		{`<1 2`, ErrUnterminated},
		{`"a",`, ErrValue},
		{`"a" "b"`, ErrUnexpected},
		{`okay`, ErrValue},
		{`"a", <1>`, ir.ErrPropertyType},
	}
	for _, tc := range tests {
		_, err := Lex("p", tc.rhs)
		if !errors.Is(err, tc.want) {
			t.Errorf("%q: got %v want %v", tc.rhs, err, tc.want)
		}
	}
}
