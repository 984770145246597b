package token

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/signadot/dts-format/ir"
)

const scanSrc = `/dts-v1/;
/plugin/;
#include <dt-bindings/gpio/gpio.h>
#include "board.h"
#define FOO 1
#define BAR

/ {
	model = "x";
	soc {
		uart0: serial@1000 {
			status = "disabled";
		};
	};
};

&uart0 {
	status = "okay";
};

/ {
	soc {
		serial@1000 {
			clocks = <&clk 1>;
		};
		timer { };
	};
};
`

func TestScan(t *testing.T) {
	f, err := Scan([]byte(scanSrc))
	if err != nil {
		t.Fatal(err)
	}
	if f.Version != 1 {
		t.Errorf("version %d", f.Version)
	}
	if diff := cmp.Diff([]string{"<dt-bindings/gpio/gpio.h>", `"board.h"`}, f.Includes); diff != "" {
		t.Errorf("includes (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]ir.Define{{Name: "FOO", Value: "1"}, {Name: "BAR"}}, f.Defines); diff != "" {
		t.Errorf("defines (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]ir.Directive{{Tag: "plugin"}}, f.Directives); diff != "" {
		t.Errorf("directives (-want +got):\n%s", diff)
	}
	type shape struct {
		Sig   string
		Depth int
		Lines []string
	}
	var got []shape
	for _, b := range f.Blocks {
		err := b.Walk(func(b *Block, depth int) error {
			got = append(got, shape{Sig: b.Signature, Depth: depth, Lines: Texts(b.Lines)})
			return nil
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	want := []shape{
		{Sig: "/", Lines: []string{`model = "x";`}},
		{Sig: "soc", Depth: 1},
		{Sig: "uart0: serial@1000", Depth: 2, Lines: []string{`status = "disabled";`}},
		{Sig: "serial@1000", Depth: 2, Lines: []string{"clocks = <&clk 1>;"}},
		{Sig: "timer", Depth: 2},
		{Sig: "&uart0", Lines: []string{`status = "okay";`}},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("blocks (-want +got):\n%s", diff)
	}
	if f.Blocks[0].Line != 8 {
		t.Errorf("root opened at line %d", f.Blocks[0].Line)
	}
}

func TestScanErrors(t *testing.T) {
	tests := []struct {
		in   string
		want error
		line int
	}{
		{"/ {\n\ta;\n", ErrUnterminated, 1},
		{"};\n", ErrUnbalanced, 1},
		{"/ {\n};\nstray;\n", ErrUnexpected, 3},
		{"/ {\n\tbad sig! {\n\t};\n};\n", ErrUnexpected, 2},
		{"{\n};\n", ir.ErrSignature, 1},
	}
	for _, tc := range tests {
		_, err := Scan([]byte(tc.in))
		if !errors.Is(err, tc.want) || !errors.Is(err, ir.ErrParse) {
			t.Errorf("%q: got %v want %v", tc.in, err, tc.want)
			continue
		}
		var se *ScanErr
		if !errors.As(err, &se) || se.Line != tc.line {
			t.Errorf("%q: got %v, want line %d", tc.in, err, tc.line)
		}
	}
}

func TestNormalizeSignature(t *testing.T) {
	tests := map[string]string{
		"a:b":            "a: b",
		"a :  b@1":       "a: b@1",
		"& foo":          "&foo",
		"/":              "/",
		"l1:l2:  n@1,0":  "l1: l2: n@1,0",
		"&{/soc/a@1000}": "&{/soc/a@1000}",
	}
	for in, want := range tests {
		if got := NormalizeSignature(in); got != want {
			t.Errorf("%q: got %q want %q", in, got, want)
		}
	}
}

func TestBlockCombine(t *testing.T) {
	f, err := Scan([]byte("&a { x; n { y; }; };\n&a { z; n { w; }; m { }; };\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Blocks) != 1 {
		t.Fatalf("got %d blocks", len(f.Blocks))
	}
	b := f.Blocks[0]
	if diff := cmp.Diff([]string{"x;", "z;"}, Texts(b.Lines)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	n := b.Sub("n")
	if n == nil || len(b.Subs) != 2 {
		t.Fatalf("subs %v", b.Subs)
	}
	if diff := cmp.Diff([]string{"y;", "w;"}, Texts(n.Lines)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
