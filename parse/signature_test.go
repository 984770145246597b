package parse

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/dts-format/ir"
)

func TestSignatureRoundTrip(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"/", "/"},
		{"soc", "soc"},
		{"serial@1000", "serial@1000"},
		{"uart0: serial@1000", "uart0: serial@1000"},
		{"l1: l2: cpu@0", "l1: l2: cpu@0"},
		{"l1:l2:cpu@0", "l1: l2: cpu@0"},
		{"&uart0", "&uart0"},
		{"&{/soc/serial@1000}", "&{/soc/serial@1000}"},
		{"ethernet@0x1c000", "ethernet@1c000"},
		{"pci@1,0", "pci@1,0"},
		{"x: x: n", "x: n"},
		{"memory@80000000", "memory@80000000"},
	}
	for _, tc := range tests {
		sig, err := ParseSignature(tc.in)
		if err != nil {
			t.Errorf("%q: %v", tc.in, err)
			continue
		}
		if got := sig.String(); got != tc.out {
			t.Errorf("%q: got %q want %q", tc.in, got, tc.out)
		}
		again, err := ParseSignature(sig.String())
		if err != nil {
			t.Errorf("%q: reparse: %v", tc.in, err)
			continue
		}
		if again.String() != sig.String() || again.PathName() != sig.PathName() {
			t.Errorf("%q: reparse gave %q", tc.in, again.String())
		}
	}
}

func TestSignatureFields(t *testing.T) {
	sig, err := ParseSignature("a: b: serial@1000")
	if err != nil {
		t.Fatal(err)
	}
	want := ir.Signature{
		Name:    "serial",
		Labels:  []string{"a", "b"},
		Address: &ir.UnitAddress{Text: "1000", Value: 0x1000, IsInt: true},
	}
	if diff := cmp.Diff(want, sig); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestSignatureErrors(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"", ir.ErrSignature},
		{"  ", ir.ErrSignature},
		{"&", ir.ErrSignature},
		{"lbl:", ir.ErrSignature},
		{": n", ir.ErrSignature},
		{"n@", ErrParse},
		{"bad name", ErrParse},
		{"&bad ref", ErrParse},
		{"1abc: n", ErrParse},
		{"&{soc}", ErrParse},
	}
	for _, tc := range tests {
		_, err := ParseSignature(tc.in)
		if !errors.Is(err, tc.want) {
			t.Errorf("%q: got %v want %v", tc.in, err, tc.want)
		}
	}
}
