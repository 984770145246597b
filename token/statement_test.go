package token

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStatements(t *testing.T) {
	src := `/include/ "pins.dtsi"
/delete-node/ &old;
/delete-property/ status;
reg = <0x0 0x1000>,
	<0x2000 0x10>;
dma-coherent;
compatible = "a", "b";
#include "pins.h"
`
	got, err := Statements(SplitStatements(Lines([]byte(src))))
	if err != nil {
		t.Fatal(err)
	}
	want := []Statement{
		{Kind: DirectiveStatement, Name: "include", Value: "pins.dtsi", Line: 1},
		{Kind: DirectiveStatement, Name: "delete-node", Value: "&old", Line: 2},
		{Kind: DirectiveStatement, Name: "delete-property", Value: "status", Line: 3},
		{Kind: PropertyStatement, Name: "reg", Value: "<0x0 0x1000>, <0x2000 0x10>", Line: 4},
		{Kind: BoolStatement, Name: "dma-coherent", Line: 6},
		{Kind: PropertyStatement, Name: "compatible", Value: `"a", "b"`, Line: 7},
		{Kind: IncludeStatement, Value: `"pins.h"`, Line: 8},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestStatementsErrors(t *testing.T) {
	_, err := Statements([]Line{{Num: 3, Text: "reg = <1>,"}})
	var se *ScanErr
	if !errors.As(err, &se) || !errors.Is(err, ErrUnterminated) || se.Line != 3 {
		t.Errorf("got %v", err)
	}
	_, err = Statements([]Line{{Num: 5, Text: "= <1>;"}})
	if !errors.Is(err, ErrUnexpected) {
		t.Errorf("got %v", err)
	}
}
