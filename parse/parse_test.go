package parse

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/dts-format/ir"
	"github.com/signadot/dts-format/token"
)

const boardSrc = `// SPDX-License-Identifier: GPL-2.0
/dts-v1/;
/memreserve/ 0x10000000 0x4000;
#include <dt-bindings/interrupt-controller/arm-gic.h>
#define FLAG
#define CLK 24000000

/ {
	model = "Example Board";
	compatible = "acme,board", "acme,soc";
	#address-cells = <1>;

	cpus {
		cpu0: cpu@0 {
			device_type = "cpu";
			reg = <0x0>;
		};
	};

	soc {
		/include/ "soc-pins.dtsi"
		uart0: serial@1000 {
			reg = <0x1000 0x100>,
			      <0x2000 0x10>;
			status = "disabled";
		};
	};
};

&uart0 {
	/delete-property/ dma-names;
	status = "okay";
};

/ {
	soc {
		serial@1000 {
			clocks = <&clk CLK>;
		};
	};
};
`

func TestParse(t *testing.T) {
	tree, err := Parse([]byte(boardSrc), ParseFilename("board.dts"))
	if err != nil {
		t.Fatal(err)
	}
	if tree.Filename != "board.dts" || tree.Version != 1 {
		t.Errorf("got %q v%d", tree.Filename, tree.Version)
	}
	if diff := cmp.Diff([]string{"<dt-bindings/interrupt-controller/arm-gic.h>"}, tree.Includes); diff != "" {
		t.Errorf("includes (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]ir.Define{{Name: "FLAG"}, {Name: "CLK", Value: "24000000"}}, tree.Defines); diff != "" {
		t.Errorf("defines (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]ir.Directive{{Tag: "memreserve", Value: "0x10000000 0x4000"}}, tree.Directives); diff != "" {
		t.Errorf("directives (-want +got):\n%s", diff)
	}
	want := []string{"&uart0", "/", "/cpus", "/cpus/cpu@0", "/soc", "/soc/serial@1000"}
	if diff := cmp.Diff(want, tree.Paths()); diff != "" {
		t.Errorf("paths (-want +got):\n%s", diff)
	}
	root := tree.Root()
	if got := root.Property("compatible"); got.Type != ir.StringListType || len(got.Strings) != 2 {
		t.Errorf("compatible %#v", got)
	}
	if got := root.Property("#address-cells"); got == nil || got.Type != ir.TupleType {
		t.Errorf("#address-cells %#v", got)
	}
	uart := tree.ResolvePath("/soc/serial@1000")
	if diff := cmp.Diff([]string{"uart0"}, uart.Labels); diff != "" {
		t.Errorf("labels (-want +got):\n%s", diff)
	}
	reg := uart.Property("reg")
	if diff := cmp.Diff([][]string{{"0x1000", "0x100"}, {"0x2000", "0x10"}}, reg.Tuples); diff != "" {
		t.Errorf("reg (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"&clk", "CLK"}, uart.Property("clocks").Tuple); diff != "" {
		t.Errorf("clocks (-want +got):\n%s", diff)
	}
	if uart.Line != 22 {
		t.Errorf("uart line %d", uart.Line)
	}
	if diff := cmp.Diff([]string{"soc-pins.dtsi"}, uart.Include); diff != "" {
		t.Errorf("include (-want +got):\n%s", diff)
	}
	if soc := tree.ResolvePath("/soc"); len(soc.Include) != 0 {
		t.Errorf("soc include %v", soc.Include)
	}
	ref := tree.Detached()
	if len(ref) != 1 || ref[0].Ref != "uart0" {
		t.Fatalf("detached %v", ref)
	}
	if diff := cmp.Diff([]string{"dma-names"}, ref[0].DeleteProperty); diff != "" {
		t.Errorf("delete-property (-want +got):\n%s", diff)
	}
}

func TestParsePathSetStable(t *testing.T) {
	tree, err := Parse([]byte(boardSrc))
	if err != nil {
		t.Fatal(err)
	}
	again, err := Parse([]byte(boardSrc))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(tree.Paths(), again.Paths()); diff != "" {
		t.Errorf("(-first +second):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
		msg  string
	}{
		{"unterminated", "/ {\n", token.ErrUnterminated, "line 1"},
		{"bad value", "/ {\n\tp = nope;\n};\n", token.ErrValue, "line 2"},
		{"empty list", "/ {\n\tp = \"a\",;\n};\n", ir.ErrParse, "line 2"},
		{"mixed list", "/ {\n\tp = \"a\", <1>;\n};\n", ir.ErrPropertyType, "line 2"},
		{"labels without name", "/ {\n\tlbl: {\n\t};\n};\n", ir.ErrSignature, "line 2"},
		{"child ref", "/ {\n\t&x {\n\t};\n};\n", ErrChildRef, "line 2"},
		{"second root", "/ {\n\tn {\n\t\t/ {\n\t\t};\n\t};\n};\n", ir.ErrSignature, "line 3"},
		{"unknown directive", "/ {\n\t/bogus/ x;\n};\n", ir.ErrParse, "line 2"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tree, err := Parse([]byte(tc.in), ParseFilename("x.dts"))
			if tree != nil {
				t.Errorf("partial tree returned")
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v want %v", err, tc.want)
			}
			if msg := err.Error(); !strings.Contains(msg, tc.msg) || !strings.Contains(msg, "x.dts") {
				t.Errorf("message %q lacks %q", msg, tc.msg)
			}
		})
	}
}
