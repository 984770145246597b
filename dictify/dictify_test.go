package dictify

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/dts-format/encode"
	"github.com/signadot/dts-format/format"
	"github.com/signadot/dts-format/ir"
	"github.com/signadot/dts-format/parse"
)

const src = `/dts-v1/;
/plugin/;
#include <dt-bindings/gpio/gpio.h>
#define FLAG
#define CLK 24000000
/ {
	model = "acme";
	#address-cells = <1>;
	compatible = "a", "b";
	soc {
		/include/ "pins.dtsi"
		u: serial@1000 {
			/delete-property/ dmas;
			reg = <0x1000 0x100>, <0x2000 0x10>;
			clocks = __CLK__;
			wakeup-source;
		};
	};
};
&gpio { status = "okay"; };
`

func TestRoundTrip(t *testing.T) {
	tree, err := parse.Parse([]byte(src), parse.ParseFilename("b.dts"))
	if err != nil {
		t.Fatal(err)
	}
	tree.Root().SetProperty(ir.NewInt("freq", 0x100))
	ints, err := ir.NewIntList("cells", []int64{1, -2})
	if err != nil {
		t.Fatal(err)
	}
	tree.Root().SetProperty(ints)
	want := encode.MustString(tree)
	for _, f := range []format.Format{format.YAMLFormat, format.JSONFormat} {
		t.Run(f.String(), func(t *testing.T) {
			d, err := Marshal(tree, f)
			if err != nil {
				t.Fatal(err)
			}
			back, err := Unmarshal(d)
			if err != nil {
				t.Fatalf("%v\n%s", err, d)
			}
			if back.Filename != "b.dts" {
				t.Errorf("filename %q", back.Filename)
			}
			if diff := cmp.Diff(want, encode.MustString(back)); diff != "" {
				t.Errorf("(-want +got):\n%s\n%s", diff, d)
			}
		})
	}
}

func TestMarshalBadFormat(t *testing.T) {
	_, err := Marshal(ir.NewTree(""), format.DTSFormat)
	if !errors.Is(err, format.ErrBadFormat) {
		t.Errorf("got %v", err)
	}
}

func TestUnmarshalFields(t *testing.T) {
	in := `dts_version: 1
gcc_define:
  A: 1
  B:
nodes:
  /:
    children:
      x:
        nodename: serial
        labels: [u0, u1]
        unit_address: "0x2000"
        properties:
          status: okay
          reg: "<0x2000 0x10>"
          names: [a, b]
          ranges: ["<0 1>", "<2 3>"]
          n: 16
          dma-coherent: true
      "cpus":
        children:
          "cpu@0": {}
  "&u0":
    properties:
      extra: __X__
`
	tree, err := Unmarshal([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]ir.Define{{Name: "A", Value: "1"}, {Name: "B"}}, tree.Defines); diff != "" {
		t.Errorf("defines (-want +got):\n%s", diff)
	}
	want := `/dts-v1/;

#define A 1
#define B

/ {
	u0: u1: serial@2000 {
		status = "okay";
		reg = <0x2000 0x10>;
		names = "a",
		        "b";
		ranges = <0 1>,
		         <2 3>;
		n = <0x10>;
		dma-coherent;
	};

	cpus {
		cpu@0 {
		};
	};
};

&u0 {
	extra = __X__;
};
`
	if diff := cmp.Diff(want, encode.MustString(tree)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestUnmarshalErrors(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"nodes:\n  /:\n    bogus: 1\n", ErrRecord},
		{"nodes: [1]\n", ErrRecord},
		{"nodes:\n  /:\n    properties:\n      p: [a, \"<1>\"]\n", ir.ErrPropertyType},
		{"nodes:\n  x:\n    nodename: n\n    ref: r\n", ir.ErrSignature},
		{"nodes:\n  /:\n    children:\n      \"&r\": {}\n", parse.ErrChildRef},
		{"wat: 1\n", ErrRecord},
	}
	for _, tc := range tests {
		_, err := Unmarshal([]byte(tc.in))
		if !errors.Is(err, tc.want) {
			t.Errorf("%q: got %v want %v", tc.in, err, tc.want)
		}
	}
}

func TestFromTreeKeys(t *testing.T) {
	tree, err := parse.Parse([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	d, err := Marshal(tree, format.YAMLFormat)
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"dts_version:", "gcc_include:", "gcc_define:", "dtc_directives:", "dtc_include:", "dtc_delete_property:", "&gpio"} {
		if !strings.Contains(string(d), k) {
			t.Errorf("missing %s in\n%s", k, d)
		}
	}
}

func TestRoundTripAmbiguous(t *testing.T) {
	in := `/dts-v1/;
/memreserve/ 0x1000 0x100;
/memreserve/ 0x2000 0x100;
/ {
	s = "<1 2>";
	m = "__BAR__";
	r = "&mem";
	q = "\"x\"";
	b = __BAR__, "&mem";
};
`
	tree, err := parse.Parse([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	want := encode.MustString(tree)
	for _, f := range []format.Format{format.YAMLFormat, format.JSONFormat} {
		t.Run(f.String(), func(t *testing.T) {
			d, err := Marshal(tree, f)
			if err != nil {
				t.Fatal(err)
			}
			back, err := Unmarshal(d)
			if err != nil {
				t.Fatalf("%v\n%s", err, d)
			}
			if diff := cmp.Diff(tree.Directives, back.Directives); diff != "" {
				t.Errorf("directives (-want +got):\n%s", diff)
			}
			if got := back.Root().Property("s").Type; got != ir.StringType {
				t.Errorf("s is %s", got)
			}
			if diff := cmp.Diff(want, encode.MustString(back)); diff != "" {
				t.Errorf("(-want +got):\n%s\n%s", diff, d)
			}
		})
	}
}

func TestUnmarshalDirectiveMapping(t *testing.T) {
	tree, err := Unmarshal([]byte("dtc_directives:\n  plugin:\nnodes:\n  /: {}\n"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]ir.Directive{{Tag: "plugin"}}, tree.Directives); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
