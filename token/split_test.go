package token

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitStatements(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"/ { a; };", []string{"/ {", "a;", "};"}},
		{"n { x = \"{;}\"; };", []string{"n {", `x = "{;}";`, "};"}},
		{"x = <(1 << 2) 3>; y;", []string{"x = <(1 << 2) 3>;", "y;"}},
		{"&{/soc/uart@1000} { status = \"okay\"; };", []string{"&{/soc/uart@1000} {", `status = "okay";`, "};"}},
		{"  #define FOO(x) {x;}", []string{"#define FOO(x) {x;}"}},
		{"reg = <0 1>,", []string{"reg = <0 1>,"}},
		{"#address-cells = <1>; #size-cells = <0>;", []string{"#address-cells = <1>;", "#size-cells = <0>;"}},
		{"a { b { }; };", []string{"a {", "b {", "};", "};"}},
	}
	for _, tc := range tests {
		got := Texts(SplitStatements(Lines([]byte(tc.in))))
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("%q (-want +got):\n%s", tc.in, diff)
		}
	}
}
