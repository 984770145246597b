package ir

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewNodeSignatureErrors(t *testing.T) {
	bad := []Signature{
		{},
		{Name: "a", Ref: "b"},
		{Labels: []string{"l"}},
		{Labels: []string{"l"}, Ref: "r"},
		{Name: "   "},
		{Ref: " "},
		{Name: "a", Labels: []string{" "}},
		{Ref: "r", Address: IntUnitAddress(1)},
	}
	for _, sig := range bad {
		if _, err := NewNode(sig); !errors.Is(err, ErrSignature) {
			t.Errorf("%+v: expected ErrSignature, got %v", sig, err)
		}
	}
	for _, sig := range []Signature{{Name: "a"}, {Ref: "r"}, {Name: "a", Labels: []string{"x", "y"}}} {
		if _, err := NewNode(sig); err != nil {
			t.Errorf("%+v: %v", sig, err)
		}
	}
}

func TestSignatureString(t *testing.T) {
	tests := []struct {
		sig  Signature
		want string
	}{
		{Signature{Ref: "uart0"}, "&uart0"},
		{Signature{Name: "cpus"}, "cpus"},
		{Signature{Name: "uart", Address: ParseUnitAddress("0x1000")}, "uart@1000"},
		{Signature{Name: "uart", Labels: []string{"a", "b"}, Address: ParseUnitAddress("1,0")}, "a: b: uart@1,0"},
	}
	for _, tt := range tests {
		if got := tt.sig.String(); got != tt.want {
			t.Errorf("got %q want %q", got, tt.want)
		}
	}
}

func TestSetProperty(t *testing.T) {
	n, err := NewNode(Signature{Name: "n"})
	if err != nil {
		t.Fatal(err)
	}
	n.SetProperty(NewString("status", "okay"))
	n.SetProperty(NewTuple("reg", "0"))
	if got := n.Property("status"); got == nil || got.String != "okay" {
		t.Fatalf("status: %v", got)
	}
	n.SetProperty(NewString("status", "disabled"))
	if len(n.Properties) != 2 || n.Properties[0].String != "disabled" {
		t.Errorf("same type replace: %#v", n.Properties)
	}
	n.SetProperty(NewBool("status"))
	if len(n.Properties) != 2 || n.Properties[1].Type != BoolType || n.Properties[0].Name != "reg" {
		t.Errorf("type change replace: %#v", n.Properties)
	}
	if !n.UnsetProperty("status") || n.UnsetProperty("status") {
		t.Error("unset")
	}
}

func TestExtendProperty(t *testing.T) {
	n, _ := NewNode(Signature{Name: "n"})
	n.SetProperty(NewString("compatible", "a"))
	l, _ := NewStringList("compatible", []string{"b", "c"})
	if err := n.ExtendProperty(l); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, n.Property("compatible").Strings); diff != "" {
		t.Errorf("extend mismatch (-want +got):\n%s", diff)
	}
	if err := n.ExtendProperty(NewTuple("compatible", "1")); !errors.Is(err, ErrPropertyType) {
		t.Errorf("expected ErrPropertyType, got %v", err)
	}
}

func TestAddDirective(t *testing.T) {
	n, _ := NewNode(Signature{Name: "n"})
	for _, d := range [][2]string{{"include", "a.dtsi"}, {"delete-node", "x"}, {"delete-node", "x"}, {"delete-property", "p"}} {
		if err := n.AddDirective(d[0], d[1]); err != nil {
			t.Fatal(err)
		}
	}
	if len(n.Include) != 1 || len(n.DeleteNode) != 1 || len(n.DeleteProperty) != 1 {
		t.Errorf("directives: %v %v %v", n.Include, n.DeleteNode, n.DeleteProperty)
	}
	if err := n.AddDirective("bogus", "x"); !errors.Is(err, ErrParse) {
		t.Errorf("expected ErrParse, got %v", err)
	}
}
