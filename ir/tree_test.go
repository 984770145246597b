package ir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustNode(t *testing.T, tr *Tree, parent *Node, sig Signature) *Node {
	t.Helper()
	n, err := tr.NewNode(parent, sig)
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func TestTreeRoot(t *testing.T) {
	tr := NewTree("x.dts")
	root := tr.Root()
	if root == nil || root.Handle != RootHandle || root.Parent() != nil || root.Path() != "/" {
		t.Fatalf("bad root %+v", root)
	}
	if _, err := tr.NewNode(nil, Signature{Name: "/"}); err == nil {
		t.Error("expected error for second root")
	}
	if err := tr.Remove(root); err == nil {
		t.Error("expected error removing root")
	}
}

func TestTreePaths(t *testing.T) {
	tr := NewTree("")
	soc := mustNode(t, tr, tr.Root(), Signature{Name: "soc"})
	uart := mustNode(t, tr, soc, Signature{Name: "serial", Labels: []string{"uart0"}, Address: ParseUnitAddress("1000")})
	ref := mustNode(t, tr, nil, Signature{Ref: "uart0"})
	pin := mustNode(t, tr, ref, Signature{Name: "pins"})

	if got := uart.Path(); got != "/soc/serial@1000" {
		t.Errorf("uart path %q", got)
	}
	if got := pin.Path(); got != "&uart0/pins" {
		t.Errorf("ref child path %q", got)
	}
	want := []string{"&uart0", "&uart0/pins", "/", "/soc", "/soc/serial@1000"}
	if diff := cmp.Diff(want, tr.Paths()); diff != "" {
		t.Errorf("Paths mismatch (-want +got):\n%s", diff)
	}
	if got := tr.Detached(); len(got) != 1 || got[0] != ref {
		t.Errorf("detached %v", got)
	}
	if tr.ResolvePath("/soc/serial@1000") != uart || tr.ResolvePath("/soc/serial") != uart {
		t.Error("ResolvePath")
	}
	if tr.ByLabel()["uart0"] != uart || tr.ByRef()["uart0"] != ref {
		t.Error("label/ref index")
	}
	if tr.Lookup(&Signature{Ref: "uart0"}) != ref || tr.Lookup(&Signature{Name: "soc"}) != soc {
		t.Error("Lookup")
	}
}

func TestByNameLastWriterWins(t *testing.T) {
	tr := NewTree("")
	a := mustNode(t, tr, tr.Root(), Signature{Name: "x"})
	b := mustNode(t, tr, a, Signature{Name: "x"})
	if tr.ByName()["x"] != b {
		t.Error("expected highest handle to win")
	}
}

func TestAddChildAndRemove(t *testing.T) {
	tr := NewTree("")
	a := mustNode(t, tr, tr.Root(), Signature{Name: "a"})
	b := mustNode(t, tr, tr.Root(), Signature{Name: "b"})
	c := mustNode(t, tr, a, Signature{Name: "c"})
	mustNode(t, tr, c, Signature{Name: "d"})
	if err := b.AddChild(c); err != nil {
		t.Fatal(err)
	}
	if len(a.Children()) != 0 || c.Parent() != b || c.Path() != "/b/c" {
		t.Errorf("reparent failed: %s", c.Path())
	}
	if err := c.AddChild(b); err == nil {
		t.Error("expected cycle error")
	}
	n := tr.Len()
	if err := tr.Remove(c); err != nil {
		t.Fatal(err)
	}
	if tr.Len() != n-2 || len(b.Children()) != 0 {
		t.Errorf("remove subtree: len %d", tr.Len())
	}
}

func TestJoin(t *testing.T) {
	tr := NewTree("")
	a := mustNode(t, tr, tr.Root(), Signature{Name: "a", Labels: []string{"l1"}})
	a.SetProperty(NewString("status", "disabled"))
	o := mustNode(t, tr, nil, Signature{Ref: "l1"})
	o.SetProperty(NewString("status", "okay"))
	o.SetProperty(NewBool("wakeup"))
	c := mustNode(t, tr, o, Signature{Name: "c"})
	if err := o.AddDirective("delete-property", "foo"); err != nil {
		t.Fatal(err)
	}
	if err := a.Join(o); err != nil {
		t.Fatal(err)
	}
	if len(a.Properties) != 2 || a.Property("status").String != "okay" {
		t.Errorf("props %#v", a.Properties)
	}
	if c.Parent() != a || len(o.Children()) != 0 || len(a.DeleteProperty) != 1 {
		t.Error("children/directives not spliced")
	}
}

func TestVisitOrder(t *testing.T) {
	tr := NewTree("")
	a := mustNode(t, tr, tr.Root(), Signature{Name: "a"})
	mustNode(t, tr, a, Signature{Name: "b"})
	mustNode(t, tr, tr.Root(), Signature{Name: "c"})
	got := []string{}
	err := tr.Root().Visit(func(n *Node, isPost bool) (bool, error) {
		if isPost {
			got = append(got, "-"+n.PathName())
			return true, nil
		}
		got = append(got, "+"+n.PathName())
		return true, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"+/", "+a", "+b", "-b", "-a", "+c", "-c", "-/"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Visit mismatch (-want +got):\n%s", diff)
	}
}

func TestDefines(t *testing.T) {
	tr := NewTree("")
	tr.SetDefine("A", "")
	tr.SetDefine("B", "2")
	tr.SetDefine("A", "1")
	want := []Define{{"A", "1"}, {"B", "2"}}
	if diff := cmp.Diff(want, tr.Defines); diff != "" {
		t.Errorf("Defines mismatch (-want +got):\n%s", diff)
	}
	if v, ok := tr.Define("B"); !ok || v != "2" {
		t.Error("Define lookup")
	}
}

func TestUnitAddress(t *testing.T) {
	for in, want := range map[string]string{"0x1000": "1000", "01": "1", "ABC": "abc", "1,0": "1,0", "fe:ed": "fe:ed"} {
		if got := ParseUnitAddress(in).String(); got != want {
			t.Errorf("%q: got %q want %q", in, got, want)
		}
	}
}
