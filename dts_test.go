package dts

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/dts-format/encode"
	"github.com/signadot/dts-format/format"
	"github.com/signadot/dts-format/ir"
)

const boardSrc = `/dts-v1/;
/ {
	model = "acme";
	compatible = "acme,board", "acme,soc";
	soc {
		uart0: serial@1000 {
			compatible = "ns16550";
			reg = <0x1000 0x100>;
			status = "disabled";
		};
		i2c@2000 {
			compatible = "acme,i2c";
			status = "okay";
		};
	};
};
&uart0 {
	status = "okay";
};
`

func mustImport(t *testing.T, src string) *ir.Tree {
	t.Helper()
	tree, err := Import([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	return tree
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.dts"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("got %v", err)
	}
}

func TestExportLoad(t *testing.T) {
	tree := mustImport(t, boardSrc)
	if err := Merge(tree); err != nil {
		t.Fatal(err)
	}
	want := encode.MustString(tree)
	dir := t.TempDir()
	for _, name := range []string{"out.dts", "out.yaml", "out.json"} {
		t.Run(name, func(t *testing.T) {
			p := filepath.Join(dir, name)
			if err := ExportAny(tree, p); err != nil {
				t.Fatal(err)
			}
			back, err := LoadAny(p)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(want, encode.MustString(back)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestExportIsSource(t *testing.T) {
	tree := mustImport(t, boardSrc)
	p := filepath.Join(t.TempDir(), "x.yaml")
	if err := Export(tree, p); err != nil {
		t.Fatal(err)
	}
	d, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	src, err := Serialize(tree)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(string(src), string(d)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestMarshalFormats(t *testing.T) {
	tree := mustImport(t, boardSrc)
	for _, f := range []format.Format{format.DTSFormat, format.YAMLFormat, format.JSONFormat} {
		d, err := Marshal(tree, f)
		if err != nil {
			t.Fatalf("%s: %v", f, err)
		}
		if len(d) == 0 {
			t.Errorf("%s: empty", f)
		}
	}
}

func TestDecodeBadRecord(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(p, []byte("nodes: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Decode(format.YAMLFormat, p)
	if !errors.Is(err, ir.ErrParse) {
		t.Errorf("got %v", err)
	}
}
