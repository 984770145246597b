package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/dts-format/ir"
)

const shellSrc = `/dts-v1/;
/ {
	soc {
		u: serial@1000 {
			status = "disabled";
		};
	};
};
&u {
	clock-frequency = <24000000>;
};
`

func newShell(t *testing.T) (*shellState, *bytes.Buffer, string) {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, "board.dts")
	if err := os.WriteFile(p, []byte(shellSrc), 0o644); err != nil {
		t.Fatal(err)
	}
	out := bytes.NewBuffer(nil)
	return &shellState{cfg: &MainConfig{NoBanner: true}, out: out}, out, dir
}

func run(t *testing.T, sh *shellState, lines ...string) {
	t.Helper()
	for _, ln := range lines {
		if err := sh.exec(ln); err != nil {
			t.Fatalf("%s: %v", ln, err)
		}
	}
}

func TestShellEditSave(t *testing.T) {
	sh, out, dir := newShell(t)
	run(t, sh,
		"load "+filepath.Join(dir, "board.dts"),
		"merge",
		`set /soc/serial@1000 status = "okay";`,
		"set /soc wakeup-source",
		"unset /soc/serial@1000 clock-frequency",
		"save "+filepath.Join(dir, "out.dts"),
	)
	if !strings.HasPrefix(out.String(), "loaded ") {
		t.Errorf("got %q", out.String())
	}
	got, err := os.ReadFile(filepath.Join(dir, "out.dts"))
	if err != nil {
		t.Fatal(err)
	}
	want := `/dts-v1/;

/ {
	soc {
		wakeup-source;

		u: serial@1000 {
			status = "okay";
		};
	};
};
`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestShellQueries(t *testing.T) {
	sh, out, dir := newShell(t)
	run(t, sh, "load "+filepath.Join(dir, "board.dts"))
	out.Reset()
	run(t, sh, `find has("status")`)
	if diff := cmp.Diff("/soc/serial@1000\n", out.String()); diff != "" {
		t.Errorf("find (-want +got):\n%s", diff)
	}
	out.Reset()
	run(t, sh, "paths")
	want := "&u\n/\n/soc\n/soc/serial@1000\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("paths (-want +got):\n%s", diff)
	}
	out.Reset()
	run(t, sh, "diff "+filepath.Join(dir, "board.dts"))
	if diff := cmp.Diff("no differences\n", out.String()); diff != "" {
		t.Errorf("diff (-want +got):\n%s", diff)
	}
}

func TestShellErrors(t *testing.T) {
	sh, _, dir := newShell(t)
	if err := sh.exec("view"); err == nil {
		t.Error("view without tree")
	}
	run(t, sh, "load "+filepath.Join(dir, "board.dts"))
	for _, ln := range []string{
		"view /nosuch",
		"unset /soc nosuch",
		"set /soc bad name = <1>",
		"frobnicate",
		"load -",
	} {
		if err := sh.exec(ln); err == nil {
			t.Errorf("%q: no error", ln)
		}
	}
	if err := sh.exec(`set /soc x = "a", <1>`); !errors.Is(err, ir.ErrPropertyType) {
		t.Errorf("mixed list: %v", err)
	}
	if err := sh.exec("quit"); err != errExit {
		t.Errorf("quit: %v", err)
	}
}
