package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/dts-format/format"
)

func TestFormats(t *testing.T) {
	cfg := &MainConfig{}
	for path, want := range map[string]format.Format{
		"-":        format.DTSFormat,
		"a.dts":    format.DTSFormat,
		"b.dtsi":   format.DTSFormat,
		"c.yaml":   format.YAMLFormat,
		"d/e.json": format.JSONFormat,
		"noext":    format.DTSFormat,
	} {
		if got := cfg.inFormat(path); got != want {
			t.Errorf("%s: got %s want %s", path, got, want)
		}
	}
	if got := cfg.outFormat(); got != format.DTSFormat {
		t.Errorf("default out %s", got)
	}
	cfg.Y = true
	if got := cfg.outFormat(); got != format.YAMLFormat {
		t.Errorf("-y out %s", got)
	}
	j := format.JSONFormat
	cfg.OutFormat = &j
	if got := cfg.outFormat(); got != format.JSONFormat {
		t.Errorf("-O json out %s", got)
	}
}

func TestStdinRoundTrip(t *testing.T) {
	src := `/dts-v1/;
/ {
	a: n {
		x = <1>;
	};
};
&a {
	y;
};
`
	cfg := &MainConfig{NoBanner: true}
	out := bytes.NewBuffer(nil)
	tree, err := getTree(cfg, strings.NewReader(src), "-", true)
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.putTree(out, tree); err != nil {
		t.Fatal(err)
	}
	want := `/dts-v1/;

/ {
	a: n {
		x = <1>;
		y;
	};
};
`
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
