package main

import (
	"fmt"
	"io"
	"os"

	dts "github.com/signadot/dts-format"
	dictifypkg "github.com/signadot/dts-format/dictify"
	"github.com/signadot/dts-format/ir"
	"github.com/signadot/dts-format/parse"

	"github.com/scott-cotton/cli"
)

// readArg reads the file path, or stdin if path is "-".
func readArg(stdin io.Reader, path string) ([]byte, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = stdin
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return d, nil
}

// getTree reads the tree in path, "-" being stdin, optionally merging it.
func getTree(cfg *MainConfig, stdin io.Reader, path string, merge bool) (*ir.Tree, error) {
	d, err := readArg(stdin, path)
	if err != nil {
		return nil, err
	}
	var t *ir.Tree
	if cfg.inFormat(path).IsInterchange() {
		t, err = dictifypkg.Unmarshal(d)
	} else {
		t, err = parse.Parse(d, cfg.parseOpts(path)...)
	}
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, err)
	}
	if merge {
		if err := dts.Merge(t); err != nil {
			return nil, fmt.Errorf("error merging %s: %w", path, err)
		}
	}
	return t, nil
}

func (cfg *MainConfig) putTree(w io.Writer, t *ir.Tree) error {
	d, err := dts.Marshal(t, cfg.outFormat(), cfg.encOpts(w)...)
	if err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	_, err = w.Write(d)
	return err
}

// eachTree runs f on the tree of each file in args, or of stdin if there
// are none.
func eachTree(cfg *MainConfig, cc *cli.Context, args []string, merge bool, f func(string, *ir.Tree) error) error {
	if len(args) == 0 {
		args = []string{"-"}
	}
	for i, file := range args {
		t, err := getTree(cfg, cc.In, file, merge)
		if err != nil {
			return err
		}
		if err := f(file, t); err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
		if i < len(args)-1 && cfg.outFormat().IsInterchange() {
			if _, err := cc.Out.Write([]byte("---\n")); err != nil {
				return err
			}
		}
	}
	return nil
}
