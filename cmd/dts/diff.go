package main

import (
	"fmt"

	dts "github.com/signadot/dts-format"
	"github.com/signadot/dts-format/format"
	"github.com/signadot/dts-format/libdiff"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := getTree(cfg.MainConfig, cc.In, args[0], cfg.Merge)
	if err != nil {
		return err
	}
	b, err := getTree(cfg.MainConfig, cc.In, args[1], cfg.Merge)
	if err != nil {
		return err
	}
	if cfg.Patch {
		p, err := dts.MergePatch(a, b)
		if err != nil {
			return fmt.Errorf("error creating patch: %w", err)
		}
		if string(p) == "{}" {
			return nil
		}
		if cfg.outFormat() == format.YAMLFormat {
			if p, err = yaml.JSONToYAML(p); err != nil {
				return err
			}
		}
		if _, err := cc.Out.Write(p); err != nil {
			return err
		}
		return cli.ExitCodeErr(1)
	}
	d := libdiff.Compare(a, b)
	if d.Empty() {
		return nil
	}
	if f := cfg.outFormat(); f.IsInterchange() {
		var out []byte
		if f == format.JSONFormat {
			out, err = yaml.MarshalWithOptions(d.Record(), yaml.JSON())
		} else {
			out, err = yaml.Marshal(d.Record())
		}
		if err != nil {
			return err
		}
		if _, err := cc.Out.Write(out); err != nil {
			return err
		}
	} else if err := d.WriteTo(cc.Out, cfg.colors(cc.Out)); err != nil {
		return err
	}
	return cli.ExitCodeErr(1)
}
