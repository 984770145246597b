package main

import (
	"fmt"

	dts "github.com/signadot/dts-format"

	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: patch requires a patch and at most one file to which to apply it", cli.ErrUsage)
	}
	target := "-"
	if len(args) == 2 {
		target = args[1]
	}
	if target == "-" && args[0] == "-" && !cfg.String {
		return fmt.Errorf("%w: patch and target cannot both be stdin", cli.ErrUsage)
	}
	p := []byte(args[0])
	if !cfg.String {
		if p, err = readArg(cc.In, args[0]); err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	t, err := getTree(cfg.MainConfig, cc.In, target, cfg.Merge)
	if err != nil {
		return err
	}
	res, err := dts.Patch(t, p)
	if err != nil {
		return fmt.Errorf("error patching %s: %w", target, err)
	}
	return cfg.putTree(cc.Out, res)
}
