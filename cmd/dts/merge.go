package main

import (
	"fmt"

	"github.com/signadot/dts-format/ir"
	dtsmerge "github.com/signadot/dts-format/merge"

	"github.com/scott-cotton/cli"
)

func merge(cfg *MergeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Merge.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Check {
		return eachTree(cfg.MainConfig, cc, args, false, func(file string, t *ir.Tree) error {
			if err := dtsmerge.Check(t); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cc.Out, "%s: ok\n", file)
			return err
		})
	}
	return eachTree(cfg.MainConfig, cc, args, true, func(_ string, t *ir.Tree) error {
		return cfg.putTree(cc.Out, t)
	})
}
