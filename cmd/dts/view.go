package main

import (
	"github.com/signadot/dts-format/ir"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	return eachTree(cfg.MainConfig, cc, args, cfg.Merge, func(_ string, t *ir.Tree) error {
		return cfg.putTree(cc.Out, t)
	})
}
