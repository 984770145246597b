package main

import (
	"fmt"

	"github.com/signadot/dts-format/ir"

	"github.com/scott-cotton/cli"
)

func paths(cfg *PathsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Paths.Parse(cc, args)
	if err != nil {
		return err
	}
	return eachTree(cfg.MainConfig, cc, args, cfg.Merge, func(_ string, t *ir.Tree) error {
		tops := []*ir.Node{t.Root()}
		if cfg.Detached {
			tops = append(tops, t.Detached()...)
		}
		var ps []string
		for _, top := range tops {
			_ = top.Visit(func(n *ir.Node, isPost bool) (bool, error) {
				if !isPost {
					ps = append(ps, n.Path())
				}
				return true, nil
			})
		}
		for _, p := range ps {
			if _, err := fmt.Fprintln(cc.Out, p); err != nil {
				return err
			}
		}
		return nil
	})
}
