package main

import (
	"fmt"

	dts "github.com/signadot/dts-format"
	"github.com/signadot/dts-format/encode"
	"github.com/signadot/dts-format/ir"

	"github.com/scott-cotton/cli"
)

func find(cfg *FindConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Find.Parse(cc, args)
	if err != nil {
		cfg.Find.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: find requires an expression", cli.ErrUsage)
	}
	query := args[0]
	return eachTree(cfg.MainConfig, cc, args[1:], cfg.Merge, func(_ string, t *ir.Tree) error {
		ns, err := dts.Find(t, query, dts.FindDetached(cfg.Detached))
		if err != nil {
			return fmt.Errorf("error evaluating %q: %w", query, err)
		}
		for _, n := range ns {
			if !cfg.Nodes {
				if _, err := fmt.Fprintln(cc.Out, n.Path()); err != nil {
					return err
				}
				continue
			}
			if _, err := fmt.Fprintf(cc.Out, "// %s\n", n.Path()); err != nil {
				return err
			}
			if err := encode.EncodeNode(n, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
				return err
			}
		}
		return nil
	})
}
