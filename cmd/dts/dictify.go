package main

import (
	"github.com/signadot/dts-format/format"
	"github.com/signadot/dts-format/ir"

	"github.com/scott-cotton/cli"
)

func dictify(cfg *DictifyConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dictify.Parse(cc, args)
	if err != nil {
		return err
	}
	if !cfg.outFormat().IsInterchange() {
		f := format.YAMLFormat
		cfg.OutFormat = &f
	}
	return eachTree(cfg.MainConfig, cc, args, cfg.Merge, func(_ string, t *ir.Tree) error {
		return cfg.putTree(cc.Out, t)
	})
}

func undictify(cfg *UndictifyConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Undictify.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.InFormat == nil {
		f := format.YAMLFormat
		cfg.InFormat = &f
	}
	if cfg.OutFormat == nil {
		f := format.DTSFormat
		cfg.OutFormat = &f
	}
	return eachTree(cfg.MainConfig, cc, args, false, func(_ string, t *ir.Tree) error {
		return cfg.putTree(cc.Out, t)
	})
}
