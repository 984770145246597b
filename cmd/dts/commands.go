package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "input format: dts/d, json/j, yaml/y (default from file suffix)",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		}, &cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: dts/d, json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "dts").
		WithSynopsis("dts [opts] command [opts]").
		WithDescription("dts is a tool for working with device tree source files.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return dtsMain(cfg, cc, args)
		}).
		WithSubs(
			ViewCommand(cfg),
			MergeCommand(cfg),
			DictifyCommand(cfg),
			UndictifyCommand(cfg),
			DiffCommand(cfg),
			PathsCommand(cfg),
			FindCommand(cfg),
			PatchCommand(cfg),
			ShellCommand(cfg))
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("view").
		WithAliases("v").
		WithOpts(opts...).
		WithSynopsis("view [files]").
		WithDescription("view device trees, normalized and optionally in color").
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
	cfg.View = cmd
	return cmd
}

func MergeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &MergeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Merge, "merge").
		WithAliases("m").
		WithOpts(opts...).
		WithSynopsis("merge [-check] [files]").
		WithDescription("merge back-reference and duplicate path blocks into their targets").
		WithRun(func(cc *cli.Context, args []string) error {
			return merge(cfg, cc, args)
		})
}

func DictifyCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DictifyConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Dictify, "dictify").
		WithAliases("dict").
		WithOpts(opts...).
		WithSynopsis("dictify [files]").
		WithDescription("render device trees as yaml (or json with -j) records").
		WithRun(func(cc *cli.Context, args []string) error {
			return dictify(cfg, cc, args)
		})
}

func UndictifyCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &UndictifyConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Undictify, "undictify").
		WithAliases("undict").
		WithSynopsis("undictify [files]").
		WithDescription("render yaml or json records as device tree source").
		WithRun(func(cc *cli.Context, args []string) error {
			return undictify(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("diff").
		WithAliases("d", "di").
		WithOpts(opts...).
		WithSynopsis("diff [-m] [-patch] a b").
		WithDescription("compare two device trees, exiting 1 if they differ").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

func PathsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PathsConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Paths, "paths").
		WithAliases("ls").
		WithOpts(opts...).
		WithSynopsis("paths [files]").
		WithDescription("list the node paths of device trees").
		WithRun(func(cc *cli.Context, args []string) error {
			return paths(cfg, cc, args)
		})
}

func FindCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FindConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Find, "find").
		WithAliases("f").
		WithOpts(opts...).
		WithSynopsis("find [opts] <expr> [files]").
		WithDescription(findDescription).
		WithRun(func(cc *cli.Context, args []string) error {
			return find(cfg, cc, args)
		})
}

const findDescription = `find lists the nodes for which a boolean expression holds.

The expression is evaluated once per node with

  name      node name
  labels    list of labels
  ref       back-reference text, for detached blocks
  address   unit address
  path      full node path
  depth     number of ancestors
  props     property name to value
  children  child pathnames

and the functions has(name) and compatible(s).  For example

  dts find 'compatible("ns16550") && props.status != "disabled"' board.dts`

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("patch").
		WithAliases("p", "pa").
		WithSynopsis("patch [opts] <patch> [file]").
		WithDescription("apply a json patch or json merge patch, in yaml or json, to the record form of a device tree").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return patch(cfg, cc, args)
		})
	cfg.Patch = cmd
	return cmd
}

func ShellCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ShellConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Shell, "shell").
		WithAliases("sh").
		WithOpts(opts...).
		WithSynopsis("shell [-history file] [file]").
		WithDescription("interactively load, edit, merge, compare and save device trees").
		WithRun(func(cc *cli.Context, args []string) error {
			return shell(cfg, cc, args)
		})
}
