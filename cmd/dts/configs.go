package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/dts-format/encode"
	"github.com/signadot/dts-format/format"
	"github.com/signadot/dts-format/parse"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color    bool `cli:"name=color desc='encode with color'"`
	Compact  bool `cli:"name=compact desc='keep list values on one line'"`
	Indent   int  `cli:"name=indent desc='indent with n spaces instead of tabs'"`
	NoBanner bool `cli:"name=nobanner desc='omit the generated banner comment'"`

	J bool `cli:"name=j aliases=json desc='output json records'"`
	Y bool `cli:"name=y aliases=yaml desc='output yaml records'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

// inFormat gives the format for reading path, "-" being stdin.
func (cfg *MainConfig) inFormat(path string) format.Format {
	if cfg.InFormat != nil {
		return *cfg.InFormat
	}
	if path == "-" {
		return format.DTSFormat
	}
	return format.FromFilename(path)
}

func (cfg *MainConfig) outFormat() format.Format {
	var f format.Format
	switch {
	case cfg.Y:
		f = format.YAMLFormat
	case cfg.J:
		f = format.JSONFormat
	}
	if cfg.OutFormat != nil {
		f = *cfg.OutFormat
	}
	return f
}

func (cfg *MainConfig) parseOpts(path string) []parse.ParseOption {
	if path == "-" {
		return nil
	}
	return []parse.ParseOption{parse.ParseFilename(path)}
}

// layoutOpts are the encoding options for writing files.
func (cfg *MainConfig) layoutOpts() []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.Compact(cfg.Compact),
	}
	if cfg.Indent > 0 {
		res = append(res, encode.Indent(cfg.Indent))
	}
	if cfg.NoBanner {
		res = append(res, encode.NoBanner())
	}
	return res
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := cfg.layoutOpts()
	if cfg.colors(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// colors reports whether to write w in color: -color if given, otherwise
// whether w is a terminal.
func (cfg *MainConfig) colors(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	if cfg.Main == nil {
		return false
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		if opt.Value != nil {
			return false
		}
		break
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type ViewConfig struct {
	*MainConfig

	Merge bool `cli:"name=m desc='merge before rendering'"`
	View  *cli.Command
}

type MergeConfig struct {
	*MainConfig

	Check bool `cli:"name=check desc='only check that the trees can be merged'"`
	Merge *cli.Command
}

type DictifyConfig struct {
	*MainConfig

	Merge   bool `cli:"name=m desc='merge before dictifying'"`
	Dictify *cli.Command
}

type UndictifyConfig struct {
	*MainConfig

	Undictify *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Merge bool `cli:"name=m desc='merge both trees before comparing'"`
	Patch bool `cli:"name=patch desc='output a json merge patch from a to b'"`

	Diff *cli.Command
}

type PathsConfig struct {
	*MainConfig

	Merge    bool `cli:"name=m desc='merge before listing'"`
	Detached bool `cli:"name=d desc='include unresolved back-reference blocks'"`
	Paths    *cli.Command
}

type FindConfig struct {
	*MainConfig

	Merge    bool `cli:"name=m desc='merge before searching'"`
	Detached bool `cli:"name=d desc='search unresolved back-reference blocks too'"`
	Nodes    bool `cli:"name=n desc='print matching nodes rather than their paths'"`
	Find     *cli.Command
}

type ShellConfig struct {
	*MainConfig

	History string `cli:"name=history desc='command history file'"`
	Shell   *cli.Command
}

type PatchConfig struct {
	*MainConfig

	String bool `cli:"name=s desc='patch arg as string'"`
	Merge  bool `cli:"name=m desc='merge before patching'"`

	Patch *cli.Command
}
