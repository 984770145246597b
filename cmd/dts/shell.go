package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	dts "github.com/signadot/dts-format"
	"github.com/signadot/dts-format/encode"
	"github.com/signadot/dts-format/ir"
	"github.com/signadot/dts-format/libdiff"
	"github.com/signadot/dts-format/token"

	"github.com/chzyer/readline"
	"github.com/scott-cotton/cli"
)

var errExit = errors.New("exit")

const shellHelp = `commands:
  load <file>               read a tree (source, yaml or json by suffix)
  save <file>               write the tree, in the format given by the suffix
  merge                     merge back-references and duplicate paths
  view [path]               show the tree or the subtree at path
  paths                     list node paths
  find <expr>               list nodes matching an expression (see dts find -h)
  set <path> <property>     set a property, e.g. set /soc status = "okay";
  unset <path> <name>       remove a property
  diff <file>               compare the tree with another file
  quit
`

type shellState struct {
	cfg  *MainConfig
	out  io.Writer
	tree *ir.Tree
	file string
}

func shell(cfg *ShellConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Shell.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: shell takes at most one file", cli.ErrUsage)
	}
	sh := &shellState{cfg: cfg.MainConfig}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "dts> ",
		HistoryFile:     cfg.History,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    sh.completer(),
	})
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	defer rl.Close()
	sh.out = rl.Stdout()
	if len(args) == 1 {
		if err := sh.exec("load " + args[0]); err != nil {
			return err
		}
	}
	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				return nil
			}
			return err
		}
		err = sh.exec(line)
		if err == errExit {
			return nil
		}
		if err != nil {
			fmt.Fprintf(rl.Stderr(), "error: %v\n", err)
		}
	}
}

func (sh *shellState) completer() readline.AutoCompleter {
	pathItem := readline.PcItemDynamic(func(string) []string {
		if sh.tree == nil {
			return nil
		}
		return sh.tree.Paths()
	})
	return readline.NewPrefixCompleter(
		readline.PcItem("load"),
		readline.PcItem("save"),
		readline.PcItem("merge"),
		readline.PcItem("view", pathItem),
		readline.PcItem("paths"),
		readline.PcItem("find"),
		readline.PcItem("set", pathItem),
		readline.PcItem("unset", pathItem),
		readline.PcItem("diff"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}

// exec runs one shell command line.
func (sh *shellState) exec(line string) error {
	cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)
	switch cmd {
	case "":
		return nil
	case "help", "?":
		_, err := io.WriteString(sh.out, shellHelp)
		return err
	case "quit", "exit", "q":
		return errExit
	case "load":
		if rest == "" || rest == "-" {
			return fmt.Errorf("load requires a file")
		}
		t, err := getTree(sh.cfg, nil, rest, false)
		if err != nil {
			return err
		}
		sh.tree, sh.file = t, rest
		_, err = fmt.Fprintf(sh.out, "loaded %s: %d nodes\n", rest, t.Len())
		return err
	}
	if sh.tree == nil {
		return fmt.Errorf("no tree loaded")
	}
	switch cmd {
	case "save":
		if rest == "" {
			rest = sh.file
		}
		return dts.ExportAny(sh.tree, rest, sh.cfg.layoutOpts()...)
	case "merge":
		return dts.Merge(sh.tree)
	case "view":
		if rest == "" {
			return sh.cfg.putTree(sh.out, sh.tree)
		}
		n, err := sh.node(rest)
		if err != nil {
			return err
		}
		return encode.EncodeNode(n, sh.out, sh.cfg.encOpts(sh.out)...)
	case "paths":
		for _, p := range sh.tree.Paths() {
			if _, err := fmt.Fprintln(sh.out, p); err != nil {
				return err
			}
		}
		return nil
	case "find":
		ns, err := dts.Find(sh.tree, rest, dts.FindDetached(true))
		if err != nil {
			return err
		}
		for _, n := range ns {
			if _, err := fmt.Fprintln(sh.out, n.Path()); err != nil {
				return err
			}
		}
		return nil
	case "set":
		path, stmt, _ := strings.Cut(rest, " ")
		n, err := sh.node(path)
		if err != nil {
			return err
		}
		p, err := property(stmt)
		if err != nil {
			return err
		}
		n.SetProperty(p)
		return nil
	case "unset":
		path, name, _ := strings.Cut(rest, " ")
		n, err := sh.node(path)
		if err != nil {
			return err
		}
		if !n.UnsetProperty(strings.TrimSpace(name)) {
			return fmt.Errorf("%s has no property %q", n.Path(), name)
		}
		return nil
	case "diff":
		if rest == "" || rest == "-" {
			return fmt.Errorf("diff requires a file")
		}
		other, err := getTree(sh.cfg, nil, rest, false)
		if err != nil {
			return err
		}
		d := libdiff.Compare(sh.tree, other)
		if d.Empty() {
			_, err := fmt.Fprintln(sh.out, "no differences")
			return err
		}
		return d.WriteTo(sh.out, sh.cfg.colors(sh.out))
	}
	return fmt.Errorf("unknown command %q, try help", cmd)
}

func (sh *shellState) node(path string) (*ir.Node, error) {
	n := sh.tree.ResolvePath(path)
	if n == nil {
		return nil, fmt.Errorf("no node at %q", path)
	}
	return n, nil
}

// property parses a single property statement, the trailing ';' being
// optional.
func property(stmt string) (*ir.Property, error) {
	stmt = strings.TrimSuffix(strings.TrimSpace(stmt), ";")
	name, rhs, ok := strings.Cut(stmt, "=")
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, " \t") {
		return nil, fmt.Errorf("%w: bad property statement %q", ir.ErrParse, stmt)
	}
	if !ok {
		return ir.NewBool(name), nil
	}
	return token.Lex(name, strings.TrimSpace(rhs))
}
