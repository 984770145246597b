package token

import (
	"fmt"
	"regexp"
	"strings"
)

type StatementKind int

const (
	PropertyStatement StatementKind = iota
	BoolStatement
	DirectiveStatement
	IncludeStatement
)

func (k StatementKind) String() string {
	switch k {
	case PropertyStatement:
		return "property"
	case BoolStatement:
		return "bool"
	case DirectiveStatement:
		return "directive"
	case IncludeStatement:
		return "include"
	}
	return fmt.Sprintf("StatementKind(%d)", int(k))
}

// Statement is one complete statement inside a node block.  For properties
// Name is the property name and Value the unparsed right hand side; for
// directives Name is the tag ("include", "delete-node", ...) and Value its
// argument.  An IncludeStatement is a "#include" line inside the block,
// Value being the included file with its delimiters.
type Statement struct {
	Kind  StatementKind
	Name  string
	Value string
	Line  int
}

var (
	stmtDirectiveRE = regexp.MustCompile(`^/([\w-]+)/\s*(.*)$`)
	stmtAssignRE    = regexp.MustCompile(`^([\w,.+#?-]+)\s*=\s*(.*)$`)
	stmtBoolRE      = regexp.MustCompile(`^[\w,.+#?-]+$`)
)

// Statements groups the self-lines of a block into statements.  A
// statement runs until a line ending in ';'; its lines are joined with a
// single space.  An "/include/" directive and a "#include" line need no
// terminator.
func Statements(lines []Line) ([]Statement, error) {
	var (
		res   []Statement
		acc   []string
		start int
	)
	for _, ln := range lines {
		text := strings.TrimSpace(ln.Text)
		if len(acc) == 0 {
			start = ln.Num
			if m := includeRE.FindStringSubmatch(text); m != nil {
				res = append(res, Statement{Kind: IncludeStatement, Value: m[1], Line: ln.Num})
				continue
			}
			if strings.HasPrefix(text, "/include/") && !strings.HasSuffix(text, ";") {
				st, err := classify(text, ln.Num)
				if err != nil {
					return nil, err
				}
				res = append(res, st)
				continue
			}
		}
		acc = append(acc, text)
		if !strings.HasSuffix(text, ";") {
			continue
		}
		stmt := strings.TrimSpace(strings.TrimSuffix(strings.Join(acc, " "), ";"))
		acc = acc[:0]
		if stmt == "" {
			continue
		}
		st, err := classify(stmt, start)
		if err != nil {
			return nil, err
		}
		res = append(res, st)
	}
	if len(acc) != 0 {
		return nil, NewScanErr(fmt.Errorf("%w statement", ErrUnterminated), start, strings.Join(acc, " "))
	}
	return res, nil
}

func classify(s string, line int) (Statement, error) {
	if m := stmtDirectiveRE.FindStringSubmatch(s); m != nil {
		return Statement{Kind: DirectiveStatement, Name: m[1], Value: unquote(strings.TrimSpace(m[2])), Line: line}, nil
	}
	if m := stmtAssignRE.FindStringSubmatch(s); m != nil {
		return Statement{Kind: PropertyStatement, Name: m[1], Value: strings.TrimSpace(m[2]), Line: line}, nil
	}
	if stmtBoolRE.MatchString(s) {
		return Statement{Kind: BoolStatement, Name: s, Line: line}, nil
	}
	return Statement{}, NewScanErr(ErrUnexpected, line, s)
}

func unquote(v string) string {
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		return v[1 : len(v)-1]
	}
	return v
}
