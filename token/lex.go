package token

import (
	"fmt"
	"strings"

	"github.com/signadot/dts-format/debug"
	"github.com/signadot/dts-format/ir"
)

// Lex converts the right hand side of "name = rhs;" to a property.
//
// The value is a comma separated sequence of elements, each one of
//
//   - a double quoted string, kept raw, escapes included,
//   - a cell group "<...>", split into cells on whitespace outside
//     parentheses,
//   - a bare macro token __NAME__, a label reference &label, a path
//     reference &{/path} or a byte string [00 1f], kept as a string marked
//     bare so that it is rendered without quotes.
//
// Cell groups are always tuples; their cells stay opaque text.  A single
// element gives a scalar property, several elements a list whose elements
// must share one type.
func Lex(name, rhs string) (*ir.Property, error) {
	elems, err := lexElems(name, strings.TrimSpace(rhs))
	if err != nil {
		return nil, err
	}
	if debug.Lex() {
		debug.Logf("lex %s = %s: %d elements\n", name, rhs, len(elems))
	}
	if len(elems) == 1 {
		return elems[0], nil
	}
	return ir.NewList(name, elems)
}

func lexElems(name, s string) ([]*ir.Property, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: %w: property %q has no value", ir.ErrParse, ErrValue, name)
	}
	var res []*ir.Property
	i := 0
	for {
		i = skipSpace(s, i)
		if i == len(s) {
			return nil, fmt.Errorf("%w: %w: property %q: missing element after ','", ir.ErrParse, ErrValue, name)
		}
		var (
			p   *ir.Property
			n   int
			err error
		)
		switch s[i] {
		case '"':
			n, err = scanString(s[i:])
			if err == nil {
				p = ir.NewString(name, s[i+1:i+n-1])
			}
		case '<':
			n, err = scanCells(s[i:])
			if err == nil {
				p = ir.NewTuple(name, ir.SplitCells(s[i+1:i+n-1])...)
			}
		default:
			n = scanBare(s[i:])
			if n == 0 || !ir.IsBare(s[i:i+n]) {
				err = fmt.Errorf("%w: %w: property %q: %q", ir.ErrParse, ErrValue, name, s[i:])
			} else {
				p = ir.NewBareString(name, s[i:i+n])
			}
		}
		if err != nil {
			return nil, err
		}
		res = append(res, p)
		i = skipSpace(s, i+n)
		if i == len(s) {
			return res, nil
		}
		if s[i] != ',' {
			return nil, fmt.Errorf("%w: %w: property %q: unexpected %q", ir.ErrParse, ErrUnexpected, name, s[i:])
		}
		i++
	}
}

func skipSpace(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n') {
		i++
	}
	return i
}

// scanString returns the length of the quoted string at the start of s,
// quotes included.
func scanString(s string) (int, error) {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("%w: %w string %s", ir.ErrParse, ErrUnterminated, s)
}

// scanCells returns the length of the cell group at the start of s, angle
// brackets included.  Angle brackets inside parentheses are operators.
func scanCells(s string) (int, error) {
	parens := 0
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '(':
			parens++
		case ')':
			if parens > 0 {
				parens--
			}
		case '>':
			if parens == 0 {
				return i + 1, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %w cell group %s", ir.ErrParse, ErrUnterminated, s)
}

// scanBare returns the length of the bare token at the start of s.
func scanBare(s string) int {
	switch {
	case strings.HasPrefix(s, "&{"):
		if j := strings.IndexByte(s, '}'); j > 0 {
			return j + 1
		}
		return 0
	case strings.HasPrefix(s, "["):
		if j := strings.IndexByte(s, ']'); j > 0 {
			return j + 1
		}
		return 0
	}
	i := 0
	for i < len(s) && s[i] != ',' && s[i] != ' ' && s[i] != '\t' {
		i++
	}
	return i
}
