package ir

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Property is a named device tree property value.  It is a tagged union:
// Type selects which of the value fields is meaningful.
type Property struct {
	Name string
	Type Type

	Int     int64
	String  string
	Tuple   []string
	Ints    []int64
	Strings []string
	Tuples  [][]string

	// Bare marks string elements written without quotes: macros, label
	// and path references, byte strings.  It runs parallel to Strings, or
	// has a single entry for String; nil means every element is quoted.
	Bare []bool
}

var (
	macroRE = regexp.MustCompile(`^__\w+__$`)
	refRE   = regexp.MustCompile(`^&(\w[\w,.+\-]*|\{[^{}]*\})$`)
	bytesRE = regexp.MustCompile(`^\[[0-9a-fA-F \t]*\]$`)
)

// IsMacro reports whether v is an opaque preprocessor macro token such as
// __FOO__.
func IsMacro(v string) bool {
	return macroRE.MatchString(v)
}

// IsBare reports whether v may be written without quotes: macros, label or
// path references (&uart0, &{/soc}) and byte strings ([00 1f]).
func IsBare(v string) bool {
	return macroRE.MatchString(v) || refRE.MatchString(v) || bytesRE.MatchString(v)
}

func NewBool(name string) *Property {
	return &Property{Name: name, Type: BoolType}
}

func NewInt(name string, v int64) *Property {
	return &Property{Name: name, Type: IntType, Int: v}
}

func NewString(name, v string) *Property {
	return &Property{Name: name, Type: StringType, String: v}
}

// NewBareString makes a string property rendered without quotes, such as a
// macro or a reference.
func NewBareString(name, v string) *Property {
	return &Property{Name: name, Type: StringType, String: v, Bare: []bool{true}}
}

func NewTuple(name string, toks ...string) *Property {
	return &Property{Name: name, Type: TupleType, Tuple: slices.Clone(toks)}
}

func NewIntList(name string, vs []int64) (*Property, error) {
	if len(vs) == 0 {
		return nil, fmt.Errorf("%w: empty int list %q", ErrPropertyType, name)
	}
	return &Property{Name: name, Type: IntListType, Ints: slices.Clone(vs)}, nil
}

func NewStringList(name string, vs []string) (*Property, error) {
	if len(vs) == 0 {
		return nil, fmt.Errorf("%w: empty string list %q", ErrPropertyType, name)
	}
	return &Property{Name: name, Type: StringListType, Strings: slices.Clone(vs)}, nil
}

func NewTupleList(name string, vs [][]string) (*Property, error) {
	if len(vs) == 0 {
		return nil, fmt.Errorf("%w: empty tuple list %q", ErrPropertyType, name)
	}
	res := &Property{Name: name, Type: TupleListType, Tuples: make([][]string, len(vs))}
	for i, v := range vs {
		res.Tuples[i] = slices.Clone(v)
	}
	return res, nil
}

// NewList builds a list property from scalar elements.  The list variant
// is chosen by the type of the first element; every other element must
// have the same type.
func NewList(name string, elems []*Property) (*Property, error) {
	if len(elems) == 0 {
		return nil, fmt.Errorf("%w: empty list %q", ErrPropertyType, name)
	}
	lt, ok := ListOf(elems[0].Type)
	if !ok {
		return nil, fmt.Errorf("%w: %s cannot be a list element of %q", ErrPropertyType, elems[0].Type, name)
	}
	res := &Property{Name: name, Type: lt}
	bare := make([]bool, len(elems))
	for i, e := range elems {
		if e.Type != elems[0].Type {
			return nil, fmt.Errorf("%w: %q element %d is %s, list is %s", ErrPropertyType, name, i, e.Type, lt)
		}
		switch e.Type {
		case IntType:
			res.Ints = append(res.Ints, e.Int)
		case StringType:
			res.Strings = append(res.Strings, e.String)
			bare[i] = e.BareAt(0)
		case TupleType:
			res.Tuples = append(res.Tuples, slices.Clone(e.Tuple))
		}
	}
	if slices.Contains(bare, true) {
		res.Bare = bare
	}
	return res, nil
}

// NewFromValue converts a plain Go value to a property.  Strings of the
// form "<a b c>" become tuples, strings wrapped in double quotes become
// their quoted content, and macros or references become bare strings.  See
// [Property.Record] for the inverse.
func NewFromValue(name string, v any) (*Property, error) {
	switch x := v.(type) {
	case nil:
		return NewBool(name), nil
	case bool:
		if !x {
			return nil, fmt.Errorf("%w: %q: false is not a property value", ErrPropertyType, name)
		}
		return NewBool(name), nil
	case int:
		return NewInt(name, int64(x)), nil
	case int32:
		return NewInt(name, int64(x)), nil
	case int64:
		return NewInt(name, x), nil
	case uint32:
		return NewInt(name, int64(x)), nil
	case uint64:
		if x > math.MaxInt64 {
			return nil, fmt.Errorf("%w: %q: %d overflows", ErrPropertyType, name, x)
		}
		return NewInt(name, int64(x)), nil
	case float64:
		if x != math.Trunc(x) {
			return nil, fmt.Errorf("%w: %q: non integral number %v", ErrPropertyType, name, x)
		}
		return NewInt(name, int64(x)), nil
	case string:
		if toks, ok := SplitTuple(x); ok {
			return NewTuple(name, toks...), nil
		}
		if isQuoted(x) {
			return NewString(name, x[1:len(x)-1]), nil
		}
		if IsBare(x) {
			return NewBareString(name, x), nil
		}
		return NewString(name, x), nil
	case []string:
		elems := make([]any, len(x))
		for i, e := range x {
			elems[i] = e
		}
		return NewFromValue(name, elems)
	case []int64:
		return NewIntList(name, x)
	case [][]string:
		return NewTupleList(name, x)
	case []any:
		elems := make([]*Property, len(x))
		for i, e := range x {
			p, err := NewFromValue(name, e)
			if err != nil {
				return nil, err
			}
			if p.Type.IsList() || p.Type == BoolType {
				return nil, fmt.Errorf("%w: %q element %d: %s is not a list element", ErrPropertyType, name, i, p.Type)
			}
			elems[i] = p
		}
		return NewList(name, elems)
	default:
		return nil, fmt.Errorf("%w: %q: unsupported value %T", ErrPropertyType, name, v)
	}
}

// SplitTuple splits the text of a cell group "<a b c>" into its tokens.
// Parenthesized expressions stay single tokens.
func SplitTuple(v string) ([]string, bool) {
	v = strings.TrimSpace(v)
	if len(v) < 2 || v[0] != '<' || v[len(v)-1] != '>' {
		return nil, false
	}
	return SplitCells(v[1 : len(v)-1]), true
}

// SplitCells splits the interior of a cell group on whitespace, keeping
// parenthesized expressions together.
func SplitCells(v string) []string {
	var res []string
	depth := 0
	start := -1
	for i := 0; i < len(v); i++ {
		c := v[i]
		switch {
		case c == '(':
			depth++
		case c == ')':
			if depth > 0 {
				depth--
			}
		case (c == ' ' || c == '\t' || c == '\n' || c == '\r') && depth == 0:
			if start >= 0 {
				res = append(res, v[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		res = append(res, v[start:])
	}
	return res
}

func (p *Property) Clone() *Property {
	res := &Property{}
	*res = *p
	res.Tuple = slices.Clone(p.Tuple)
	res.Ints = slices.Clone(p.Ints)
	res.Strings = slices.Clone(p.Strings)
	res.Bare = slices.Clone(p.Bare)
	if p.Tuples != nil {
		res.Tuples = make([][]string, len(p.Tuples))
		for i, t := range p.Tuples {
			res.Tuples[i] = slices.Clone(t)
		}
	}
	return res
}

// Equal reports whether p and o have the same name, variant and value.
func (p *Property) Equal(o *Property) bool {
	if p.Name != o.Name || p.Type != o.Type {
		return false
	}
	switch p.Type {
	case BoolType:
		return true
	case IntType:
		return p.Int == o.Int
	case StringType:
		return p.String == o.String && p.BareAt(0) == o.BareAt(0)
	case TupleType:
		return slices.Equal(p.Tuple, o.Tuple)
	case IntListType:
		return slices.Equal(p.Ints, o.Ints)
	case StringListType:
		if !slices.Equal(p.Strings, o.Strings) {
			return false
		}
		for i := range p.Strings {
			if p.BareAt(i) != o.BareAt(i) {
				return false
			}
		}
		return true
	case TupleListType:
		return slices.EqualFunc(p.Tuples, o.Tuples, slices.Equal)
	}
	return false
}

// BareAt reports whether string element i is written without quotes.
func (p *Property) BareAt(i int) bool {
	return i < len(p.Bare) && p.Bare[i]
}

// Len returns the number of elements of a list property, 1 for scalars
// and 0 for booleans.
func (p *Property) Len() int {
	switch p.Type {
	case BoolType:
		return 0
	case IntListType:
		return len(p.Ints)
	case StringListType:
		return len(p.Strings)
	case TupleListType:
		return len(p.Tuples)
	}
	return 1
}

// Elems returns the scalar elements of p.  A scalar property is its own
// single element.
func (p *Property) Elems() []*Property {
	switch p.Type {
	case IntListType:
		res := make([]*Property, len(p.Ints))
		for i, v := range p.Ints {
			res[i] = NewInt(p.Name, v)
		}
		return res
	case StringListType:
		res := make([]*Property, len(p.Strings))
		for i, v := range p.Strings {
			res[i] = NewString(p.Name, v)
			if p.BareAt(i) {
				res[i].Bare = []bool{true}
			}
		}
		return res
	case TupleListType:
		res := make([]*Property, len(p.Tuples))
		for i, v := range p.Tuples {
			res[i] = NewTuple(p.Name, v...)
		}
		return res
	case BoolType:
		return nil
	}
	return []*Property{p.Clone()}
}

// Value renders the right hand side of the property assignment on a single
// line.  Boolean properties have no value and render as "".
func (p *Property) Value() string {
	return strings.Join(p.ValueLines(), ", ")
}

// ValueLines renders each element of the value separately, as used by the
// one-entry-per-line list form.
func (p *Property) ValueLines() []string {
	switch p.Type {
	case BoolType:
		return nil
	case IntType:
		return []string{"<" + hexInt(p.Int) + ">"}
	case StringType:
		return []string{quote(p.String, p.BareAt(0))}
	case TupleType:
		return []string{"<" + strings.Join(p.Tuple, " ") + ">"}
	case IntListType:
		hs := make([]string, len(p.Ints))
		for i, v := range p.Ints {
			hs[i] = hexInt(v)
		}
		return []string{"<" + strings.Join(hs, " ") + ">"}
	case StringListType:
		res := make([]string, len(p.Strings))
		for i, v := range p.Strings {
			res[i] = quote(v, p.BareAt(i))
		}
		return res
	case TupleListType:
		res := make([]string, len(p.Tuples))
		for i, v := range p.Tuples {
			res[i] = "<" + strings.Join(v, " ") + ">"
		}
		return res
	}
	return nil
}

// Statement renders the whole property statement, including the trailing
// semicolon.
func (p *Property) Statement() string {
	if p.Type == BoolType {
		return p.Name + ";"
	}
	return p.Name + " = " + p.Value() + ";"
}

// Any returns the property value as plain Go data: true for booleans,
// int64, string, []string for tuples, and slices of those for lists.
func (p *Property) Any() any {
	switch p.Type {
	case BoolType:
		return true
	case IntType:
		return p.Int
	case StringType:
		return p.String
	case TupleType:
		return slices.Clone(p.Tuple)
	case IntListType:
		return slices.Clone(p.Ints)
	case StringListType:
		return slices.Clone(p.Strings)
	case TupleListType:
		return p.Clone().Tuples
	}
	return nil
}

func (p *Property) GoString() string {
	return fmt.Sprintf("%s(%s)", p.Type, p.Statement())
}

func hexInt(v int64) string {
	if v < 0 {
		return "-0x" + strconv.FormatUint(uint64(-v), 16)
	}
	return "0x" + strconv.FormatInt(v, 16)
}

func quote(v string, bare bool) string {
	if bare {
		return v
	}
	return `"` + v + `"`
}

// Record returns the plain value of p as read back by [NewFromValue]:
// true for booleans, int64, the string, "<a b c>" for tuples and slices of
// those for lists.  A quoted string which would read back as something
// else keeps its quotes.
func (p *Property) Record() any {
	switch p.Type {
	case BoolType:
		return true
	case IntType:
		return p.Int
	case StringType:
		return recordString(p.String, p.BareAt(0))
	case TupleType:
		return p.Value()
	case IntListType:
		return slices.Clone(p.Ints)
	case StringListType:
		res := make([]string, len(p.Strings))
		for i, v := range p.Strings {
			res[i] = recordString(v, p.BareAt(i))
		}
		return res
	case TupleListType:
		return p.ValueLines()
	}
	return nil
}

func recordString(v string, bare bool) string {
	if bare {
		return v
	}
	if _, ok := SplitTuple(v); ok || IsBare(v) || isQuoted(v) {
		return `"` + v + `"`
	}
	return v
}

func isQuoted(v string) bool {
	return len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"'
}
