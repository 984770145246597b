package encode

import (
	"strings"

	"github.com/signadot/dts-format/ir"

	"github.com/fatih/color"
)

// Colorable selects a color.  Type is the property variant for property
// attributes and is ignored for the signature and file level attributes.
type Colorable struct {
	Type ir.Type
	Attr ColorAttr
}

type ColorAttr int

const (
	CommentColor ColorAttr = iota
	DirectiveColor
	LabelColor
	NameColor
	AddressColor
	RefColor
	PropertyColor
	ValueColor
	SepColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	colors.Map[Colorable{Attr: CommentColor}] = color.BlueString
	colors.Map[Colorable{Attr: DirectiveColor}] = color.RGB(168, 0, 196).SprintfFunc()
	colors.Map[Colorable{Attr: LabelColor}] = color.RGB(196, 96, 16).SprintfFunc()
	colors.Map[Colorable{Attr: NameColor}] = color.RGB(128, 168, 196).SprintfFunc()
	colors.Map[Colorable{Attr: AddressColor}] = color.RGB(128, 216, 236).SprintfFunc()
	colors.Map[Colorable{Attr: RefColor}] = color.RGB(196, 168, 128).SprintfFunc()
	colors.Map[Colorable{Attr: SepColor}] = color.RGB(255, 0, 196).SprintfFunc()
	for _, t := range ir.Types() {
		able := Colorable{Type: t, Attr: PropertyColor}
		colors.Map[able] = color.RGB(74, 92, 138).SprintfFunc()
	}
	able := Colorable{Attr: ValueColor}
	able.Type = ir.BoolType
	colors.Map[able] = color.CyanString
	for _, t := range []ir.Type{ir.IntType, ir.IntListType} {
		able.Type = t
		colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()
	}
	for _, t := range []ir.Type{ir.StringType, ir.StringListType} {
		able.Type = t
		colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()
	}
	for _, t := range []ir.Type{ir.TupleType, ir.TupleListType} {
		able.Type = t
		colors.Map[able] = color.RGB(198, 198, 46).SprintfFunc()
	}
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.Replace(v, "%", "%%", -1))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(t ir.Type, a ColorAttr, s string) string {
	return c.Get(t, a)(s)
}

func (c *Colors) Get(t ir.Type, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Type: t, Attr: a}]
	if f == nil {
		f = c.Map[Colorable{Attr: a}]
	}
	if f == nil {
		return c.Default
	}
	return f
}
