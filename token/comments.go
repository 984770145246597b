package token

import (
	"regexp"
	"strings"

	"github.com/signadot/dts-format/debug"
)

// linker markers emitted by the C preprocessor, "# 12 "file.dtsi" 1" and
// "#line 12 "file.dtsi"".
var (
	markerRE     = regexp.MustCompile(`^[ \t]*#[^id][0-9]*\s*"`)
	lineMarkerRE = regexp.MustCompile(`^[ \t]*#[ \t]*line[ \t]+[0-9]+`)
)

// StripComments removes line comments, block comments and linker markers
// from lines.  Comment openers inside double quoted strings are text.  A
// block comment may span lines; text before its opener and after its closer
// is kept.  Lines left blank are dropped, the others keep their number.
//
// StripComments is idempotent.
func StripComments(lines []Line) []Line {
	res := make([]Line, 0, len(lines))
	inBlock := false
	for _, ln := range lines {
		if !inBlock && (markerRE.MatchString(ln.Text) || lineMarkerRE.MatchString(ln.Text)) {
			if debug.Scan() {
				debug.Logf("drop marker line %d: %s\n", ln.Num, ln.Text)
			}
			continue
		}
		var text string
		text, inBlock = stripLine(ln.Text, inBlock)
		text = strings.TrimRight(text, " \t")
		if strings.TrimSpace(text) == "" {
			continue
		}
		res = append(res, Line{Num: ln.Num, Text: text})
	}
	return res
}

// stripLine strips the comments of one line given whether a block comment
// is open at its start, returning the remaining text and whether a block
// comment is open at its end.
func stripLine(s string, inBlock bool) (string, bool) {
	var b strings.Builder
	inStr := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inBlock {
			if c == '*' && i+1 < len(s) && s[i+1] == '/' {
				inBlock = false
				i++
				if b.Len() != 0 {
					b.WriteByte(' ')
				}
			}
			continue
		}
		if inStr {
			b.WriteByte(c)
			switch c {
			case '\\':
				if i+1 < len(s) {
					b.WriteByte(s[i+1])
					i++
				}
			case '"':
				inStr = false
			}
			continue
		}
		if c == '/' && i+1 < len(s) {
			switch s[i+1] {
			case '/':
				return b.String(), false
			case '*':
				inBlock = true
				i++
				continue
			}
		}
		if c == '"' {
			inStr = true
		}
		b.WriteByte(c)
	}
	return b.String(), inBlock
}
