package main

import (
	"regexp"
	"strconv"
	"strings"

	"go.lsp.dev/protocol"
)

var lineRE = regexp.MustCompile(`\bline (\d+)\b`)

// errorLine extracts the 1-based source line from a parse error, or 1.
func errorLine(err error) int {
	m := lineRE.FindStringSubmatch(err.Error())
	if m == nil {
		return 1
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func lines(content string) []string {
	return strings.Split(content, "\n")
}

// lineRange covers the text of 1-based line n, clamped to the document.
func lineRange(content string, n int) protocol.Range {
	ls := lines(content)
	i := min(max(n-1, 0), len(ls)-1)
	return protocol.Range{
		Start: protocol.Position{Line: uint32(i)},
		End:   protocol.Position{Line: uint32(i), Character: uint32(len([]rune(ls[i])))},
	}
}

// offset converts a position, counting characters as runes, to a byte
// offset in content.
func offset(content string, pos protocol.Position) int {
	line := uint32(0)
	col := uint32(0)
	for i, r := range content {
		if line == pos.Line && col == pos.Character {
			return i
		}
		if r == '\n' {
			if line == pos.Line {
				return i
			}
			line++
			col = 0
		} else if line == pos.Line {
			col++
		}
	}
	return len(content)
}

// applyChange replaces the text in rng, or the whole content when rng is
// zero.
func applyChange(content string, rng protocol.Range, text string) string {
	if rng == (protocol.Range{}) {
		return text
	}
	start := offset(content, rng.Start)
	end := max(offset(content, rng.End), start)
	return content[:start] + text + content[end:]
}

func isWordRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	return strings.ContainsRune("_,.+-#@&{}/", r)
}

// wordAt returns the reference or identifier under pos.  A path reference
// &{/a/b} is returned whole.
func wordAt(content string, pos protocol.Position) string {
	ls := lines(content)
	if int(pos.Line) >= len(ls) {
		return ""
	}
	rs := []rune(ls[pos.Line])
	c := int(pos.Character)
	if c > len(rs) {
		return ""
	}
	i, j := c, c
	for i > 0 && isWordRune(rs[i-1]) {
		i--
	}
	for j < len(rs) && isWordRune(rs[j]) {
		j++
	}
	w := strings.TrimRight(string(rs[i:j]), ",")
	if k := strings.Index(w, "&"); k > 0 {
		w = w[k:]
	}
	return w
}
