package token

import (
	"strings"
)

// Line is a line of source text together with its 1 based line number in
// the original input.  Passes which split or drop text keep the number of
// the line the text started on.
type Line struct {
	Num  int
	Text string
}

// Lines splits d into lines, dropping carriage returns.
func Lines(d []byte) []Line {
	s := strings.ReplaceAll(string(d), "\r\n", "\n")
	parts := strings.Split(s, "\n")
	if len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	res := make([]Line, len(parts))
	for i, p := range parts {
		res[i] = Line{Num: i + 1, Text: p}
	}
	return res
}

// Texts returns the text of each line.
func Texts(lines []Line) []string {
	res := make([]string, len(lines))
	for i := range lines {
		res[i] = lines[i].Text
	}
	return res
}
