package token

import "strings"

// SplitStatements splits lines at statement boundaries so that every
// resulting line holds at most one of: a block opener ending in '{', a
// block closer starting with '}', or a (possibly partial) statement ending
// in ';'.  Quoted strings, parenthesized expressions, cell groups and path
// references "&{/a/b}" are never split.  Preprocessor lines are kept whole.
func SplitStatements(lines []Line) []Line {
	res := make([]Line, 0, len(lines))
	emit := func(num int, text string) {
		text = strings.TrimSpace(text)
		if text == "" {
			return
		}
		res = append(res, Line{Num: num, Text: text})
	}
	for _, ln := range lines {
		if IsPreprocessor(ln.Text) {
			emit(ln.Num, ln.Text)
			continue
		}
		s := ln.Text
		start := 0
		var (
			inStr  bool
			parens int
			angles int
		)
		for i := 0; i < len(s); i++ {
			c := s[i]
			if inStr {
				switch c {
				case '\\':
					i++
				case '"':
					inStr = false
				}
				continue
			}
			switch c {
			case '"':
				inStr = true
			case '(':
				parens++
			case ')':
				if parens > 0 {
					parens--
				}
			case '<':
				if parens == 0 {
					angles++
				}
			case '>':
				if parens == 0 && angles > 0 {
					angles--
				}
			case '&':
				if parens == 0 && angles == 0 && i+1 < len(s) && s[i+1] == '{' {
					if j := strings.IndexByte(s[i:], '}'); j > 0 {
						i += j
					}
				}
			case '{':
				if parens == 0 && angles == 0 {
					emit(ln.Num, s[start:i+1])
					start = i + 1
				}
			case '}':
				if parens == 0 && angles == 0 {
					emit(ln.Num, s[start:i])
					start = i
				}
			case ';':
				if parens == 0 && angles == 0 {
					emit(ln.Num, s[start:i+1])
					start = i + 1
				}
			}
		}
		emit(ln.Num, s[start:])
	}
	return res
}
