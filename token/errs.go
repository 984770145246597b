package token

import (
	"errors"
	"fmt"

	"github.com/signadot/dts-format/ir"
)

var (
	ErrUnterminated = errors.New("unterminated")
	ErrUnbalanced   = errors.New("unbalanced braces")
	ErrUnexpected   = errors.New("unexpected text")
	ErrValue        = errors.New("bad value")
)

// ScanErr is a parse error located at a source line.  It matches both
// [ir.ErrParse] and the more specific cause with errors.Is.
type ScanErr struct {
	Err  error
	Line int
	Text string
}

func NewScanErr(err error, line int, text string) *ScanErr {
	return &ScanErr{Err: err, Line: line, Text: text}
}

func (e *ScanErr) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("%s: %v at line %d", ir.ErrParse, e.Err, e.Line)
	}
	return fmt.Sprintf("%s: %v at line %d: %q", ir.ErrParse, e.Err, e.Line, e.Text)
}

func (e *ScanErr) Unwrap() []error {
	return []error{ir.ErrParse, e.Err}
}
