package parse

import (
	"fmt"

	"github.com/signadot/dts-format/ir"
)

var (
	ErrParse     = ir.ErrParse
	ErrSignature = ir.ErrSignature
	ErrChildRef  = fmt.Errorf("%w: a back-reference cannot be a child node", ErrParse)
)

func lineErr(line int, err error) error {
	return fmt.Errorf("line %d: %w", line, err)
}
