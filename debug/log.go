package debug

import (
	"bytes"
	"fmt"
	"os"

	"github.com/signadot/dts-format/encode"
	"github.com/signadot/dts-format/ir"
)

type DTS struct{ *ir.Tree }

func (t DTS) String() string {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(t.Tree, buf, encode.NoBanner()); err != nil {
		return fmt.Sprintf("[raw *ir.Tree] %v", t.Tree)
	}
	return buf.String()
}

// Logf writes a debug message to stderr.  Nodes are rendered as their
// block text, trees as full source and properties as statements.
func Logf(msg string, args ...any) {
	for i := range args {
		switch x := args[i].(type) {
		case *ir.Node:
			buf := bytes.NewBuffer(nil)
			if err := encode.EncodeNode(x, buf); err != nil {
				args[i] = fmt.Sprintf("[raw *ir.Node] %v", x)
				continue
			}
			args[i] = buf.String()
		case *ir.Tree:
			args[i] = DTS{x}.String()
		case *ir.Property:
			args[i] = x.Statement()
		case bool, string, int, ir.Handle:

		default:
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
