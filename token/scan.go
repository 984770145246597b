package token

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/signadot/dts-format/debug"
	"github.com/signadot/dts-format/ir"
)

// Block is a node block discovered in source text: its raw signature, the
// statement lines directly inside it and its sub-blocks in source order.
type Block struct {
	Signature string
	Line      int
	Lines     []Line
	Subs      []*Block

	index map[string]int
}

// File is the result of scanning a device tree source file.
type File struct {
	// Version is the N of "/dts-vN/;", 0 if absent.
	Version    int
	Includes   []string
	Defines    []ir.Define
	Directives []ir.Directive
	// Blocks are the top level blocks.
	Blocks []*Block

	top Block
}

var (
	cppRE       = regexp.MustCompile(`^#\s*(include|define|undef|ifdef|ifndef|if|elif|else|endif|error|warning|pragma)\b`)
	includeRE   = regexp.MustCompile(`^#\s*include\s+([<"].*[>"])$`)
	defineRE    = regexp.MustCompile(`^#\s*define\s+(\S+)(?:\s+(.*))?$`)
	versionRE   = regexp.MustCompile(`^/dts-v(\d+)/\s*;$`)
	directiveRE = regexp.MustCompile(`^/([\w-]+)/\s*(.*?)\s*;?$`)
	closeRE     = regexp.MustCompile(`^}\s*;?$`)
	sigTextRE   = regexp.MustCompile(`^(&\{[^{}]*\}|[\w,.+#?@:&/ \t-]+)$`)
	colonRE     = regexp.MustCompile(`\s*:\s*`)
)

// Scan strips comments from d and discovers its block structure.
// Blocks with the same signature text under the same parent are combined
// into the first one: lines are appended and sub-blocks are combined
// recursively.
func Scan(d []byte) (*File, error) {
	return ScanLines(Lines(d))
}

// ScanLines is [Scan] on already split lines.
func ScanLines(lines []Line) (*File, error) {
	segs := SplitStatements(StripComments(lines))
	f := &File{}
	stack := []*Block{&f.top}
	for _, seg := range segs {
		text := seg.Text
		depth := len(stack) - 1
		if IsPreprocessor(text) {
			if depth > 0 && includeRE.MatchString(text) {
				stack[depth].Lines = append(stack[depth].Lines, seg)
				continue
			}
			f.preprocessor(seg)
			continue
		}
		if strings.HasSuffix(text, "{") {
			sig, err := signatureText(seg)
			if err != nil {
				return nil, err
			}
			if debug.Scan() {
				debug.Logf("open %q at line %d depth %d\n", sig, seg.Num, depth)
			}
			stack = append(stack, &Block{Signature: sig, Line: seg.Num})
			continue
		}
		if closeRE.MatchString(text) {
			if depth == 0 {
				return nil, NewScanErr(ErrUnbalanced, seg.Num, text)
			}
			b := stack[depth]
			stack = stack[:depth]
			stack[depth-1].add(b)
			continue
		}
		if depth == 0 {
			if err := f.topLevel(seg); err != nil {
				return nil, err
			}
			continue
		}
		b := stack[depth]
		b.Lines = append(b.Lines, seg)
	}
	if len(stack) > 1 {
		b := stack[len(stack)-1]
		return nil, NewScanErr(fmt.Errorf("%w block %q", ErrUnterminated, b.Signature), b.Line, "")
	}
	f.Blocks = f.top.Subs
	return f, nil
}

func (f *File) preprocessor(seg Line) {
	text := strings.TrimSpace(seg.Text)
	if m := includeRE.FindStringSubmatch(text); m != nil {
		f.Includes = appendNew(f.Includes, m[1])
		return
	}
	if m := defineRE.FindStringSubmatch(text); m != nil {
		f.setDefine(m[1], strings.TrimSpace(m[2]))
		return
	}
	if debug.Scan() {
		debug.Logf("ignore preprocessor line %d: %s\n", seg.Num, text)
	}
}

func (f *File) setDefine(name, value string) {
	for i := range f.Defines {
		if f.Defines[i].Name == name {
			f.Defines[i].Value = value
			return
		}
	}
	f.Defines = append(f.Defines, ir.Define{Name: name, Value: value})
}

func (f *File) topLevel(seg Line) error {
	if m := versionRE.FindStringSubmatch(seg.Text); m != nil {
		v, err := strconv.Atoi(m[1])
		if err != nil {
			return NewScanErr(err, seg.Num, seg.Text)
		}
		f.Version = v
		return nil
	}
	if m := directiveRE.FindStringSubmatch(seg.Text); m != nil {
		f.Directives = append(f.Directives, ir.Directive{Tag: m[1], Value: m[2]})
		return nil
	}
	return NewScanErr(ErrUnexpected, seg.Num, seg.Text)
}

func signatureText(seg Line) (string, error) {
	raw := strings.TrimSpace(strings.TrimSuffix(seg.Text, "{"))
	if raw == "" {
		return "", NewScanErr(fmt.Errorf("%w: missing node signature", ir.ErrSignature), seg.Num, seg.Text)
	}
	if !sigTextRE.MatchString(raw) {
		return "", NewScanErr(ErrUnexpected, seg.Num, seg.Text)
	}
	return NormalizeSignature(raw), nil
}

// IsPreprocessor reports whether text is a C preprocessor line.  Property
// names such as "#address-cells" also start with '#'.
func IsPreprocessor(text string) bool {
	return cppRE.MatchString(strings.TrimSpace(text))
}

// NormalizeSignature canonicalizes the spacing of signature text so that
// "a:b" and "a: b" compare equal.
func NormalizeSignature(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if strings.HasPrefix(s, "&") {
		return "&" + strings.TrimSpace(s[1:])
	}
	return strings.TrimSpace(colonRE.ReplaceAllString(s, ": "))
}

// Sub returns the sub-block of b with signature text sig.
func (b *Block) Sub(sig string) *Block {
	if i, ok := b.index[sig]; ok {
		return b.Subs[i]
	}
	return nil
}

// add adds s as a sub-block of b, combining it with an existing sub-block
// of the same signature.
func (b *Block) add(s *Block) {
	if b.index == nil {
		b.index = map[string]int{}
	}
	i, ok := b.index[s.Signature]
	if !ok {
		b.index[s.Signature] = len(b.Subs)
		b.Subs = append(b.Subs, s)
		return
	}
	if debug.Scan() {
		debug.Logf("combine %q from line %d into line %d\n", s.Signature, s.Line, b.Subs[i].Line)
	}
	b.Subs[i].Combine(s)
}

// Combine appends the lines of o to b and combines their sub-blocks.
func (b *Block) Combine(o *Block) {
	type pair struct{ dst, src *Block }
	work := []pair{{b, o}}
	for len(work) != 0 {
		p := work[len(work)-1]
		work = work[:len(work)-1]
		p.dst.Lines = append(p.dst.Lines, p.src.Lines...)
		for _, s := range p.src.Subs {
			if d := p.dst.Sub(s.Signature); d != nil {
				work = append(work, pair{d, s})
				continue
			}
			if p.dst.index == nil {
				p.dst.index = map[string]int{}
			}
			p.dst.index[s.Signature] = len(p.dst.Subs)
			p.dst.Subs = append(p.dst.Subs, s)
		}
	}
}

// Walk calls f on b and each of its descendants, parents first.
func (b *Block) Walk(f func(b *Block, depth int) error) error {
	type item struct {
		b     *Block
		depth int
	}
	stack := []item{{b, 0}}
	for len(stack) != 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if err := f(it.b, it.depth); err != nil {
			return err
		}
		for i := len(it.b.Subs) - 1; i >= 0; i-- {
			stack = append(stack, item{it.b.Subs[i], it.depth + 1})
		}
	}
	return nil
}

func appendNew(vs []string, v string) []string {
	for _, x := range vs {
		if x == v {
			return vs
		}
	}
	return append(vs, v)
}
