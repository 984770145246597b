package parse

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/signadot/dts-format/ir"
)

var (
	labelRE   = regexp.MustCompile(`^[A-Za-z_][\w]*$`)
	nodeRE    = regexp.MustCompile(`^[\w,.+-]+$`)
	addrRE    = regexp.MustCompile(`^[\w,.+-]+$`)
	pathRefRE = regexp.MustCompile(`^\{/[^{}]*\}$`)
)

// ParseSignature parses node header text: "&label", "&{/path}", or zero
// or more "label:" prefixes followed by a node name with an optional
// "@address".  Structural problems (blank parts, labels without a name)
// are ErrSignature, malformed identifiers are ErrParse.
func ParseSignature(text string) (ir.Signature, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return ir.Signature{}, fmt.Errorf("%w: missing node signature", ErrSignature)
	}
	if ref, ok := strings.CutPrefix(s, "&"); ok {
		ref = strings.TrimSpace(ref)
		sig := ir.Signature{Ref: ref}
		if err := sig.Validate(); err != nil {
			return ir.Signature{}, err
		}
		if !labelRE.MatchString(ref) && !pathRefRE.MatchString(ref) {
			return ir.Signature{}, fmt.Errorf("%w: bad reference %q", ErrParse, s)
		}
		return sig, nil
	}
	parts := strings.Split(s, ":")
	head := strings.TrimSpace(parts[len(parts)-1])
	sig := ir.Signature{}
	for _, l := range parts[:len(parts)-1] {
		l = strings.TrimSpace(l)
		if l == "" {
			return ir.Signature{}, fmt.Errorf("%w: blank label in %q", ErrSignature, s)
		}
		if !labelRE.MatchString(l) {
			return ir.Signature{}, fmt.Errorf("%w: bad label %q in %q", ErrParse, l, s)
		}
		sig.AddLabels(l)
	}
	if head == "/" {
		sig.Name = head
		return sig, sig.Validate()
	}
	name, addr, hasAddr := strings.Cut(head, "@")
	sig.Name = strings.TrimSpace(name)
	if sig.Name == "" {
		if len(sig.Labels) != 0 {
			return ir.Signature{}, fmt.Errorf("%w: labels %v not associated with a node name", ErrSignature, sig.Labels)
		}
		return ir.Signature{}, fmt.Errorf("%w: blank node name in %q", ErrSignature, s)
	}
	if !nodeRE.MatchString(sig.Name) {
		return ir.Signature{}, fmt.Errorf("%w: bad node name %q", ErrParse, sig.Name)
	}
	if hasAddr {
		addr = strings.TrimSpace(addr)
		if !addrRE.MatchString(addr) {
			return ir.Signature{}, fmt.Errorf("%w: bad unit address %q", ErrParse, addr)
		}
		sig.Address = ir.ParseUnitAddress(addr)
	}
	if err := sig.Validate(); err != nil {
		return ir.Signature{}, err
	}
	return sig, nil
}
