package ir

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// UnitAddress is the "@addr" suffix of a node name.  Addresses which parse
// as hexadecimal numbers are kept as integers and rendered in canonical
// lower case hex; anything else ("1,0", "fe:ed") is kept verbatim.
type UnitAddress struct {
	Text  string
	Value uint64
	IsInt bool
}

func ParseUnitAddress(v string) *UnitAddress {
	h := strings.TrimPrefix(strings.TrimPrefix(v, "0x"), "0X")
	if n, err := strconv.ParseUint(h, 16, 64); err == nil && h != "" {
		return &UnitAddress{Text: v, Value: n, IsInt: true}
	}
	return &UnitAddress{Text: v}
}

func IntUnitAddress(v uint64) *UnitAddress {
	return &UnitAddress{Text: strconv.FormatUint(v, 16), Value: v, IsInt: true}
}

func (a *UnitAddress) String() string {
	if a == nil {
		return ""
	}
	if a.IsInt {
		return strconv.FormatUint(a.Value, 16)
	}
	return a.Text
}

func (a *UnitAddress) Equal(o *UnitAddress) bool {
	if a == nil || o == nil {
		return a == o
	}
	return a.String() == o.String()
}

func (a *UnitAddress) Clone() *UnitAddress {
	if a == nil {
		return nil
	}
	res := *a
	return &res
}

// Signature is the header of a node block: either a back-reference
// ("&label") or an optional label list, a node name and an optional unit
// address.  An empty string means the field is absent.
type Signature struct {
	Name    string
	Labels  []string
	Ref     string
	Address *UnitAddress
}

// Validate checks the structural invariants of a signature.
func (s *Signature) Validate() error {
	switch {
	case s.Name == "" && s.Ref == "":
		return fmt.Errorf("%w: no signature provided", ErrSignature)
	case s.Name != "" && s.Ref != "":
		return fmt.Errorf("%w: ambiguous signature: &%s, %s", ErrSignature, s.Ref, s.Name)
	case s.Name != "" && strings.TrimSpace(s.Name) == "":
		return fmt.Errorf("%w: blank node name", ErrSignature)
	case s.Ref != "" && strings.TrimSpace(s.Ref) == "":
		return fmt.Errorf("%w: blank reference", ErrSignature)
	case s.Name == "" && len(s.Labels) > 0:
		return fmt.Errorf("%w: labels %v not associated with a node name", ErrSignature, s.Labels)
	case s.Ref != "" && s.Address != nil:
		return fmt.Errorf("%w: reference &%s cannot have a unit address", ErrSignature, s.Ref)
	}
	for _, l := range s.Labels {
		if strings.TrimSpace(l) == "" {
			return fmt.Errorf("%w: blank label", ErrSignature)
		}
	}
	return nil
}

// PathName returns name[@addr], or "" for reference signatures.
func (s *Signature) PathName() string {
	if s.Name == "" {
		return ""
	}
	if s.Address == nil {
		return s.Name
	}
	return s.Name + "@" + s.Address.String()
}

// String renders the canonical signature text.
func (s *Signature) String() string {
	if s.Ref != "" {
		return "&" + s.Ref
	}
	if len(s.Labels) == 0 {
		return s.PathName()
	}
	return strings.Join(s.Labels, ": ") + ": " + s.PathName()
}

func (s *Signature) Clone() Signature {
	return Signature{
		Name:    s.Name,
		Labels:  slices.Clone(s.Labels),
		Ref:     s.Ref,
		Address: s.Address.Clone(),
	}
}

// AddLabels appends labels not already present, keeping order.
func (s *Signature) AddLabels(labels ...string) {
	for _, l := range labels {
		if !slices.Contains(s.Labels, l) {
			s.Labels = append(s.Labels, l)
		}
	}
}

// IsPathRef reports whether the back-reference is of the "&{/path}" form.
func (s *Signature) IsPathRef() bool {
	return strings.HasPrefix(s.Ref, "{") && strings.HasSuffix(s.Ref, "}")
}
