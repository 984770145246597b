package ir

import "fmt"

// Type identifies the variant held by a Property.
type Type int

const (
	BoolType Type = iota
	IntType
	StringType
	TupleType
	IntListType
	StringListType
	TupleListType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		BoolType:       "Bool",
		IntType:        "Int",
		StringType:     "String",
		TupleType:      "Tuple",
		IntListType:    "IntList",
		StringListType: "StringList",
		TupleListType:  "TupleList",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"Bool":       BoolType,
		"Int":        IntType,
		"String":     StringType,
		"Tuple":      TupleType,
		"IntList":    IntListType,
		"StringList": StringListType,
		"TupleList":  TupleListType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

// IsList reports whether t is one of the list variants.
func (t Type) IsList() bool {
	switch t {
	case IntListType, StringListType, TupleListType:
		return true
	}
	return false
}

// Elem returns the scalar type of a list variant's elements, or t itself
// for scalar variants.
func (t Type) Elem() Type {
	switch t {
	case IntListType:
		return IntType
	case StringListType:
		return StringType
	case TupleListType:
		return TupleType
	}
	return t
}

// ListOf returns the list variant whose elements have type t.
func ListOf(t Type) (Type, bool) {
	switch t {
	case IntType:
		return IntListType, true
	case StringType:
		return StringListType, true
	case TupleType:
		return TupleListType, true
	}
	return t, false
}

func Types() []Type {
	return []Type{
		BoolType,
		IntType,
		StringType,
		TupleType,
		IntListType,
		StringListType,
		TupleListType,
	}
}
