package ir

import (
	"errors"

	"github.com/signadot/dts-format/format"
)

var (
	errInternal = errors.New("internal error")

	ErrParse            = errors.New("parse error")
	ErrSignature        = errors.New("signature error")
	ErrPropertyType     = errors.New("property type error")
	ErrMergeConsistency = errors.New("merge consistency error")
	ErrBadFormat        = format.ErrBadFormat
)
