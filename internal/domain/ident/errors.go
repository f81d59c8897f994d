package ident

import "errors"

var (
	// ErrUnknownPrefix indicates an identifier prefix that is not registered.
	ErrUnknownPrefix = errors.New("unknown identifier prefix")
)
