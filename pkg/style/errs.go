package style

import (
	"errors"
	"fmt"
)

var (
	ErrComponents = errors.New("expected three components")
	ErrFormat     = errors.New("invalid format")
	ErrPercent    = errors.New("percentage must be finite and not negative")
)

// ParseError reports text that does not follow the expected grammar.
type ParseError struct {
	Input   string
	Grammar string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("style: cannot parse %q as %s: %v", e.Input, e.Grammar, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
