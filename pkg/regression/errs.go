package regression

import (
	"errors"
	"fmt"
)

var (
	ErrSingular  = errors.New("design matrix is singular")
	ErrNonFinite = errors.New("non-finite value")
)

// NumericError reports a fit that could not be computed.
type NumericError struct {
	Op  string
	Err error
}

func (e *NumericError) Error() string {
	return fmt.Sprintf("regression: %s: %v", e.Op, e.Err)
}

func (e *NumericError) Unwrap() error {
	return e.Err
}
