package axis

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrUnregistered    = errors.New("no axis strategy registered")
	ErrDuplicate       = errors.New("axis strategy already registered")
	ErrAmbiguous       = errors.New("type implements axis.Value and cannot also be registered")
	ErrNilStrategy     = errors.New("nil strategy")
	ErrUnknownCategory = errors.New("unknown axis category")
	ErrUnbound         = errors.New("value has no bound strategy")
	ErrNotFinite       = errors.New("number is not finite")
	ErrOutOfRange      = errors.New("value out of range")
	ErrInvalid         = errors.New("invalid or null value")
)

// RegistrationError reports a value type that has no classification or
// strategy, or whose registration would make resolution ambiguous.
type RegistrationError struct {
	Type reflect.Type
	Err  error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("axis: %s: %v", typeName(e.Type), e.Err)
}

func (e *RegistrationError) Unwrap() error {
	return e.Err
}

// FormatError reports a value that could not be written by its bound strategy.
type FormatError struct {
	Type  reflect.Type
	Value any
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("axis: cannot format %s value %v: %v", typeName(e.Type), e.Value, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
