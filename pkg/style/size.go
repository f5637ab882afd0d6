package style

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const sizeGrammar = "<number>% or <integer>px"

// Size is a canvas dimension, either a percentage of the container or an
// absolute number of pixels. The zero Size is 0px.
type Size struct {
	percent bool
	value   float64
}

// Pixels returns an absolute size.
func Pixels(n uint) Size {
	return Size{value: float64(n)}
}

// Percent returns a size relative to the container. It panics when p is
// negative, NaN or infinite; use NewPercent for values that are not constants.
func Percent(p float64) Size {
	s, err := NewPercent(p)
	if err != nil {
		panic(err)
	}
	return s
}

// NewPercent returns a size relative to the container, rejecting values that
// ParseSize could not read back.
func NewPercent(p float64) (Size, error) {
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
		return Size{}, fmt.Errorf("style: %w: %v", ErrPercent, p)
	}
	return Size{percent: true, value: p}, nil
}

// IsPercent reports whether s is relative.
func (s Size) IsPercent() bool {
	return s.percent
}

// Value returns the number of pixels or the percentage.
func (s Size) Value() float64 {
	return s.value
}

func (s Size) String() string {
	if s.percent {
		return strconv.FormatFloat(s.value, 'f', -1, 64) + "%"
	}
	return strconv.FormatUint(uint64(s.value), 10) + "px"
}

// MarshalText implements encoding.TextMarshaler.
func (s Size) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Size) UnmarshalText(text []byte) error {
	parsed, err := ParseSize(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSize reads "<n>%" or "<n>px".
func ParseSize(text string) (Size, error) {
	trimmed := strings.TrimSpace(text)

	if number, ok := strings.CutSuffix(trimmed, "%"); ok {
		p, err := strconv.ParseFloat(strings.TrimSpace(number), 64)
		if err != nil {
			return Size{}, &ParseError{Input: text, Grammar: sizeGrammar, Err: err}
		}
		size, err := NewPercent(p)
		if err != nil {
			return Size{}, &ParseError{Input: text, Grammar: sizeGrammar, Err: ErrPercent}
		}
		return size, nil
	}

	if number, ok := strings.CutSuffix(trimmed, "px"); ok {
		n, err := strconv.ParseUint(strings.TrimSpace(number), 10, 0)
		if err != nil {
			return Size{}, &ParseError{Input: text, Grammar: sizeGrammar, Err: err}
		}
		return Pixels(uint(n)), nil
	}

	return Size{}, &ParseError{Input: text, Grammar: sizeGrammar, Err: ErrFormat}
}
