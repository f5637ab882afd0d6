package style

import (
	"fmt"
	"strconv"
	"strings"
)

const rgbGrammar = "rgb(<0-255>, <0-255>, <0-255>)"

// RGB is an opaque colour, written as "rgb(r, g, b)".
type RGB struct {
	R, G, B uint8
}

// Common colours.
var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
	Red   = RGB{255, 0, 0}
	Green = RGB{0, 128, 0}
	Blue  = RGB{0, 0, 255}
)

func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// MarshalText implements encoding.TextMarshaler.
func (c RGB) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *RGB) UnmarshalText(text []byte) error {
	parsed, err := ParseRGB(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseRGB reads "rgb(r, g, b)". Whitespace around the whole value and
// around each component is ignored.
func ParseRGB(text string) (RGB, error) {
	fail := func(err error) (RGB, error) {
		return RGB{}, &ParseError{Input: text, Grammar: rgbGrammar, Err: err}
	}

	body, ok := strings.CutPrefix(strings.TrimSpace(text), "rgb(")
	if !ok {
		return fail(ErrFormat)
	}
	body, ok = strings.CutSuffix(body, ")")
	if !ok {
		return fail(ErrFormat)
	}

	parts := strings.Split(body, ",")
	if len(parts) != 3 {
		return fail(ErrComponents)
	}

	var components [3]uint8
	for i, part := range parts {
		value, err := strconv.ParseUint(strings.TrimSpace(part), 10, 8)
		if err != nil {
			return fail(err)
		}
		components[i] = uint8(value)
	}

	return RGB{R: components[0], G: components[1], B: components[2]}, nil
}
