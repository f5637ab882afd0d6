package axis

import (
	"fmt"
	"strings"
)

// Category is the chart.js scale kind an axis is configured with. Every
// registered value type maps to exactly one Category.
type Category int8

const (
	Linear Category = iota
	Logarithmic
	Categorical
	Time
	TimeSeries
	RadialLinear
)

// scale ids as chart.js expects them in options.scales[].type
var categoryNames = map[Category]string{
	Linear:       "linear",
	Logarithmic:  "logarithmic",
	Categorical:  "category",
	Time:         "time",
	TimeSeries:   "timeseries",
	RadialLinear: "radialLinear",
}

// String returns the chart.js scale id.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Category(%d)", int8(c))
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

// ParseCategory converts a chart.js scale id into a Category, ignoring case.
func ParseCategory(name string) (Category, error) {
	for category, id := range categoryNames {
		if strings.EqualFold(id, name) {
			return category, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, int8(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	category, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = category
	return nil
}
