package style

import "github.com/AlekSi/pointer"

// Padding around a title or legend, in pixels. Unset sides keep the chart.js
// default.
type Padding struct {
	Top    *float64 `json:"top,omitempty"`
	Bottom *float64 `json:"bottom,omitempty"`
	Left   *float64 `json:"left,omitempty"`
	Right  *float64 `json:"right,omitempty"`
}

// Vertical pads top and bottom only, the sides chart.js honours for titles.
func Vertical(top, bottom float64) *Padding {
	return &Padding{Top: pointer.To(top), Bottom: pointer.To(bottom)}
}

// Uniform pads every side by the same amount.
func Uniform(pixels float64) *Padding {
	return &Padding{
		Top:    pointer.To(pixels),
		Bottom: pointer.To(pixels),
		Left:   pointer.To(pixels),
		Right:  pointer.To(pixels),
	}
}
