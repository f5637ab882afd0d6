package chartjs

import (
	"github.com/AlekSi/pointer"
	"github.com/raykavin/gochartjs/pkg/axis"
)

// Scale configures one axis. Nil fields keep the chart.js default; a nil
// Type is filled from the axis value type when the config is serialized.
type Scale struct {
	Type          *axis.Category `json:"type,omitempty"`
	AlignToPixels *bool          `json:"alignToPixels,omitempty"`
	Reverse       *bool          `json:"reverse,omitempty"`
	Min           *float64       `json:"min,omitempty"`
	Max           *float64       `json:"max,omitempty"`
	Stacked       *bool          `json:"stacked,omitempty"`
	Labels        []string       `json:"labels,omitempty"`
	Title         *AxisTitle     `json:"title,omitempty"`
}

// AxisTitle is the caption drawn along an axis.
type AxisTitle struct {
	Display bool      `json:"display"`
	Text    string    `json:"text"`
	Align   Alignment `json:"align,omitempty"`
}

// NewCategoryScale returns a category axis with a fixed label order.
// chart.js draws the first label of a vertical category axis at the
// bottom; pass reverse to list them top down.
func NewCategoryScale(reverse bool, labels ...string) Scale {
	return Scale{
		Type:    pointer.To(axis.Categorical),
		Reverse: pointer.To(reverse),
		Labels:  labels,
	}
}

// NewScale returns a scale of the given category.
func NewScale(category axis.Category) Scale {
	return Scale{Type: pointer.To(category)}
}

// WithRange bounds the axis.
func (s Scale) WithRange(lower, upper float64) Scale {
	s.Min, s.Max = pointer.To(lower), pointer.To(upper)
	return s
}

// WithTitle captions the axis.
func (s Scale) WithTitle(text string) Scale {
	s.Title = &AxisTitle{Display: true, Text: text}
	return s
}

// withDefaultType fills Type when it is unset.
func (s Scale) withDefaultType(category axis.Category) Scale {
	if s.Type == nil {
		s.Type = pointer.To(category)
	}
	return s
}
