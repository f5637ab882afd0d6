package series

import (
	"encoding/json"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/raykavin/gochartjs/pkg/axis"
	"github.com/samber/lo"
)

// Series is the ordered data of one dataset. The set of implementations is
// closed: *Pairs, *WithRadius and *WithTooltip.
//
// A series is never mutated once built. Append returns a new series.
type Series[X, Y any] interface {
	json.Marshaler

	// Kind reports the point shape.
	Kind() Kind
	// Len returns the number of points.
	Len() int
	// XY returns the (x, y) view of every point in order. Radius and tooltip
	// values are dropped.
	XY() []Pair[X, Y]
	// Encode writes the point array into stream.
	Encode(stream *jsoniter.Stream) error
	// Registry returns the registry whose strategies write the points.
	Registry() *axis.Registry

	series()
}

var (
	_ Series[float64, string] = (*Pairs[float64, string])(nil)
	_ Series[float64, string] = (*WithRadius[float64, string])(nil)
	_ Series[float64, string] = (*WithTooltip[float64, string])(nil)
)

// Pairs is a series of plain (x, y) points.
type Pairs[X, Y any] struct {
	codec  Codec[X, Y]
	points []Pair[X, Y]
}

func (*Pairs[X, Y]) series() {}

func (s *Pairs[X, Y]) Kind() Kind { return KindPairs }

func (s *Pairs[X, Y]) Len() int { return len(s.points) }

func (s *Pairs[X, Y]) Registry() *axis.Registry { return s.codec.registry }

// Points returns a copy of the points.
func (s *Pairs[X, Y]) Points() []Pair[X, Y] {
	return clone(s.points)
}

func (s *Pairs[X, Y]) XY() []Pair[X, Y] {
	return clone(s.points)
}

// Append returns a new series holding s's points followed by points.
func (s *Pairs[X, Y]) Append(points ...Pair[X, Y]) *Pairs[X, Y] {
	return s.codec.Pairs(append(clone(s.points), points...)...)
}

func (s *Pairs[X, Y]) Encode(stream *jsoniter.Stream) error {
	return encodeAll(stream, s.points, func(p Pair[X, Y]) error {
		return s.codec.writePoint(stream, p.X, p.Y, nil)
	})
}

func (s *Pairs[X, Y]) MarshalJSON() ([]byte, error) {
	return axis.Encode(s.Encode)
}

// WithRadius is a bubble series.
type WithRadius[X, Y any] struct {
	codec  Codec[X, Y]
	points []Radius[X, Y]
}

func (*WithRadius[X, Y]) series() {}

func (s *WithRadius[X, Y]) Kind() Kind { return KindRadius }

func (s *WithRadius[X, Y]) Len() int { return len(s.points) }

func (s *WithRadius[X, Y]) Registry() *axis.Registry { return s.codec.registry }

// Points returns a copy of the points.
func (s *WithRadius[X, Y]) Points() []Radius[X, Y] {
	return clone(s.points)
}

func (s *WithRadius[X, Y]) XY() []Pair[X, Y] {
	return lo.Map(s.points, func(p Radius[X, Y], _ int) Pair[X, Y] {
		return P(p.X, p.Y)
	})
}

// Append returns a new series holding s's points followed by points.
func (s *WithRadius[X, Y]) Append(points ...Radius[X, Y]) *WithRadius[X, Y] {
	return s.codec.WithRadius(append(clone(s.points), points...)...)
}

func (s *WithRadius[X, Y]) Encode(stream *jsoniter.Stream) error {
	return encodeAll(stream, s.points, func(p Radius[X, Y]) error {
		return s.codec.writePoint(stream, p.X, p.Y, func() {
			stream.WriteObjectField("r")
			stream.WriteUint32(p.R)
		})
	})
}

func (s *WithRadius[X, Y]) MarshalJSON() ([]byte, error) {
	return axis.Encode(s.Encode)
}

// WithTooltip is a series whose points carry their own tooltip text.
type WithTooltip[X, Y any] struct {
	codec  Codec[X, Y]
	points []Tooltip[X, Y]
}

func (*WithTooltip[X, Y]) series() {}

func (s *WithTooltip[X, Y]) Kind() Kind { return KindTooltip }

func (s *WithTooltip[X, Y]) Len() int { return len(s.points) }

func (s *WithTooltip[X, Y]) Registry() *axis.Registry { return s.codec.registry }

// Points returns a copy of the points.
func (s *WithTooltip[X, Y]) Points() []Tooltip[X, Y] {
	return clone(s.points)
}

func (s *WithTooltip[X, Y]) XY() []Pair[X, Y] {
	return lo.Map(s.points, func(p Tooltip[X, Y], _ int) Pair[X, Y] {
		return P(p.X, p.Y)
	})
}

// Append returns a new series holding s's points followed by points.
func (s *WithTooltip[X, Y]) Append(points ...Tooltip[X, Y]) *WithTooltip[X, Y] {
	return s.codec.WithTooltip(append(clone(s.points), points...)...)
}

func (s *WithTooltip[X, Y]) Encode(stream *jsoniter.Stream) error {
	return encodeAll(stream, s.points, func(p Tooltip[X, Y]) error {
		return s.codec.writePoint(stream, p.X, p.Y, func() {
			stream.WriteObjectField("tooltip")
			stream.WriteString(p.Tooltip)
		})
	})
}

func (s *WithTooltip[X, Y]) MarshalJSON() ([]byte, error) {
	return axis.Encode(s.Encode)
}

func encodeAll[P any](stream *jsoniter.Stream, points []P, write func(P) error) error {
	stream.WriteArrayStart()
	for i, point := range points {
		if i > 0 {
			stream.WriteMore()
		}
		if err := write(point); err != nil {
			return fmt.Errorf("point %d: %w", i, err)
		}
	}
	stream.WriteArrayEnd()
	return nil
}
