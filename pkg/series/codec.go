package series

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/raykavin/gochartjs/pkg/axis"
)

// Codec holds the resolved strategies of the x and y value types. Every
// series built from one codec writes its values the same way.
type Codec[X, Y any] struct {
	registry *axis.Registry
	x        axis.Binding[X]
	y        axis.Binding[Y]
}

// NewCodec resolves X and Y against the registry. An unregistered type fails
// here, before any point is built.
func NewCodec[X, Y any](r *axis.Registry) (Codec[X, Y], error) {
	x, err := axis.Resolve[X](r)
	if err != nil {
		return Codec[X, Y]{}, fmt.Errorf("x axis: %w", err)
	}

	y, err := axis.Resolve[Y](r)
	if err != nil {
		return Codec[X, Y]{}, fmt.Errorf("y axis: %w", err)
	}

	return Codec[X, Y]{registry: r, x: x, y: y}, nil
}

// MustCodec is like NewCodec but panics on error.
func MustCodec[X, Y any](r *axis.Registry) Codec[X, Y] {
	codec, err := NewCodec[X, Y](r)
	if err != nil {
		panic(err)
	}
	return codec
}

// Registry returns the registry the codec was resolved against.
func (c Codec[X, Y]) Registry() *axis.Registry {
	return c.registry
}

// X returns the binding of the x value type.
func (c Codec[X, Y]) X() axis.Binding[X] {
	return c.x
}

// Y returns the binding of the y value type.
func (c Codec[X, Y]) Y() axis.Binding[Y] {
	return c.y
}

// Pairs builds a series of (x, y) points. Fixed size arrays can be passed as
// arr[:]...
func (c Codec[X, Y]) Pairs(points ...Pair[X, Y]) *Pairs[X, Y] {
	return &Pairs[X, Y]{codec: c, points: clone(points)}
}

// WithRadius builds a bubble series.
func (c Codec[X, Y]) WithRadius(points ...Radius[X, Y]) *WithRadius[X, Y] {
	return &WithRadius[X, Y]{codec: c, points: clone(points)}
}

// WithTooltip builds a series whose points carry tooltip text.
func (c Codec[X, Y]) WithTooltip(points ...Tooltip[X, Y]) *WithTooltip[X, Y] {
	return &WithTooltip[X, Y]{codec: c, points: clone(points)}
}

// writePoint writes {"x":..,"y":..} followed by whatever extra adds before the
// closing brace.
func (c Codec[X, Y]) writePoint(stream *jsoniter.Stream, x X, y Y, extra func()) error {
	stream.WriteObjectStart()

	stream.WriteObjectField("x")
	if err := c.x.Wrap(x).Encode(stream); err != nil {
		return err
	}

	stream.WriteMore()
	stream.WriteObjectField("y")
	if err := c.y.Wrap(y).Encode(stream); err != nil {
		return err
	}

	if extra != nil {
		stream.WriteMore()
		extra()
	}

	stream.WriteObjectEnd()
	return nil
}

func clone[P any](points []P) []P {
	return append(make([]P, 0, len(points)), points...)
}
