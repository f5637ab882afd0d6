package series

import "fmt"

// Kind identifies which point shape a series holds.
type Kind int8

const (
	KindPairs Kind = iota
	KindRadius
	KindTooltip
)

func (k Kind) String() string {
	switch k {
	case KindPairs:
		return "pairs"
	case KindRadius:
		return "radius"
	case KindTooltip:
		return "tooltip"
	default:
		return fmt.Sprintf("Kind(%d)", int8(k))
	}
}

// Pair is a plain (x, y) point.
type Pair[X, Y any] struct {
	X X
	Y Y
}

// Radius is a bubble point. R is the bubble radius in pixels.
type Radius[X, Y any] struct {
	X X
	Y Y
	R uint32
}

// Tooltip is a point carrying its own tooltip text.
type Tooltip[X, Y any] struct {
	X       X
	Y       Y
	Tooltip string
}

// P builds a Pair.
func P[X, Y any](x X, y Y) Pair[X, Y] {
	return Pair[X, Y]{X: x, Y: y}
}

// R builds a Radius point.
func R[X, Y any](x X, y Y, r uint32) Radius[X, Y] {
	return Radius[X, Y]{X: x, Y: y, R: r}
}

// T builds a Tooltip point.
func T[X, Y any](x X, y Y, tooltip string) Tooltip[X, Y] {
	return Tooltip[X, Y]{X: x, Y: y, Tooltip: tooltip}
}
