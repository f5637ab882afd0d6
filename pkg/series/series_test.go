package series

import (
	"math"
	"testing"
	"time"

	"github.com/raykavin/gochartjs/pkg/axis"
	"github.com/stretchr/testify/require"
)

func TestPairs_JSON(t *testing.T) {
	codec := MustCodec[float64, string](axis.NewRegistry())

	data, err := codec.Pairs(P(12.5, "First"), P(14.0, "Second")).MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `[{"x":12.5,"y":"First"},{"x":14,"y":"Second"}]`, string(data))
}

func TestWithRadius_JSON(t *testing.T) {
	codec := MustCodec[int, float64](axis.NewRegistry())

	data, err := codec.WithRadius(R(1, 2.5, 10), R(3, -4.0, 0)).MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `[{"x":1,"y":2.5,"r":10},{"x":3,"y":-4,"r":0}]`, string(data))
}

func TestWithTooltip_JSON(t *testing.T) {
	codec := MustCodec[time.Weekday, uint8](axis.NewRegistry())

	data, err := codec.WithTooltip(T(time.Monday, uint8(3), "three \"reps\"")).MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `[{"x":"Monday","y":3,"tooltip":"three \"reps\""}]`, string(data))
}

func TestSeries_Empty(t *testing.T) {
	codec := MustCodec[float64, float64](axis.NewRegistry())

	for _, s := range []Series[float64, float64]{
		codec.Pairs(),
		codec.WithRadius(),
		codec.WithTooltip(),
	} {
		data, err := s.MarshalJSON()
		require.NoError(t, err)
		require.Equal(t, "[]", string(data))
		require.Zero(t, s.Len())
		require.Empty(t, s.XY())
	}
}

func TestSeries_XYRoundTrip(t *testing.T) {
	codec := MustCodec[time.Time, float64](axis.NewRegistry())
	day := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)

	pairs := []Pair[time.Time, float64]{
		P(day, 1.5),
		P(day.Add(48*time.Hour), -2.0),
		P(day.Add(24*time.Hour), 0.0),
	}

	variants := []Series[time.Time, float64]{
		codec.Pairs(pairs...),
		codec.WithRadius(R(pairs[0].X, pairs[0].Y, 4), R(pairs[1].X, pairs[1].Y, 8), R(pairs[2].X, pairs[2].Y, 2)),
		codec.WithTooltip(T(pairs[0].X, pairs[0].Y, "a"), T(pairs[1].X, pairs[1].Y, "b"), T(pairs[2].X, pairs[2].Y, "c")),
	}

	for _, s := range variants {
		t.Run(s.Kind().String(), func(t *testing.T) {
			require.Equal(t, pairs, s.XY())

			rebuilt := codec.Pairs(s.XY()...)
			require.Equal(t, pairs, rebuilt.Points())

			want, err := codec.Pairs(pairs...).MarshalJSON()
			require.NoError(t, err)
			got, err := rebuilt.MarshalJSON()
			require.NoError(t, err)
			require.Equal(t, string(want), string(got))
		})
	}
}

func TestSeries_Immutable(t *testing.T) {
	codec := MustCodec[int, int](axis.NewRegistry())

	points := [3]Pair[int, int]{P(1, 1), P(2, 4), P(3, 9)}
	s := codec.Pairs(points[:]...)

	points[0] = P(100, 100)
	require.Equal(t, P(1, 1), s.Points()[0])

	s.Points()[1] = P(-1, -1)
	require.Equal(t, P(2, 4), s.Points()[1])

	longer := s.Append(P(4, 16))
	require.Equal(t, 3, s.Len())
	require.Equal(t, 4, longer.Len())
	require.Equal(t, P(4, 16), longer.Points()[3])
}

func TestSeries_FormatErrorPropagates(t *testing.T) {
	codec := MustCodec[float64, float64](axis.NewRegistry())

	_, err := codec.Pairs(P(1.0, 2.0), P(math.NaN(), 3.0)).MarshalJSON()

	var formatErr *axis.FormatError
	require.ErrorAs(t, err, &formatErr)
	require.ErrorIs(t, err, axis.ErrNotFinite)
	require.Contains(t, err.Error(), "point 1")
}

func TestNewCodec_Unregistered(t *testing.T) {
	type opaque struct{}

	_, err := NewCodec[float64, opaque](axis.NewRegistry())

	var regErr *axis.RegistrationError
	require.ErrorAs(t, err, &regErr)
	require.ErrorIs(t, err, axis.ErrUnregistered)
	require.Contains(t, err.Error(), "y axis")
}

func TestCodec_Bindings(t *testing.T) {
	codec := MustCodec[string, time.Time](axis.NewRegistry(axis.WithTimePolicy(axis.EpochMillis)))

	require.Equal(t, axis.Categorical, codec.X().Category())
	require.Equal(t, axis.Time, codec.Y().Category())

	data, err := codec.Pairs(P("start", time.UnixMilli(1700000000123))).MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `[{"x":"start","y":1700000000123}]`, string(data))
}
