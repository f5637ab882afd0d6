package axis

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/exp/constraints"
)

// Strategy writes a value of type T into the JSON stream.
type Strategy[T any] func(value T, stream *jsoniter.Stream) error

// TimePolicy selects the wire form of time-like values. It is fixed when a
// Registry is built, so every time-like type in one registry agrees.
type TimePolicy int8

const (
	// RFC3339 writes instants as RFC 3339 strings with nanosecond precision.
	RFC3339 TimePolicy = iota
	// EpochMillis writes instants as integer milliseconds since the Unix epoch.
	EpochMillis
)

func (p TimePolicy) String() string {
	switch p {
	case RFC3339:
		return "rfc3339"
	case EpochMillis:
		return "epoch_millis"
	default:
		return fmt.Sprintf("TimePolicy(%d)", int8(p))
	}
}

// ParseTimePolicy accepts "rfc3339" or "epoch_millis" (case-insensitive).
func ParseTimePolicy(name string) (TimePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "rfc3339":
		return RFC3339, nil
	case "epoch_millis", "epochmillis", "millis":
		return EpochMillis, nil
	default:
		return 0, fmt.Errorf("unknown time policy %q", name)
	}
}

// Signed writes signed integers unchanged.
func Signed[T constraints.Signed]() Strategy[T] {
	return func(value T, stream *jsoniter.Stream) error {
		stream.WriteInt64(int64(value))
		return nil
	}
}

// Unsigned writes unsigned integers unchanged.
func Unsigned[T constraints.Unsigned]() Strategy[T] {
	return func(value T, stream *jsoniter.Stream) error {
		stream.WriteUint64(uint64(value))
		return nil
	}
}

// Float writes floating point values unchanged. NaN and infinities have no
// JSON form and are rejected.
func Float[T constraints.Float]() Strategy[T] {
	single := reflect.TypeFor[T]().Bits() == 32

	return func(value T, stream *jsoniter.Stream) error {
		f := float64(value)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return ErrNotFinite
		}

		if single {
			stream.WriteFloat32(float32(value))
		} else {
			stream.WriteFloat64(f)
		}
		return nil
	}
}

// Text writes string-like values unchanged.
func Text[T ~string]() Strategy[T] {
	return func(value T, stream *jsoniter.Stream) error {
		stream.WriteString(string(value))
		return nil
	}
}

// Named writes ordinal values such as weekdays or months as their name.
// Values outside [first, last] are rejected instead of leaking a
// placeholder name into a category axis.
func Named[T interface {
	~int
	fmt.Stringer
}](first, last T) Strategy[T] {
	return func(value T, stream *jsoniter.Stream) error {
		if value < first || value > last {
			return fmt.Errorf("%w: %d not in [%d, %d]", ErrOutOfRange, int(value), int(first), int(last))
		}
		stream.WriteString(value.String())
		return nil
	}
}

// Instant builds the strategy for a time-like type under the given policy.
// toTime extracts the instant and reports values that have none (NULL,
// infinite and so on).
func Instant[T any](policy TimePolicy, toTime func(T) (time.Time, error)) Strategy[T] {
	if policy == EpochMillis {
		return func(value T, stream *jsoniter.Stream) error {
			t, err := toTime(value)
			if err != nil {
				return err
			}
			stream.WriteInt64(t.UnixMilli())
			return nil
		}
	}

	return func(value T, stream *jsoniter.Stream) error {
		t, err := toTime(value)
		if err != nil {
			return err
		}

		// MarshalText rejects years outside [0, 9999]
		text, err := t.MarshalText()
		if err != nil {
			return err
		}
		stream.WriteString(string(text))
		return nil
	}
}

// Clock builds the strategy for time-of-day types, written as HH:MM:SS.
// Sub-second precision is truncated.
func Clock[T any](sinceMidnight func(T) (time.Duration, error)) Strategy[T] {
	return func(value T, stream *jsoniter.Stream) error {
		d, err := sinceMidnight(value)
		if err != nil {
			return err
		}

		text, err := formatClock(d)
		if err != nil {
			return err
		}
		stream.WriteString(text)
		return nil
	}
}

func formatClock(d time.Duration) (string, error) {
	if d < 0 || d >= 24*time.Hour {
		return "", fmt.Errorf("%w: %s is not a time of day", ErrOutOfRange, d)
	}

	seconds := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds/60%60, seconds%60), nil
}
