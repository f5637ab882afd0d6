package axis

import (
	"time"

	jsoniter "github.com/json-iterator/go"
)

// TimeOfDay is a wall clock reading without a date. It is a category axis
// value written as HH:MM:SS.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// ClockOf returns the time of day of t in its own location.
func ClockOf(t time.Time) TimeOfDay {
	hour, minute, second := t.Clock()
	return TimeOfDay{Hour: hour, Minute: minute, Second: second}
}

// SinceMidnight returns the elapsed duration since 00:00:00.
func (c TimeOfDay) SinceMidnight() time.Duration {
	return time.Duration(c.Hour)*time.Hour +
		time.Duration(c.Minute)*time.Minute +
		time.Duration(c.Second)*time.Second
}

// AxisCategory implements Value.
func (TimeOfDay) AxisCategory() Category {
	return Categorical
}

// WriteAxisValue implements Value.
func (c TimeOfDay) WriteAxisValue(stream *jsoniter.Stream, _ TimePolicy) error {
	if c.Minute < 0 || c.Minute > 59 || c.Second < 0 || c.Second > 59 {
		return ErrOutOfRange
	}

	text, err := formatClock(c.SinceMidnight())
	if err != nil {
		return err
	}

	stream.WriteString(text)
	return nil
}
