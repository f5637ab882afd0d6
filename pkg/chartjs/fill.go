package chartjs

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/raykavin/gochartjs/pkg/style"
)

// FillTarget is where a dataset's area fill extends to. Implementations are
// DatasetIndex, RelativeIndex, Boundary and AxisValue.
type FillTarget interface {
	json.Marshaler
	fillTarget()
}

// DatasetIndex fills to the dataset at an absolute index.
type DatasetIndex uint8

func (DatasetIndex) fillTarget() {}

func (i DatasetIndex) MarshalJSON() ([]byte, error) {
	return strconv.AppendUint(nil, uint64(i), 10), nil
}

// RelativeIndex fills to the dataset at an offset from this one, written as
// "-1" or "+2".
type RelativeIndex int

func (RelativeIndex) fillTarget() {}

func (i RelativeIndex) MarshalJSON() ([]byte, error) {
	return json.Marshal(fmt.Sprintf("%+d", int(i)))
}

// Boundary fills to an edge of the chart area.
type Boundary string

const (
	FillStart  Boundary = "start"
	FillEnd    Boundary = "end"
	FillOrigin Boundary = "origin"
	FillStack  Boundary = "stack"
	FillShape  Boundary = "shape"
)

func (Boundary) fillTarget() {}

func (b Boundary) MarshalJSON() ([]byte, error) {
	switch b {
	case FillStart, FillEnd, FillOrigin, FillStack, FillShape:
		return json.Marshal(string(b))
	default:
		return nil, fmt.Errorf("chartjs: unknown fill boundary %q", string(b))
	}
}

// AxisValue fills to a value on the value axis, either a number or a
// category label.
type AxisValue struct {
	number *float64
	label  string
}

// AxisNumber fills to a numeric axis value.
func AxisNumber(value float64) AxisValue {
	return AxisValue{number: &value}
}

// AxisLabel fills to a category axis label.
func AxisLabel(label string) AxisValue {
	return AxisValue{label: label}
}

func (AxisValue) fillTarget() {}

func (v AxisValue) MarshalJSON() ([]byte, error) {
	if v.number != nil {
		return json.Marshal(struct {
			Value float64 `json:"value"`
		}{*v.number})
	}
	return json.Marshal(struct {
		Value string `json:"value"`
	}{v.label})
}

// Fill configures the area under a line dataset. Above and Below colour the
// area on each side of the target.
type Fill struct {
	Target FillTarget `json:"target"`
	Above  *style.RGB `json:"above,omitempty"`
	Below  *style.RGB `json:"below,omitempty"`
}
