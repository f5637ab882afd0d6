package chartjs

import (
	"encoding/json"

	"github.com/raykavin/gochartjs/pkg/series"
	"github.com/raykavin/gochartjs/pkg/style"
)

// Dataset is one plotted series with its presentation. Nil fields keep the
// chart.js default.
type Dataset[X, Y any] struct {
	Type            ChartType
	Label           string
	Data            series.Series[X, Y]
	Fill            *Fill
	BorderColor     *style.RGB
	BackgroundColor *style.RGB
	BorderWidth     *float64
	PointRadius     *float64
	Tension         *float64
	Hidden          bool
}

var emptyData = json.RawMessage("[]")

// MarshalJSON writes the dataset. Point errors are returned as they are, so
// a *axis.FormatError stays reachable with errors.As.
func (d Dataset[X, Y]) MarshalJSON() ([]byte, error) {
	data := emptyData
	if d.Data != nil {
		var err error
		if data, err = d.Data.MarshalJSON(); err != nil {
			return nil, err
		}
	}

	return wire.Marshal(struct {
		Type            ChartType       `json:"type"`
		Label           string          `json:"label"`
		Data            json.RawMessage `json:"data"`
		Fill            *Fill           `json:"fill,omitempty"`
		BorderColor     *style.RGB      `json:"borderColor,omitempty"`
		BackgroundColor *style.RGB      `json:"backgroundColor,omitempty"`
		BorderWidth     *float64        `json:"borderWidth,omitempty"`
		PointRadius     *float64        `json:"pointRadius,omitempty"`
		Tension         *float64        `json:"tension,omitempty"`
		Hidden          bool            `json:"hidden,omitempty"`
	}{
		Type:            d.Type,
		Label:           d.Label,
		Data:            data,
		Fill:            d.Fill,
		BorderColor:     d.BorderColor,
		BackgroundColor: d.BackgroundColor,
		BorderWidth:     d.BorderWidth,
		PointRadius:     d.PointRadius,
		Tension:         d.Tension,
		Hidden:          d.Hidden,
	})
}
