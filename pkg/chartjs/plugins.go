package chartjs

import "github.com/raykavin/gochartjs/pkg/style"

// ChartType is the chart.js controller used for the whole chart or for a
// single dataset.
type ChartType string

const (
	Bubble    ChartType = "bubble"
	Bar       ChartType = "bar"
	Line      ChartType = "line"
	Doughnut  ChartType = "doughnut"
	Pie       ChartType = "pie"
	Radar     ChartType = "radar"
	PolarArea ChartType = "polarArea"
	Scatter   ChartType = "scatter"
)

// Position places a title or legend around the chart area.
type Position string

const (
	Top    Position = "top"
	Left   Position = "left"
	Bottom Position = "bottom"
	Right  Position = "right"
)

// Alignment of a legend or axis title.
type Alignment string

const (
	Start  Alignment = "start"
	Center Alignment = "center"
	End    Alignment = "end"
)

// Title configures the title plugin. Text with several entries is rendered
// on several lines.
type Title struct {
	Display  bool           `json:"display"`
	FullSize bool           `json:"fullSize"`
	Text     []string       `json:"text"`
	Padding  *style.Padding `json:"padding,omitempty"`
	Position Position       `json:"position,omitempty"`
	Color    *style.RGB     `json:"color,omitempty"`
}

// Legend configures the legend plugin.
type Legend struct {
	Display  bool      `json:"display"`
	FullSize bool      `json:"fullSize"`
	Position Position  `json:"position,omitempty"`
	Align    Alignment `json:"align,omitempty"`
	Reverse  bool      `json:"reverse,omitempty"`
}

type plugins struct {
	Title  *Title  `json:"title,omitempty"`
	Legend *Legend `json:"legend,omitempty"`
}
