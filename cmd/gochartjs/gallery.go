package main

import (
	"encoding/json"
	"fmt"

	"github.com/raykavin/gochartjs/pkg/axis"
	"github.com/raykavin/gochartjs/pkg/chartjs"
	"github.com/raykavin/gochartjs/pkg/series"
	"github.com/raykavin/gochartjs/pkg/style"
)

// galleryChart is one chart of the built-in demo gallery
type galleryChart struct {
	Name   string
	Title  string
	Config json.Marshaler
	Width  style.Size
	Height style.Size
}

// gallery builds the demo charts: category axes on either side, two
// regressions and custom tooltips.
func gallery(registry *axis.Registry) ([]galleryChart, error) {
	width, height := style.Pixels(600), style.Pixels(400)

	lineAndBar, err := chartjs.New[float64, string](chartjs.WithRegistry(registry))
	if err != nil {
		return nil, err
	}
	lineAndBar.WithTitle("Line and bar").
		AddPairs(chartjs.Line, "first_set",
			series.P(12.5, "First"), series.P(14.0, "Second"), series.P(15.0, "Third"), series.P(10.0, "Fourth")).
		AddPairs(chartjs.Bar, "second_set",
			series.P(2.0, "First"), series.P(14.0, "Third"), series.P(15.0, "Third"), series.P(20.0, "First")).
		EnableLegend()

	barOnly, err := chartjs.New[float64, string](chartjs.WithRegistry(registry))
	if err != nil {
		return nil, err
	}
	// chart.js draws y category labels bottom up, so the axis is reversed
	barOnly.WithTitle("Bar only").
		AddPairs(chartjs.Bar, "second_set",
			series.P(2.0, "Second"), series.P(14.0, "Third"), series.P(15.0, "Third"), series.P(20.0, "Second")).
		EnableLegend().
		SetYAxis(chartjs.NewCategoryScale(true, "First", "Second", "Third", "Fourth"))

	categoryX, err := chartjs.New[string, float64](chartjs.WithRegistry(registry))
	if err != nil {
		return nil, err
	}
	categoryX.WithTitle("Something interesting").
		AddPairs(chartjs.Line, "first_set",
			series.P("First", 12.5), series.P("Second", 14.0), series.P("Third", 15.0), series.P("Fourth", 10.0)).
		AddPairs(chartjs.Bar, "second_set",
			series.P("First", 11.0), series.P("Second", 11.0), series.P("Third", 20.0), series.P("Fourth", 5.0)).
		AddPairs(chartjs.Line, "third_set",
			series.P("First", 2.0), series.P("Third", 14.0), series.P("Fifth", 15.0), series.P("First", 20.0)).
		EnableLegend().
		SetXAxis(chartjs.NewCategoryScale(false, "First", "Second", "Third", "Fourth"))

	numeric, err := chartjs.New[float64, float64](chartjs.WithRegistry(registry))
	if err != nil {
		return nil, err
	}
	numeric.WithTitle("Something completely different")

	xs := []float64{1, 1, 3.5, 4, 4.1, 4.1, 5, 14, 15, 20}
	if err := chartjs.AddLinearRegression(numeric, "set 2", zip(xs, []float64{1, 2, 3, 4, 1, 3, 4, 3, 1, 1})...); err != nil {
		return nil, fmt.Errorf("set 2: %w", err)
	}
	if err := chartjs.AddLinearRegression(numeric, "set 1", zip(xs, []float64{11, 20, 30, 40, 11, 35, 40, 33, 31, 11})...); err != nil {
		return nil, fmt.Errorf("set 1: %w", err)
	}

	tooltips, err := chartjs.New[float64, float64](chartjs.WithRegistry(registry))
	if err != nil {
		return nil, err
	}
	tooltips.WithTitle("Custom labels").
		AddTooltip(chartjs.Line, "first_set",
			series.T(12.5, 12.5, "tooltip1"), series.T(14.0, 14.0, "tooltip2"),
			series.T(15.0, 15.0, "tooltip3"), series.T(10.0, 10.0, "tooltip4")).
		AddPairs(chartjs.Line, "second_set", zip(xs, []float64{1, 2, 3, 4, 1, 3, 4, 3, 1, 1})...)

	return []galleryChart{
		{Name: "line-and-bar", Title: "Line and bar", Config: lineAndBar, Width: width, Height: height},
		{Name: "bar-only", Title: "Bar only", Config: barOnly, Width: width, Height: height},
		{Name: "category-x", Title: "Something interesting", Config: categoryX, Width: width, Height: height},
		{Name: "regression", Title: "Something completely different", Config: numeric, Width: width, Height: height},
		{Name: "custom-labels", Title: "Custom labels", Config: tooltips, Width: width, Height: height},
	}, nil
}

func zip(xs, ys []float64) []series.Pair[float64, float64] {
	n := min(len(xs), len(ys))
	points := make([]series.Pair[float64, float64], n)
	for i := range n {
		points[i] = series.P(xs[i], ys[i])
	}
	return points
}
