package chartjs

import (
	"encoding/json"
	"fmt"

	"github.com/StudioSol/set"
	jsoniter "github.com/json-iterator/go"
	"github.com/raykavin/gochartjs/pkg/axis"
	"github.com/raykavin/gochartjs/pkg/logger"
	"github.com/raykavin/gochartjs/pkg/render"
	"github.com/raykavin/gochartjs/pkg/series"
	"github.com/raykavin/gochartjs/pkg/style"
	"github.com/samber/lo"
)

var wire = jsoniter.ConfigCompatibleWithStandardLibrary

// Config is a chart.js configuration with X values on the horizontal axis
// and Y values on the vertical one. It is built by chaining the With, Set and
// Add methods and is not safe for concurrent use.
type Config[X, Y any] struct {
	codec       series.Codec[X, Y]
	chartType   ChartType
	aspectRatio *float64
	autoLabels  bool
	log         logger.Logger

	labels   []string
	datasets []Dataset[X, Y]
	x, y     Scale
	title    *Title
	legend   *Legend
}

// New creates an empty configuration. X and Y are resolved against the
// registry here, so an unregistered axis type fails before any data is
// added.
func New[X, Y any](options ...Option) (*Config[X, Y], error) {
	s := settings{log: logger.Nop()}
	for _, option := range options {
		option(&s)
	}

	if s.registry == nil {
		s.registry = axis.Default()
	}

	codec, err := series.NewCodec[X, Y](s.registry)
	if err != nil {
		return nil, fmt.Errorf("chartjs: %w", err)
	}

	s.log.WithFields(map[string]any{
		"x": codec.X().Category(),
		"y": codec.Y().Category(),
	}).Debug("chart config created")

	return &Config[X, Y]{
		codec:       codec,
		chartType:   s.chartType,
		aspectRatio: s.aspectRatio,
		autoLabels:  s.autoLabels,
		log:         s.log,
	}, nil
}

// MustNew is like New but panics on error.
func MustNew[X, Y any](options ...Option) *Config[X, Y] {
	c, err := New[X, Y](options...)
	if err != nil {
		panic(err)
	}
	return c
}

// Codec returns the codec series added to this config should be built with.
func (c *Config[X, Y]) Codec() series.Codec[X, Y] {
	return c.codec
}

// Datasets returns a copy of the datasets in insertion order.
func (c *Config[X, Y]) Datasets() []Dataset[X, Y] {
	return append([]Dataset[X, Y](nil), c.datasets...)
}

// WithTitle shows a title; several lines render one per line.
func (c *Config[X, Y]) WithTitle(text ...string) *Config[X, Y] {
	c.title = &Title{Display: true, Text: text}
	return c
}

// SetTitle replaces the title configuration.
func (c *Config[X, Y]) SetTitle(title Title) *Config[X, Y] {
	c.title = &title
	return c
}

// EnableLegend shows the legend with chart.js defaults.
func (c *Config[X, Y]) EnableLegend() *Config[X, Y] {
	c.legend = &Legend{Display: true}
	return c
}

// WithLegend replaces the legend configuration.
func (c *Config[X, Y]) WithLegend(legend Legend) *Config[X, Y] {
	c.legend = &legend
	return c
}

// SetXAxis configures the horizontal axis.
func (c *Config[X, Y]) SetXAxis(scale Scale) *Config[X, Y] {
	c.x = scale
	return c
}

// SetYAxis configures the vertical axis.
func (c *Config[X, Y]) SetYAxis(scale Scale) *Config[X, Y] {
	c.y = scale
	return c
}

// WithLabels sets data.labels explicitly, overriding automatic labels.
func (c *Config[X, Y]) WithLabels(labels ...string) *Config[X, Y] {
	c.labels = labels
	return c
}

// AddDataset appends a dataset. Its data must come from a codec resolved
// against the config's registry, otherwise ErrRegistry is returned and the
// config is left unchanged: one chart never mixes time policies.
func (c *Config[X, Y]) AddDataset(dataset Dataset[X, Y]) error {
	if dataset.Data != nil && dataset.Data.Registry() != c.codec.Registry() {
		return fmt.Errorf("chartjs: dataset %q: %w", dataset.Label, ErrRegistry)
	}

	c.datasets = append(c.datasets, dataset)
	return nil
}

// AddSeries appends a dataset of the given type holding s. See AddDataset.
func (c *Config[X, Y]) AddSeries(t ChartType, label string, s series.Series[X, Y]) error {
	return c.AddDataset(Dataset[X, Y]{Type: t, Label: label, Data: s})
}

// AddPairs appends a dataset of (x, y) points.
func (c *Config[X, Y]) AddPairs(t ChartType, label string, points ...series.Pair[X, Y]) *Config[X, Y] {
	return c.add(t, label, c.codec.Pairs(points...))
}

// AddRadius appends a dataset of bubble points.
func (c *Config[X, Y]) AddRadius(t ChartType, label string, points ...series.Radius[X, Y]) *Config[X, Y] {
	return c.add(t, label, c.codec.WithRadius(points...))
}

// AddTooltip appends a dataset of points carrying their own tooltip text.
func (c *Config[X, Y]) AddTooltip(t ChartType, label string, points ...series.Tooltip[X, Y]) *Config[X, Y] {
	return c.add(t, label, c.codec.WithTooltip(points...))
}

// add appends a series built from c's own codec.
func (c *Config[X, Y]) add(t ChartType, label string, s series.Series[X, Y]) *Config[X, Y] {
	c.datasets = append(c.datasets, Dataset[X, Y]{Type: t, Label: label, Data: s})
	return c
}

// CategoryLabels returns the distinct x values of every dataset, in first
// seen order, when X is a category axis type. It returns nil otherwise.
func (c *Config[X, Y]) CategoryLabels() ([]string, error) {
	if c.codec.X().Category() != axis.Categorical {
		return nil, nil
	}

	xs := lo.FlatMap(c.datasets, func(d Dataset[X, Y], _ int) []X {
		return lo.Map(xyOf(d), func(p series.Pair[X, Y], _ int) X { return p.X })
	})
	return distinctLabels(c.codec.X(), xs)
}

func (c *Config[X, Y]) yCategoryLabels() ([]string, error) {
	ys := lo.FlatMap(c.datasets, func(d Dataset[X, Y], _ int) []Y {
		return lo.Map(xyOf(d), func(p series.Pair[X, Y], _ int) Y { return p.Y })
	})
	return distinctLabels(c.codec.Y(), ys)
}

type configJSON struct {
	Type    ChartType   `json:"type,omitempty"`
	Data    dataJSON    `json:"data"`
	Options optionsJSON `json:"options"`
}

type dataJSON struct {
	Labels   []string `json:"labels,omitempty"`
	Datasets any      `json:"datasets"`
}

type optionsJSON struct {
	Scales      scalesJSON `json:"scales"`
	AspectRatio *float64   `json:"aspectRatio,omitempty"`
	Plugins     *plugins   `json:"plugins,omitempty"`
}

type scalesJSON struct {
	X Scale `json:"x"`
	Y Scale `json:"y"`
}

// MarshalJSON writes the chart.js configuration object. Axes without an
// explicit type get the category of their value type.
func (c *Config[X, Y]) MarshalJSON() ([]byte, error) {
	xScale := c.x.withDefaultType(c.codec.X().Category())
	yScale := c.y.withDefaultType(c.codec.Y().Category())

	labels := c.labels
	if c.autoLabels {
		var err error
		if labels == nil {
			if labels, err = c.CategoryLabels(); err != nil {
				return nil, fmt.Errorf("chartjs: labels: %w", err)
			}
		}

		if c.codec.Y().Category() == axis.Categorical && yScale.Labels == nil {
			if yScale.Labels, err = c.yCategoryLabels(); err != nil {
				return nil, fmt.Errorf("chartjs: y labels: %w", err)
			}
		}
	}

	// datasets are written first so that point errors keep their type
	datasets := make([]json.RawMessage, len(c.datasets))
	for i, d := range c.datasets {
		raw, err := d.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("chartjs: dataset %d %q: %w", i, d.Label, err)
		}
		datasets[i] = raw
	}

	var p *plugins
	if c.title != nil || c.legend != nil {
		p = &plugins{Title: c.title, Legend: c.legend}
	}

	data, err := wire.Marshal(configJSON{
		Type: c.chartType,
		Data: dataJSON{Labels: labels, Datasets: datasets},
		Options: optionsJSON{
			Scales:      scalesJSON{X: xScale, Y: yScale},
			AspectRatio: c.aspectRatio,
			Plugins:     p,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chartjs: %w", err)
	}
	return data, nil
}

// Build serializes the config into a chart sized width x height, ready to
// be rendered into a page.
func (c *Config[X, Y]) Build(width, height style.Size) (*render.Chart, error) {
	return render.NewChart(c, width, height)
}

func xyOf[X, Y any](d Dataset[X, Y]) []series.Pair[X, Y] {
	if d.Data == nil {
		return nil
	}
	return d.Data.XY()
}

// distinctLabels writes each value with its strategy and keeps the distinct
// texts in first seen order.
func distinctLabels[V any](binding axis.Binding[V], values []V) ([]string, error) {
	seen := set.NewLinkedHashSetString()
	for _, value := range values {
		data, err := binding.Wrap(value).MarshalJSON()
		if err != nil {
			return nil, err
		}

		var label string
		if err := wire.Unmarshal(data, &label); err != nil {
			label = string(data)
		}
		seen.Add(label)
	}

	labels := make([]string, 0, len(values))
	for label := range seen.Iter() {
		labels = append(labels, label)
	}
	return labels, nil
}
