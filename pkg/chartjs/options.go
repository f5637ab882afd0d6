package chartjs

import (
	"github.com/raykavin/gochartjs/pkg/axis"
	"github.com/raykavin/gochartjs/pkg/logger"
)

type settings struct {
	registry    *axis.Registry
	chartType   ChartType
	aspectRatio *float64
	autoLabels  bool
	log         logger.Logger
}

// Option configures a Config at construction.
type Option func(*settings)

// WithRegistry resolves the axis value types against r instead of
// axis.Default().
func WithRegistry(r *axis.Registry) Option {
	return func(s *settings) {
		s.registry = r
	}
}

// WithType sets the chart level type. Datasets still carry their own type.
func WithType(t ChartType) Option {
	return func(s *settings) {
		s.chartType = t
	}
}

// WithAspectRatio sets the canvas width to height ratio.
func WithAspectRatio(ratio float64) Option {
	return func(s *settings) {
		s.aspectRatio = &ratio
	}
}

// WithAutoLabels fills data.labels, and the labels of a category y axis,
// with the distinct category values of the datasets in first seen order.
func WithAutoLabels() Option {
	return func(s *settings) {
		s.autoLabels = true
	}
}

// WithLogger sets the logger.
func WithLogger(log logger.Logger) Option {
	return func(s *settings) {
		s.log = log
	}
}
