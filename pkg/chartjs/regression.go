package chartjs

import (
	"fmt"

	"github.com/raykavin/gochartjs/pkg/regression"
	"github.com/raykavin/gochartjs/pkg/series"
	"golang.org/x/exp/constraints"
)

// Float is an axis value type a regression line can be drawn over.
type Float interface {
	constraints.Float
}

// AddLinearRegression appends points as a scatter dataset followed by its
// least squares line, labelled "<label> regression(R^2 = 0.1234)". The fit
// runs first: on error c is left unchanged.
func AddLinearRegression[X, Y Float](c *Config[X, Y], label string, points ...series.Pair[X, Y]) error {
	result, err := regression.Fit(points)
	if err != nil {
		return fmt.Errorf("chartjs: regression %q: %w", label, err)
	}

	fitted := result.Fitted.Points()
	line := make([]series.Pair[X, Y], len(points))
	for i, p := range points {
		line[i] = series.P(p.X, Y(fitted[i].Y))
	}

	c.log.WithFields(map[string]any{
		"label":     label,
		"slope":     result.Slope,
		"intercept": result.Intercept,
		"r2":        result.RSquared,
	}).Debug("regression fitted")

	c.AddPairs(Scatter, label, points...).
		AddPairs(Line, fmt.Sprintf("%s regression(R^2 = %.4f)", label, result.RSquared), line...)

	return nil
}
