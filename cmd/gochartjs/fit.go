package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/olekukonko/tablewriter"
	"github.com/raykavin/gochartjs/pkg/chartjs"
	"github.com/raykavin/gochartjs/pkg/regression"
	"github.com/raykavin/gochartjs/pkg/render"
	"github.com/raykavin/gochartjs/pkg/series"
	"github.com/raykavin/gochartjs/pkg/style"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
)

type fitOptions struct {
	inputFile  string
	chartFile  string
	samples    int
	confidence float64
	bins       int
}

func buildFitCmd() *cobra.Command {
	var opts fitOptions

	fitCmd := &cobra.Command{
		Use:   "fit",
		Short: "Fit a least-squares line to x,y points read from CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}

			file, err := os.Open(opts.inputFile)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", opts.inputFile, err)
			}
			defer file.Close()

			points, err := readPoints(file)
			if err != nil {
				return err
			}

			a.log.WithField("points", len(points)).Debug("points loaded")
			return a.fit(cmd.OutOrStdout(), points, opts)
		},
	}

	fitCmd.Flags().StringVarP(&opts.inputFile, "file", "f", "", "CSV file with x,y columns")
	fitCmd.Flags().StringVarP(&opts.chartFile, "chart", "o", "", "Also write the fit as an HTML chart")
	fitCmd.Flags().IntVar(&opts.samples, "samples", 10000, "Bootstrap resamples for the slope interval")
	fitCmd.Flags().Float64Var(&opts.confidence, "confidence", 0.95, "Confidence level of the slope interval")
	fitCmd.Flags().IntVar(&opts.bins, "bins", 10, "Residual histogram bins")

	_ = fitCmd.MarkFlagRequired("file")

	return fitCmd
}

// readPoints parses x,y records, skipping a header row when its first field
// is not a number.
func readPoints(r io.Reader) ([]series.Pair[float64, float64], error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	var points []series.Pair[float64, float64]
	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}

		if len(record) < 2 {
			return nil, fmt.Errorf("line %d: expected x,y but got %d field(s)", line, len(record))
		}

		x, err := strconv.ParseFloat(strings.TrimSpace(record[0]), 64)
		if err != nil {
			if line == 1 {
				continue
			}
			return nil, fmt.Errorf("line %d: invalid x %q: %w", line, record[0], err)
		}

		y, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid y %q: %w", line, record[1], err)
		}

		points = append(points, series.P(x, y))
	}

	if len(points) == 0 {
		return nil, errors.New("no points found")
	}

	return points, nil
}

func (a *app) fit(out io.Writer, points []series.Pair[float64, float64], opts fitOptions) error {
	result, err := regression.Fit(points)
	if err != nil {
		return err
	}

	buffer := bytes.NewBuffer(nil)
	table := tablewriter.NewWriter(buffer)
	table.SetHeader([]string{"Points", "Slope", "Intercept", "R²"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.Append([]string{
		strconv.Itoa(len(points)),
		fmt.Sprintf("%.4f", result.Slope),
		fmt.Sprintf("%.4f", result.Intercept),
		fmt.Sprintf("%.4f", result.RSquared),
	})
	table.Render()

	fmt.Fprintln(out, buffer.String())
	fmt.Fprintln(out, "------ RESIDUALS -------")
	if floats.Max(result.Residuals) > floats.Min(result.Residuals) {
		hist := histogram.Hist(opts.bins, result.Residuals)
		if err := histogram.Fprint(out, hist, histogram.Linear(10)); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(out, "all residuals equal %.4f\n", result.Residuals[0])
	}
	fmt.Fprintln(out)

	interval, err := regression.SlopeInterval(points, opts.samples, opts.confidence)
	if err != nil {
		a.log.WithError(err).Warn("slope interval unavailable")
	} else {
		fmt.Fprintf(out, "------ SLOPE CONFIDENCE INTERVAL (%.0f%%) -------\n", opts.confidence*100)
		fmt.Fprintf(out, "SLOPE: %.4f (%.4f ~ %.4f)\n", interval.Mean, interval.Lower, interval.Upper)
	}

	if opts.chartFile == "" {
		return nil
	}
	return a.writeFitChart(opts.chartFile, points)
}

func (a *app) writeFitChart(path string, points []series.Pair[float64, float64]) error {
	config, err := chartjs.New[float64, float64](chartjs.WithRegistry(a.registry))
	if err != nil {
		return err
	}
	config.WithTitle(path).EnableLegend()

	if err := chartjs.AddLinearRegression(config, "points", points...); err != nil {
		return err
	}

	chart, err := config.Build(style.Percent(90), style.Pixels(600))
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if err := render.Page(file, "Linear fit", chart); err != nil {
		return err
	}

	a.log.WithField("output", path).Info("fit chart written")
	return nil
}
