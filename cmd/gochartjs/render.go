package main

import (
	"fmt"
	"io"
	"os"

	"github.com/raykavin/gochartjs/pkg/render"
	"github.com/spf13/cobra"
)

func buildRenderCmd() *cobra.Command {
	var (
		outputFile string
		title      string
		debug      bool
	)

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Render the demo gallery into a standalone HTML page",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if outputFile != "" && outputFile != "-" {
				file, err := os.Create(outputFile)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", outputFile, err)
				}
				defer file.Close()
				out = file
			}

			if err := a.renderGallery(out, title, debug); err != nil {
				return err
			}

			a.log.WithField("output", outputFile).Info("gallery rendered")
			return nil
		},
	}

	renderCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path (default stdout)")
	renderCmd.Flags().StringVarP(&title, "title", "t", "Charts", "Page title")
	renderCmd.Flags().BoolVar(&debug, "debug", false, "Embed the unminified page script")

	return renderCmd
}

func (a *app) renderGallery(w io.Writer, title string, debug bool) error {
	charts, err := gallery(a.registry)
	if err != nil {
		return err
	}

	options := []render.Option{render.WithLogger(a.log)}
	if debug {
		options = append(options, render.WithDebug())
	}

	renderer, err := render.NewRenderer(options...)
	if err != nil {
		return err
	}

	page := make([]*render.Chart, 0, len(charts))
	for _, chart := range charts {
		built, err := render.NewChart(chart.Config, chart.Width, chart.Height)
		if err != nil {
			return fmt.Errorf("chart %s: %w", chart.Name, err)
		}
		page = append(page, built)
	}

	return renderer.Page(w, title, page...)
}
