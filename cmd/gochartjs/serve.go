package main

import (
	"context"
	"fmt"
	"io"
	"net"

	"github.com/raykavin/gochartjs/pkg/preview"
	"github.com/raykavin/gochartjs/pkg/storage"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func buildServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Store the demo gallery and serve it with live reload",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			return a.serve(cmd.Context(), cmd.ErrOrStderr())
		},
	}

	serveCmd.Flags().StringP("addr", "a", "", "Listen address (default 127.0.0.1:8080)")
	serveCmd.Flags().StringP("linger", "l", "", "Stop serving after this long (e.g. 30s, 1h, 2d)")
	serveCmd.Flags().String("store", "", "Document store driver (buntdb, sqlite)")
	serveCmd.Flags().String("store-path", "", "Document store path (default :memory:)")

	return serveCmd
}

func (a *app) serve(ctx context.Context, progress io.Writer) error {
	linger, err := a.config.LingerDuration()
	if err != nil {
		return err
	}

	store, err := a.config.OpenStore(a.log)
	if err != nil {
		return err
	}
	defer store.Close()

	server, err := preview.NewServer(store,
		preview.WithLogger(a.log),
		preview.WithHTTPServer(preview.NewStandardHTTPServer(
			preview.WithHTTPLogger(a.log),
			preview.WithOnListen(func(addr net.Addr) {
				a.log.Infof("preview available at http://%s", addr)
			}),
		)),
	)
	if err != nil {
		return err
	}
	defer server.Close()

	if err := a.publishGallery(server, progress); err != nil {
		return err
	}

	if linger > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, linger)
		defer cancel()
	}

	return server.Run(ctx, a.config.Preview.Addr)
}

func (a *app) publishGallery(server *preview.Server, progress io.Writer) error {
	charts, err := gallery(a.registry)
	if err != nil {
		return err
	}

	bar := progressbar.NewOptions(len(charts),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription("publishing charts"),
		progressbar.OptionClearOnFinish(),
	)

	for _, chart := range charts {
		config, err := chart.Config.MarshalJSON()
		if err != nil {
			return fmt.Errorf("chart %s: %w", chart.Name, err)
		}

		err = server.Publish(&storage.Document{
			Name:   chart.Name,
			Title:  chart.Title,
			Config: config,
			Width:  chart.Width,
			Height: chart.Height,
		})
		if err != nil {
			return err
		}

		_ = bar.Add(1)
	}

	return bar.Finish()
}
