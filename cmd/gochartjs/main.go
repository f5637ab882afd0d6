package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/raykavin/gochartjs/pkg/axis"
	"github.com/raykavin/gochartjs/pkg/logger"
	"github.com/spf13/cobra"
)

// Command line flags
var (
	configFile string
)

// app carries what every command needs once configuration is loaded
type app struct {
	config   *AppConfig
	log      logger.Logger
	registry *axis.Registry
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "gochartjs",
		Short:         "Build, render and preview chart.js charts",
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configFile, "config", "c", "", "YAML configuration file")
	flags.String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	flags.Bool("log-json", false, "Write logs as JSON lines")
	flags.Bool("log-colored", true, "Colourise console logs")
	flags.String("time-policy", axis.RFC3339.String(), "Wire form of time values (rfc3339, epoch_millis)")

	rootCmd.AddCommand(buildRenderCmd())
	rootCmd.AddCommand(buildServeCmd())
	rootCmd.AddCommand(buildFitCmd())

	return rootCmd
}

// setup loads configuration and builds the logger and axis registry.
func setup(cmd *cobra.Command) (*app, error) {
	config, err := LoadAppConfig(configFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	log, err := config.Logger()
	if err != nil {
		return nil, err
	}

	registry, err := config.Registry(log)
	if err != nil {
		return nil, err
	}

	return &app{config: config, log: log, registry: registry}, nil
}
