package main

import (
	"context"
	"errors"
	"fmt"
	"foodwhere/internal/config"
	"foodwhere/internal/core"
	"foodwhere/internal/logger"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries what the subcommands share once the root command has set up.
type app struct {
	configFile  string
	metricsFile string
	out         io.Writer

	logger   *zap.Logger
	registry *prometheus.Registry
	svc      *core.Service
	closer   io.Closer
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "foodwhere",
		Short:         "Keep track of food stalls and your reviews of them",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd.Context())
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default ./foodwhere.yaml or $HOME/.foodwhere/foodwhere.yaml)")
	flags.StringVar(&a.metricsFile, "metrics-file", "", "write Prometheus metrics in text format to this file on exit")

	root.AddCommand(newStallCmd(a), newReviewCmd(a), newSortCmd(a), newSampleCmd(a))
	return root
}

func (a *app) open(ctx context.Context) error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	a.logger = log

	a.registry = prometheus.NewRegistry()
	metrics, err := core.NewPrometheusMetricsRecorder(a.registry)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	store, err := core.OpenSnapshotStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Storage.Driver, err)
	}
	if c, ok := store.(io.Closer); ok {
		a.closer = c
	}
	a.svc = core.NewService(store, core.WithLogger(log), core.WithMetrics(metrics))

	usedSample, err := a.svc.LoadOrSample(ctx)
	if err != nil {
		return fmt.Errorf("load address book: %w", err)
	}
	log.Debug("address book ready",
		zap.String("driver", cfg.Storage.Driver),
		zap.Bool("sample", usedSample),
		zap.Stringer("book", a.svc.Book()))
	return nil
}

func (a *app) close() error {
	var errs []error
	if a.metricsFile != "" && a.registry != nil {
		if err := prometheus.WriteToTextfile(a.metricsFile, a.registry); err != nil {
			errs = append(errs, fmt.Errorf("write metrics: %w", err))
		}
	}
	if a.closer != nil {
		if err := a.closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close store: %w", err))
		}
		a.closer = nil
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	return errors.Join(errs...)
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format+"\n", args...)
}
