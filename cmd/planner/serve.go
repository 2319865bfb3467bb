package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/garden-planner-service/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/garden-planner-service/internal/adapter/kafka"
	"github.com/couchcryptid/garden-planner-service/internal/composer"
	"github.com/couchcryptid/garden-planner-service/internal/config"
	"github.com/couchcryptid/garden-planner-service/internal/observability"
	"github.com/couchcryptid/garden-planner-service/internal/pipeline"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and, when PIPELINE_ENABLED, the Kafka plan pipeline",
	Long:  "Loads configuration from the environment, validates the reference tables, then serves /v1 plan and advisory routes alongside health, readiness and metrics endpoints until SIGINT or SIGTERM.",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	tables, err := loadTables(cfg.ReferenceDataDir)
	if err != nil {
		logger.Error("reference tables rejected", "error", err)
		return err
	}

	comp := composer.New(tables, composer.Options{
		MinPerBucket:      cfg.PlanMinPerBucket,
		AdvisoryCacheSize: cfg.AdvisoryCacheSize,
	}, logger, metrics)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var ready httpadapter.ReadinessGroup
	var runPipeline func(context.Context) error
	if cfg.PipelineEnabled {
		reader := kafkaadapter.NewReader(cfg, logger)
		writer := kafkaadapter.NewWriter(cfg, logger)
		defer closeAll(logger, reader, writer)

		p := pipeline.New(reader, pipeline.NewTransformer(comp, logger), writer, logger, metrics, cfg.BatchSize)
		ready = append(ready, p)
		runPipeline = p.Run
		logger.Info("plan pipeline enabled",
			"source_topic", cfg.KafkaSourceTopic,
			"sink_topic", cfg.KafkaSinkTopic,
			"group_id", cfg.KafkaGroupID,
		)
	} else {
		ready = append(ready, httpadapter.AlwaysReady{})
		logger.Info("plan pipeline disabled")
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, comp, ready, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	if runPipeline != nil {
		g.Go(func() error { return runPipeline(gctx) })
	}
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		return nil
	})

	err = g.Wait()
	if err != nil {
		logger.Error("service stopped with error", "error", err)
		return err
	}
	logger.Info("shutdown complete")
	return nil
}

type closer interface {
	Close() error
}

func closeAll(logger *slog.Logger, cs ...closer) {
	for _, c := range cs {
		if err := c.Close(); err != nil {
			logger.Error("close error", "error", err)
		}
	}
}
