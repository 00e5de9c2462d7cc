// Command elecwarnd runs the crawl on a fixed interval and keeps the latest
// aggregate available over HTTP (/latest), alongside health, readiness, and
// Prometheus metrics endpoints. When KAFKA_BROKERS is set, every crawl is
// also published to the sink topic.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kuropen/elecwarn/internal/adapter/httpserver"
	"github.com/kuropen/elecwarn/internal/adapter/juyo"
	kafkaadapter "github.com/kuropen/elecwarn/internal/adapter/kafka"
	"github.com/kuropen/elecwarn/internal/config"
	"github.com/kuropen/elecwarn/internal/domain"
	"github.com/kuropen/elecwarn/internal/observability"
	"github.com/kuropen/elecwarn/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	regions, err := domain.SelectRegions(cfg.Regions, cfg.URLOverrides)
	if err != nil {
		logger.Error("invalid region configuration", "error", err)
		os.Exit(1)
	}

	client := juyo.NewClient(cfg, logger, metrics)
	collector := pipeline.New(client, regions, logger, metrics)

	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		logger.Info("kafka sink enabled", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("kafka sink disabled")
	}

	srv := httpserver.NewServer(cfg.HTTPAddr, collector, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	go runLoop(ctx, collector, writer, cfg.PollInterval, logger)

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

// runLoop crawls immediately, then on every interval tick until the context
// is cancelled. Publishing is best effort: a sink outage only logs.
func runLoop(ctx context.Context, collector *pipeline.Collector, writer *kafkaadapter.Writer, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		report := collector.Run(ctx)
		if writer != nil && ctx.Err() == nil {
			if err := writer.Publish(ctx, report); err != nil {
				logger.Error("kafka publish failed", "error", err)
			}
		}

		select {
		case <-ctx.Done():
			logger.Info("crawl loop stopping", "reason", ctx.Err())
			return
		case <-ticker.C:
		}
	}
}
