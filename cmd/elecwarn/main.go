// Command elecwarn performs one crawl of all configured regions and writes
// the combined report as JSON to stdout. Failed regions appear as structured
// error entries in the output; they do not affect the exit status. The
// surrounding scheduler (cron or elecwarnd) decides when to run it.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kuropen/elecwarn/internal/adapter/juyo"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report := collector.Run(ctx)

	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(report); err != nil {
		logger.Error("failed to write report", "error", err)
		os.Exit(1)
	}
}
