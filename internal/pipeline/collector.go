package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kuropen/elecwarn/internal/domain"
	"github.com/kuropen/elecwarn/internal/observability"
)

// Fetcher produces exactly one RegionResult per invocation. Implementations
// must capture all failure modes in the result rather than panicking or
// returning errors out of band.
type Fetcher interface {
	Fetch(ctx context.Context, region domain.Region) domain.RegionResult
}

// Collector drives every configured region's fetch and assembles the
// combined report. Regions are fully independent: one region's failure or
// slowness never drops, blocks, or reorders the others.
type Collector struct {
	fetcher Fetcher
	regions []domain.Region
	logger  *slog.Logger
	metrics *observability.Metrics
	ready   atomic.Bool
	latest  atomic.Pointer[domain.AggregateReport]
}

// New creates a Collector over the given region set.
func New(fetcher Fetcher, regions []domain.Region, logger *slog.Logger, metrics *observability.Metrics) *Collector {
	return &Collector{
		fetcher: fetcher,
		regions: regions,
		logger:  logger,
		metrics: metrics,
	}
}

// Run performs one complete crawl: every region fetched exactly once,
// concurrently, with results placed by region index so the output keeps
// configuration order. The generation timestamp is captured once at run
// start. Run waits for every region before returning; there is no
// partial-output mode.
func (c *Collector) Run(ctx context.Context) domain.AggregateReport {
	start := time.Now()
	generatedAt := domain.Now()

	c.metrics.CollectorRunning.Set(1)
	defer c.metrics.CollectorRunning.Set(0)

	results := make([]domain.RegionResult, len(c.regions))

	// A plain Group, not WithContext: one region's failure must not cancel
	// its siblings. Fetchers never return errors anyway.
	var g errgroup.Group
	for i, region := range c.regions {
		g.Go(func() error {
			results[i] = c.fetcher.Fetch(ctx, region)
			return nil
		})
	}
	_ = g.Wait()

	report := domain.AggregateReport{GeneratedAt: generatedAt, Results: results}

	failed := report.Failures()
	c.metrics.RunsTotal.Inc()
	c.metrics.RunDuration.Observe(time.Since(start).Seconds())
	c.metrics.RegionsFailed.Set(float64(len(failed)))

	c.logger.Info("crawl complete",
		"regions", len(results), "failed", len(failed), "duration", time.Since(start))

	c.latest.Store(&report)
	c.ready.Store(true)
	return report
}

// CheckReadiness returns nil once at least one crawl has completed.
func (c *Collector) CheckReadiness(_ context.Context) error {
	if !c.ready.Load() {
		return errors.New("no crawl has completed yet")
	}
	return nil
}

// Latest returns the most recent aggregate, or nil before the first run.
func (c *Collector) Latest() *domain.AggregateReport {
	return c.latest.Load()
}
