// Package juyo fetches and parses the demand forecast CSVs published by the
// regional power companies. It is the single source adapter for every
// region: the per-region differences (URL, date substitution, table layout)
// live in the region configuration, not in code variants.
package juyo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/kuropen/elecwarn/internal/config"
	"github.com/kuropen/elecwarn/internal/domain"
	"github.com/kuropen/elecwarn/internal/observability"
)

// maxBodySize caps the response read. Real juyo files are a few tens of
// kilobytes; anything beyond this is not a juyo CSV.
const maxBodySize = 4 << 20

// Client fetches one region's juyo CSV per call. It implements the
// pipeline's Fetcher contract: every failure mode is folded into a
// FetchError result, never a raw error.
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a juyo fetch client. The per-fetch timeout comes from
// configuration; the http.Client itself carries no global deadline.
func NewClient(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		httpClient: &http.Client{},
		timeout:    cfg.FetchTimeout,
		logger:     logger,
		metrics:    metrics,
	}
}

// Fetch retrieves and normalizes one region's data. The returned result is
// always populated: a report on success, a typed FetchError otherwise.
func (c *Client) Fetch(ctx context.Context, region domain.Region) domain.RegionResult {
	start := time.Now()
	report, fetchErr := c.fetch(ctx, region)
	elapsed := time.Since(start)

	c.metrics.FetchDuration.WithLabelValues(region.ID).Observe(elapsed.Seconds())
	if fetchErr != nil {
		c.metrics.FetchesTotal.WithLabelValues(region.ID, string(fetchErr.Kind)).Inc()
		c.logger.Warn("region fetch failed",
			"region", region.ID, "kind", fetchErr.Kind, "error", fetchErr.Cause, "duration", elapsed)
		return domain.Failure(fetchErr)
	}

	c.metrics.FetchesTotal.WithLabelValues(region.ID, "success").Inc()
	c.logger.Debug("region fetch ok",
		"region", region.ID, "status", report.Status.String(), "duration", elapsed)
	return domain.Success(report)
}

func (c *Client) fetch(ctx context.Context, region domain.Region) (*domain.Report, *domain.FetchError) {
	url := region.ResolveURL(domain.Now())

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, domain.NewFetchError(region.ID, domain.ErrorNetwork, fmt.Errorf("create request: %w", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewFetchError(region.ID, classifyTransportError(err), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.NewFetchError(region.ID, domain.ErrorUpstreamUnavailable,
			fmt.Errorf("upstream returned status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, domain.NewFetchError(region.ID, classifyTransportError(err), fmt.Errorf("read body: %w", err))
	}

	data, err := domain.ParseJuyo(body, region.Layout)
	if err != nil {
		return nil, domain.NewFetchError(region.ID, classifyParseError(err), err)
	}

	return domain.BuildReport(region, data), nil
}

// classifyTransportError separates timeouts from other network failures.
func classifyTransportError(err error) domain.ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrorTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.ErrorTimeout
	}
	return domain.ErrorNetwork
}

// classifyParseError maps parser sentinels onto the error taxonomy.
func classifyParseError(err error) domain.ErrorKind {
	switch {
	case errors.Is(err, domain.ErrNoData):
		return domain.ErrorUpstreamUnavailable
	case errors.Is(err, domain.ErrOutOfRange):
		return domain.ErrorSchemaViolation
	default:
		return domain.ErrorParseFailure
	}
}
