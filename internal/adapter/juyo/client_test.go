package juyo_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kuropen/elecwarn/internal/adapter/juyo"
	"github.com/kuropen/elecwarn/internal/config"
	"github.com/kuropen/elecwarn/internal/domain"
	"github.com/kuropen/elecwarn/internal/mockdata"
	"github.com/kuropen/elecwarn/internal/observability"
)

var fixtureTime = time.Date(2026, time.July, 1, 13, 35, 0, 0, domain.JST)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testClient(timeout time.Duration) *juyo.Client {
	cfg := &config.Config{FetchTimeout: timeout}
	return juyo.NewClient(cfg, discardLogger(), observability.NewMetricsForTesting())
}

func testRegion(url string) domain.Region {
	return domain.Region{ID: "kanto", Name: "関東電力", URL: url, Layout: domain.StandardLayout}
}

func serveCSV(t *testing.T, csv []byte) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write(csv)
	}))
}

func TestClient_Fetch_Success(t *testing.T) {
	csv, err := mockdata.JuyoCSV(domain.StandardLayout, 5461, 88.5, fixtureTime)
	require.NoError(t, err)
	srv := serveCSV(t, csv)
	defer srv.Close()

	result := testClient(5 * time.Second).Fetch(context.Background(), testRegion(srv.URL))

	require.False(t, result.Failed(), "unexpected error: %v", result.Err)
	assert.Equal(t, "kanto", result.Region)
	assert.Equal(t, domain.StatusNormal, result.Report.Status)
	assert.Equal(t, 5461.0, result.Report.PeakSupply)
	require.NotNil(t, result.Report.UsagePercent)
	assert.InDelta(t, 88.5, *result.Report.UsagePercent, 0.1)
}

func TestClient_Fetch_DatedURL(t *testing.T) {
	domain.SetClock(clockwork.NewFakeClockAt(fixtureTime))
	defer domain.SetClock(nil)

	csv, err := mockdata.JuyoCSV(domain.StandardLayout, 5461, 88.5, fixtureTime)
	require.NoError(t, err)

	var requestedPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		_, _ = w.Write(csv)
	}))
	defer srv.Close()

	region := testRegion(srv.URL + "/demand/juyo_02_{date}.csv")
	result := testClient(5 * time.Second).Fetch(context.Background(), region)

	require.False(t, result.Failed())
	assert.Equal(t, "/demand/juyo_02_20260701.csv", requestedPath)
}

func TestClient_Fetch_UpstreamUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	result := testClient(5 * time.Second).Fetch(context.Background(), testRegion(srv.URL))

	require.True(t, result.Failed())
	assert.Equal(t, domain.ErrorUpstreamUnavailable, result.Err.Kind)
	assert.Contains(t, result.Err.Message, "Error")
	assert.Contains(t, result.Err.Message, "404")
}

func TestClient_Fetch_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	result := testClient(5 * time.Second).Fetch(context.Background(), testRegion(url))

	require.True(t, result.Failed())
	assert.Equal(t, domain.ErrorNetwork, result.Err.Kind)
	assert.Contains(t, result.Err.Message, "Error")
}

func TestClient_Fetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	start := time.Now()
	result := testClient(50 * time.Millisecond).Fetch(context.Background(), testRegion(srv.URL))
	elapsed := time.Since(start)

	require.True(t, result.Failed())
	assert.Equal(t, domain.ErrorTimeout, result.Err.Kind)
	// Bounded by the configured budget, not the upstream's silence.
	assert.Less(t, elapsed, 2*time.Second)
}

func TestClient_Fetch_ParseFailure(t *testing.T) {
	srv := serveCSV(t, []byte("<html><body>システムメンテナンス中</body></html>"))
	defer srv.Close()

	result := testClient(5 * time.Second).Fetch(context.Background(), testRegion(srv.URL))

	require.True(t, result.Failed())
	assert.Equal(t, domain.ErrorParseFailure, result.Err.Kind)
	assert.Contains(t, result.Err.Message, "Error")
}

func TestClient_Fetch_SchemaViolation(t *testing.T) {
	csv, err := mockdata.JuyoCSV(domain.StandardLayout, 1000, 160, fixtureTime)
	require.NoError(t, err)
	srv := serveCSV(t, csv)
	defer srv.Close()

	result := testClient(5 * time.Second).Fetch(context.Background(), testRegion(srv.URL))

	require.True(t, result.Failed())
	assert.Equal(t, domain.ErrorSchemaViolation, result.Err.Kind)
}

func TestClient_Fetch_EmptyBody(t *testing.T) {
	srv := serveCSV(t, nil)
	defer srv.Close()

	result := testClient(5 * time.Second).Fetch(context.Background(), testRegion(srv.URL))

	require.True(t, result.Failed())
	assert.Equal(t, domain.ErrorUpstreamUnavailable, result.Err.Kind)
}
