package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kuropen/elecwarn/internal/domain"
)

func TestDefaultRegions(t *testing.T) {
	regions := domain.DefaultRegions()
	require.Len(t, regions, 9)
	assert.Equal(t, "tokyo", regions[0].ID)
	assert.Equal(t, "kyushu", regions[8].ID)

	kansai := regions[5]
	assert.Equal(t, "kansai", kansai.ID)
	assert.Equal(t, 11, kansai.Layout.HourlyStart)
	assert.Equal(t, 46, kansai.Layout.FiveMinStart)

	tohoku := regions[1]
	assert.True(t, tohoku.Unstable)
}

func TestRegion_ResolveURL(t *testing.T) {
	day := time.Date(2026, time.August, 28, 1, 0, 0, 0, domain.JST)

	t.Run("dated URL", func(t *testing.T) {
		r := domain.Region{URL: "http://example.com/juyo_02_{date}.csv"}
		assert.Equal(t, "http://example.com/juyo_02_20260828.csv", r.ResolveURL(day))
	})

	t.Run("fixed URL", func(t *testing.T) {
		r := domain.Region{URL: "http://example.com/juyo-j.csv"}
		assert.Equal(t, "http://example.com/juyo-j.csv", r.ResolveURL(day))
	})

	t.Run("date is taken in JST", func(t *testing.T) {
		// 23:30 UTC on the 27th is already the 28th in JST.
		utcEvening := time.Date(2026, time.August, 27, 23, 30, 0, 0, time.UTC)
		r := domain.Region{URL: "http://example.com/juyo_{date}.csv"}
		assert.Equal(t, "http://example.com/juyo_20260828.csv", r.ResolveURL(utcEvening))
	})
}

func TestSelectRegions(t *testing.T) {
	t.Run("empty selects all in default order", func(t *testing.T) {
		regions, err := domain.SelectRegions(nil, nil)
		require.NoError(t, err)
		require.Len(t, regions, 9)
		assert.Equal(t, "tokyo", regions[0].ID)
	})

	t.Run("explicit list keeps requested order", func(t *testing.T) {
		regions, err := domain.SelectRegions([]string{"kyushu", "tokyo"}, nil)
		require.NoError(t, err)
		require.Len(t, regions, 2)
		assert.Equal(t, "kyushu", regions[0].ID)
		assert.Equal(t, "tokyo", regions[1].ID)
	})

	t.Run("unknown region", func(t *testing.T) {
		_, err := domain.SelectRegions([]string{"okinawa"}, nil)
		assert.Error(t, err)
	})

	t.Run("duplicate region", func(t *testing.T) {
		_, err := domain.SelectRegions([]string{"tokyo", "tokyo"}, nil)
		assert.Error(t, err)
	})

	t.Run("URL overrides", func(t *testing.T) {
		overrides := map[string]string{"tokyo": "http://localhost:8081/tokyo.csv"}
		regions, err := domain.SelectRegions([]string{"tokyo", "tohoku"}, overrides)
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8081/tokyo.csv", regions[0].URL)
		assert.Contains(t, regions[1].URL, "tohoku-epco")
	})
}
