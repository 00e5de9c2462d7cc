package domain_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kuropen/elecwarn/internal/domain"
	"github.com/kuropen/elecwarn/internal/mockdata"
)

var fixtureTime = time.Date(2026, time.July, 1, 13, 35, 0, 0, domain.JST)

func TestParseJuyo_StandardLayout(t *testing.T) {
	csv, err := mockdata.JuyoCSV(domain.StandardLayout, 5461, 88.5, fixtureTime)
	require.NoError(t, err)

	data, err := domain.ParseJuyo(csv, domain.StandardLayout)
	require.NoError(t, err)

	assert.Equal(t, 5461.0, data.PeakSupply)
	assert.Equal(t, 4833.0, data.Latest.Demand) // 5461 * 0.885, rounded
	assert.Equal(t, "2026/7/1", data.Latest.Date)
	assert.Equal(t, "13:35", data.Latest.Time)
	assert.True(t, data.Latest.At.Equal(fixtureTime), "latest five-minute slot")

	require.NotNil(t, data.LatestHourly)
	assert.Equal(t, "13:00", data.LatestHourly.Time)
	assert.Equal(t, 4833.0, data.LatestHourly.Demand)
}

func TestParseJuyo_KansaiLayout(t *testing.T) {
	layout := domain.Layout{HourlyStart: 11, FiveMinStart: 46}
	csv, err := mockdata.JuyoCSV(layout, 2849, 95.6, fixtureTime)
	require.NoError(t, err)

	data, err := domain.ParseJuyo(csv, layout)
	require.NoError(t, err)

	assert.Equal(t, 2849.0, data.PeakSupply)
	assert.Equal(t, "13:35", data.Latest.Time)
	require.NotNil(t, data.LatestHourly)
	assert.Equal(t, "13:00", data.LatestHourly.Time)
}

func TestParseJuyo_Idempotent(t *testing.T) {
	csv, err := mockdata.JuyoCSV(domain.StandardLayout, 1437, 93.2, fixtureTime)
	require.NoError(t, err)

	first, err := domain.ParseJuyo(csv, domain.StandardLayout)
	require.NoError(t, err)
	second, err := domain.ParseJuyo(csv, domain.StandardLayout)
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(first, second))
}

func TestParseJuyo_Errors(t *testing.T) {
	t.Run("empty body", func(t *testing.T) {
		_, err := domain.ParseJuyo(nil, domain.StandardLayout)
		assert.ErrorIs(t, err, domain.ErrNoData)
	})

	t.Run("maintenance page", func(t *testing.T) {
		_, err := domain.ParseJuyo([]byte("<html><body>mainte</body></html>"), domain.StandardLayout)
		assert.ErrorIs(t, err, domain.ErrMalformed)
	})

	t.Run("truncated file", func(t *testing.T) {
		csv, err := mockdata.JuyoCSV(domain.StandardLayout, 5461, 88.5, fixtureTime)
		require.NoError(t, err)
		_, err = domain.ParseJuyo(csv[:200], domain.StandardLayout)
		assert.ErrorIs(t, err, domain.ErrMalformed)
	})

	t.Run("zero peak supply", func(t *testing.T) {
		csv, err := mockdata.JuyoCSV(domain.StandardLayout, 0, 90, fixtureTime)
		require.NoError(t, err)
		_, err = domain.ParseJuyo(csv, domain.StandardLayout)
		assert.ErrorIs(t, err, domain.ErrOutOfRange)
	})

	t.Run("usage beyond plausibility", func(t *testing.T) {
		csv, err := mockdata.JuyoCSV(domain.StandardLayout, 1000, 160, fixtureTime)
		require.NoError(t, err)
		_, err = domain.ParseJuyo(csv, domain.StandardLayout)
		assert.ErrorIs(t, err, domain.ErrOutOfRange)
	})

	t.Run("no demand published yet", func(t *testing.T) {
		_, err := domain.ParseJuyo(unpublishedJuyoCSV(t), domain.StandardLayout)
		assert.ErrorIs(t, err, domain.ErrNoData)
	})
}

// unpublishedJuyoCSV builds a structurally valid file whose demand tables
// are entirely empty, the way a freshly rolled-over day can look.
func unpublishedJuyoCSV(t *testing.T) []byte {
	t.Helper()

	lines := []string{
		"2026/7/2 0:00 UPDATE",
		"ピーク時供給力(万kW),時台,供給力情報更新日,供給力情報更新時刻",
		"5461,14:00,7/2,8:30",
	}
	for len(lines) < 7 {
		lines = append(lines, "")
	}
	lines = append(lines, "DATE,TIME,当日実績(万kW),予測値(万kW),使用率(%)")
	for hour := 0; hour < 24; hour++ {
		lines = append(lines, fmt.Sprintf("2026/7/2,%d:00,,,", hour))
	}
	for len(lines) < 42 {
		lines = append(lines, "")
	}
	lines = append(lines, "DATE,TIME,当日実績(万kW)")
	for slot := 0; slot < 288; slot++ {
		lines = append(lines, fmt.Sprintf("2026/7/2,%02d:%02d,", slot/12, slot%12*5))
	}

	var text string
	for _, l := range lines {
		text += l + "\r\n"
	}
	encoded, err := mockdata.EncodeShiftJIS(text)
	require.NoError(t, err)
	return encoded
}
