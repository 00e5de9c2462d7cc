package domain

import (
	"fmt"
	"strconv"
	"time"
)

// Reading is one row of a demand table: a demand figure at a point in time.
// Date and Time keep the upstream's exact formatting for announcement text;
// At is the parsed JST timestamp.
type Reading struct {
	Date   string
	Time   string
	Demand float64 // 万kW
	At     time.Time
}

// Report is the normalized per-region result of a successful fetch.
// Immutable once built.
type Report struct {
	Region       string            // region id
	Name         string            // company display name
	Status       StatusLevel       // derived warning level
	ObservedAt   time.Time         // timestamp of the latest reading, JST
	Demand       float64           // latest five-minute demand, 万kW
	PeakSupply   float64           // peak-time supply capacity, 万kW
	UsagePercent *float64          // demand / peak supply * 100; nil if underivable
	Message      string            // human-readable announcement text
	Extras       map[string]string // fields outside the common schema
}

// BuildReport normalizes parsed juyo data into a Report for the region.
// Building twice from the same data yields identical reports.
func BuildReport(region Region, data *JuyoData) *Report {
	pct := data.Latest.Demand / data.PeakSupply * 100
	status := StatusForUsage(pct)

	extras := make(map[string]string)
	if data.LatestHourly != nil {
		extras["hourly_demand"] = formatMan(data.LatestHourly.Demand)
		extras["hourly_time"] = data.LatestHourly.Time
	}
	if len(extras) == 0 {
		extras = nil
	}

	return &Report{
		Region:       region.ID,
		Name:         region.Name,
		Status:       status,
		ObservedAt:   data.Latest.At,
		Demand:       data.Latest.Demand,
		PeakSupply:   data.PeakSupply,
		UsagePercent: &pct,
		Message:      announcement(region.Name, status, data.Latest, data.PeakSupply, pct),
		Extras:       extras,
	}
}

// announcement renders the traditional usage bulletin, e.g.
//
//	【東京電力パワーグリッド管内 電力使用状況 注意報】2026/8/28 14:35の電力使用量は
//	5100万kWでした。ピーク時供給力 5461万kW に対する使用率は 93.39%です。
//
// The warning-level suffix appears only above the Warning threshold.
func announcement(company string, status StatusLevel, latest Reading, peakSupply, percent float64) string {
	suffix := ""
	if k := status.Kanji(); k != "" {
		suffix = " " + k
	}
	return fmt.Sprintf(
		"【%s管内 電力使用状況%s】%s %sの電力使用量は%s万kWでした。ピーク時供給力 %s万kW に対する使用率は %.2f%%です。",
		company, suffix, latest.Date, latest.Time,
		formatMan(latest.Demand), formatMan(peakSupply), percent,
	)
}

// formatMan renders a 万kW figure without a trailing decimal point for the
// integral values the upstreams publish.
func formatMan(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
