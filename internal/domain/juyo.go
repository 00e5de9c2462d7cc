package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// Sentinel categories the fetch adapter maps onto the FetchError taxonomy.
var (
	ErrMalformed  = errors.New("malformed juyo csv")
	ErrOutOfRange = errors.New("juyo value out of range")
	ErrNoData     = errors.New("no demand data published")
)

// Table dimensions fixed by the juyo format: header + 24 hourly rows,
// header + 288 five-minute rows.
const (
	hourlyTableLen  = 25
	fiveMinTableLen = 289
)

// JuyoData is the raw parse result of one juyo CSV, before normalization.
type JuyoData struct {
	PeakSupply   float64 // 万kW
	Latest       Reading // last five-minute reading with a numeric demand
	LatestHourly *Reading
}

// ParseJuyo decodes a Shift-JIS juyo CSV and extracts the peak supply and
// the latest demand readings. Errors wrap ErrMalformed, ErrOutOfRange, or
// ErrNoData for classification. Parsing is pure: the same payload always
// yields the same JuyoData.
func ParseJuyo(raw []byte, layout Layout) (*JuyoData, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty response body", ErrNoData)
	}

	text, err := decodeShiftJIS(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: decode shift-jis: %v", ErrMalformed, err)
	}
	lines := splitLines(text)

	if len(lines) <= layout.FiveMinStart+1 {
		return nil, fmt.Errorf("%w: %d lines, five-minute table expected at line %d",
			ErrMalformed, len(lines), layout.FiveMinStart)
	}

	peakSupply, err := parsePeakSupply(lines[2])
	if err != nil {
		return nil, err
	}

	latestHourly := latestReading(tableRows(lines, layout.HourlyStart, hourlyTableLen))
	latest := latestReading(tableRows(lines, layout.FiveMinStart, fiveMinTableLen))
	if latest == nil {
		// Right after the daily rollover the five-minute table can be
		// entirely blank while the hourly table still has yesterday's
		// carry-over row.
		latest = latestHourly
	}
	if latest == nil {
		return nil, fmt.Errorf("%w: all demand rows empty", ErrNoData)
	}
	if latest.Demand <= 0 {
		return nil, fmt.Errorf("%w: demand %v", ErrOutOfRange, latest.Demand)
	}
	if pct := latest.Demand / peakSupply * 100; pct > 150 {
		return nil, fmt.Errorf("%w: usage %.1f%% of peak supply", ErrOutOfRange, pct)
	}

	return &JuyoData{
		PeakSupply:   peakSupply,
		Latest:       *latest,
		LatestHourly: latestHourly,
	}, nil
}

func decodeShiftJIS(raw []byte) (string, error) {
	decoded, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), raw)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], "\r")
	}
	return lines
}

// parsePeakSupply reads the first field of the peak supply row (line 2 in
// every known layout).
func parsePeakSupply(line string) (float64, error) {
	field := strings.TrimSpace(strings.SplitN(line, ",", 2)[0])
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: peak supply %q", ErrMalformed, field)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%w: peak supply %v", ErrOutOfRange, v)
	}
	return v, nil
}

// tableRows returns the data rows of a demand table, skipping its header
// line. Truncated files yield however many rows are present.
func tableRows(lines []string, start, length int) []string {
	if start+1 >= len(lines) {
		return nil
	}
	end := start + length
	if end > len(lines) {
		end = len(lines)
	}
	return lines[start+1 : end]
}

// latestReading scans table rows in order and keeps the last one with a
// numeric demand. Future time slots carry empty or "-" demand fields and
// are skipped, as are rows with unparseable timestamps.
func latestReading(rows []string) *Reading {
	var latest *Reading
	for _, row := range rows {
		fields := strings.Split(row, ",")
		if len(fields) < 3 {
			continue
		}
		date := strings.TrimSpace(fields[0])
		tm := strings.TrimSpace(fields[1])
		demandField := strings.TrimSpace(fields[2])
		if demandField == "" || demandField == "-" {
			continue
		}
		demand, err := strconv.ParseFloat(demandField, 64)
		if err != nil {
			continue
		}
		at, err := time.ParseInLocation("2006/1/2 15:04", date+" "+tm, JST)
		if err != nil {
			continue
		}
		latest = &Reading{Date: date, Time: tm, Demand: demand, At: at}
	}
	return latest
}
