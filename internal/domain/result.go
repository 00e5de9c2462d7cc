package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// RegionResult is the sum of a successful Report and a FetchError for one
// region. Exactly one of the two is set. Every configured region produces
// exactly one RegionResult per crawl.
type RegionResult struct {
	Region string
	Report *Report
	Err    *FetchError
}

// Success wraps a normalized report.
func Success(report *Report) RegionResult {
	return RegionResult{Region: report.Region, Report: report}
}

// Failure wraps a fetch error.
func Failure(err *FetchError) RegionResult {
	return RegionResult{Region: err.Region, Err: err}
}

// Failed reports whether this region's fetch ended in an error.
func (r RegionResult) Failed() bool {
	return r.Err != nil
}

// Status returns the report's warning level, or StatusUnknown for failures.
func (r RegionResult) Status() StatusLevel {
	if r.Report != nil {
		return r.Report.Status
	}
	return StatusUnknown
}

// AggregateReport is the combined output of one crawl: one result per
// configured region, in configuration order, under a single generation
// timestamp. It is the sole output artifact of a run.
type AggregateReport struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Results     []RegionResult `json:"results"`
}

// Failures returns the failed results in order.
func (a AggregateReport) Failures() []RegionResult {
	var failed []RegionResult
	for _, r := range a.Results {
		if r.Failed() {
			failed = append(failed, r)
		}
	}
	return failed
}

// regionRecord is the externally visible JSON shape of a RegionResult.
// Success and failure share it: the fold is total, and the error object is
// the only distinguishing field.
type regionRecord struct {
	Region       string            `json:"region"`
	Name         string            `json:"name,omitempty"`
	Status       StatusLevel       `json:"status"`
	ObservedAt   *time.Time        `json:"observed_at,omitempty"`
	Demand       *float64          `json:"demand,omitempty"`
	PeakSupply   *float64          `json:"peak_supply,omitempty"`
	UsagePercent *float64          `json:"usage_percent,omitempty"`
	Message      string            `json:"message,omitempty"`
	Extras       map[string]string `json:"extras,omitempty"`
	Error        *recordError      `json:"error,omitempty"`
}

type recordError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// MarshalJSON renders the result as its external record. Failure records
// carry an error object whose message contains the literal "Error" token;
// success records carry no error field at all.
func (r RegionResult) MarshalJSON() ([]byte, error) {
	if r.Err != nil {
		return json.Marshal(regionRecord{
			Region: r.Region,
			Status: StatusUnknown,
			Error:  &recordError{Kind: r.Err.Kind, Message: r.Err.Message},
		})
	}
	if r.Report == nil {
		return nil, fmt.Errorf("region %q: result has neither report nor error", r.Region)
	}
	rep := r.Report
	observed := rep.ObservedAt
	demand := rep.Demand
	supply := rep.PeakSupply
	return json.Marshal(regionRecord{
		Region:       rep.Region,
		Name:         rep.Name,
		Status:       rep.Status,
		ObservedAt:   &observed,
		Demand:       &demand,
		PeakSupply:   &supply,
		UsagePercent: rep.UsagePercent,
		Message:      rep.Message,
		Extras:       rep.Extras,
	})
}

// UnmarshalJSON reconstructs the sum type from its external record, so a
// serialized aggregate round-trips with the same success/failure
// classification per region.
func (r *RegionResult) UnmarshalJSON(data []byte) error {
	var rec regionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	if rec.Region == "" {
		return fmt.Errorf("region record missing region id")
	}

	r.Region = rec.Region
	if rec.Error != nil {
		r.Report = nil
		r.Err = &FetchError{Region: rec.Region, Kind: rec.Error.Kind, Message: rec.Error.Message}
		return nil
	}

	rep := &Report{
		Region:       rec.Region,
		Name:         rec.Name,
		Status:       rec.Status,
		UsagePercent: rec.UsagePercent,
		Message:      rec.Message,
		Extras:       rec.Extras,
	}
	if rec.ObservedAt != nil {
		rep.ObservedAt = *rec.ObservedAt
	}
	if rec.Demand != nil {
		rep.Demand = *rec.Demand
	}
	if rec.PeakSupply != nil {
		rep.PeakSupply = *rec.PeakSupply
	}
	r.Report = rep
	r.Err = nil
	return nil
}
