package domain

import "fmt"

// ErrorKind is the failure taxonomy for a single region fetch.
type ErrorKind string

const (
	ErrorNetwork             ErrorKind = "network"              // connection refused, DNS, TLS
	ErrorTimeout             ErrorKind = "timeout"              // no response within the fetch budget
	ErrorUpstreamUnavailable ErrorKind = "upstream_unavailable" // non-2xx status or declared no-data
	ErrorParseFailure        ErrorKind = "parse_failure"        // payload does not match the juyo format
	ErrorSchemaViolation     ErrorKind = "schema_violation"     // parsed but out-of-range values
)

// label is the human-readable prefix used in the rendered message. The
// downstream smoke test greps the combined output for the literal substring
// "Error", so every rendered message carries it.
func (k ErrorKind) label() string {
	switch k {
	case ErrorNetwork:
		return "Network"
	case ErrorTimeout:
		return "Timeout"
	case ErrorUpstreamUnavailable:
		return "Upstream"
	case ErrorParseFailure:
		return "Parse"
	case ErrorSchemaViolation:
		return "Schema"
	default:
		return "Fetch"
	}
}

// FetchError is the uniform failure record for one region. It is embedded in
// the aggregate in place of a report; it never aborts a crawl.
type FetchError struct {
	Region  string    `json:"region"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

// NewFetchError builds a FetchError whose message carries the "Error" token
// required by the output contract, e.g. "Network Error: connection refused".
func NewFetchError(region string, kind ErrorKind, cause error) *FetchError {
	return &FetchError{
		Region:  region,
		Kind:    kind,
		Message: fmt.Sprintf("%s Error: %v", kind.label(), cause),
		Cause:   cause,
	}
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %s", e.Region, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}
