// Command validate checks an aggregate report JSON document against the
// output contract: every expected region appears exactly once in order,
// failure records carry the "Error" token, success records never do, and no
// unexempted region failed. It is the in-repo equivalent of the shell smoke
// test that greps a crawl's stdout for "Error".
//
// Usage:
//
//	elecwarn > report.json
//	go run ./cmd/validate -input report.json
//
// Pass "-" to read from stdin. Regions marked unstable in the default
// registry (Tohoku) are exempt from the health phase unless -exempt
// overrides the set.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kuropen/elecwarn/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	input := flag.String("input", "-", "aggregate report JSON file, or - for stdin")
	regionList := flag.String("regions", "", "comma-separated expected region ids (default: all)")
	exemptList := flag.String("exempt", "", "comma-separated region ids exempt from the health check (default: unstable regions)")
	flag.Parse()

	if code := run(*input, *regionList, *exemptList); code != 0 {
		os.Exit(code)
	}
}

func run(input, regionList, exemptList string) int {
	data, err := readInput(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read input: %v\n", err)
		return 1
	}

	var report domain.AggregateReport
	if err := json.Unmarshal(data, &report); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: parse aggregate report: %v\n", err)
		return 1
	}

	expected := expectedRegions(regionList)
	exempt := exemptRegions(exemptList)

	phases := []*phase{
		checkCoverage(report, expected),
		checkErrorTokens(report),
		checkHealth(report, exempt),
	}

	fmt.Println("=== Aggregate Report Validation ===")
	failed := false
	for _, p := range phases {
		if p.passed() {
			fmt.Printf("PASS %s\n", p.name)
			continue
		}
		failed = true
		fmt.Printf("FAIL %s\n", p.name)
		for _, e := range p.errors {
			fmt.Printf("  - %s\n", e)
		}
	}
	if failed {
		return 1
	}
	return 0
}

func readInput(input string) ([]byte, error) {
	if input == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(input)
}

func expectedRegions(regionList string) []string {
	if regionList != "" {
		return splitIDs(regionList)
	}
	var ids []string
	for _, r := range domain.DefaultRegions() {
		ids = append(ids, r.ID)
	}
	return ids
}

func exemptRegions(exemptList string) map[string]bool {
	exempt := make(map[string]bool)
	if exemptList != "" {
		for _, id := range splitIDs(exemptList) {
			exempt[id] = true
		}
		return exempt
	}
	for _, r := range domain.DefaultRegions() {
		if r.Unstable {
			exempt[r.ID] = true
		}
	}
	return exempt
}

func splitIDs(s string) []string {
	var ids []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			ids = append(ids, part)
		}
	}
	return ids
}

// checkCoverage verifies one result per expected region, in order, with no
// extras and no duplicates.
func checkCoverage(report domain.AggregateReport, expected []string) *phase {
	p := &phase{name: "coverage: one result per region, in order"}

	if len(report.Results) != len(expected) {
		p.errorf("expected %d results, got %d", len(expected), len(report.Results))
	}
	seen := make(map[string]int)
	for i, result := range report.Results {
		seen[result.Region]++
		if i < len(expected) && result.Region != expected[i] {
			p.errorf("position %d: expected region %q, got %q", i, expected[i], result.Region)
		}
	}
	for region, count := range seen {
		if count > 1 {
			p.errorf("region %q appears %d times", region, count)
		}
	}
	for _, id := range expected {
		if seen[id] == 0 {
			p.errorf("region %q missing from report", id)
		}
	}
	if report.GeneratedAt.IsZero() {
		p.errorf("generated_at is zero")
	}
	return p
}

// checkErrorTokens verifies the grep contract: the rendered record of every
// failure contains "Error", and of every success does not.
func checkErrorTokens(report domain.AggregateReport) *phase {
	p := &phase{name: `contract: "Error" token marks failures only`}

	for _, result := range report.Results {
		rendered, err := json.Marshal(result)
		if err != nil {
			p.errorf("region %q: marshal: %v", result.Region, err)
			continue
		}
		hasToken := strings.Contains(string(rendered), "Error")
		switch {
		case result.Failed() && !hasToken:
			p.errorf("region %q failed but record lacks the Error token", result.Region)
		case !result.Failed() && hasToken:
			p.errorf("region %q succeeded but record contains the Error token", result.Region)
		}
		if result.Failed() && result.Err.Kind == "" {
			p.errorf("region %q: error record missing kind", result.Region)
		}
	}
	return p
}

// checkHealth fails on any unexempted region error.
func checkHealth(report domain.AggregateReport, exempt map[string]bool) *phase {
	p := &phase{name: "health: no unexempted failures"}

	for _, result := range report.Failures() {
		if exempt[result.Region] {
			fmt.Printf("  (exempt) %s: %s\n", result.Region, result.Err.Message)
			continue
		}
		p.errorf("%s: [%s] %s", result.Region, result.Err.Kind, result.Err.Message)
	}
	return p
}
