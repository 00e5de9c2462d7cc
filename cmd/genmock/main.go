// Command genmock writes deterministic juyo CSV fixtures for every region,
// Shift-JIS encoded with each region's table layout, plus the aggregate JSON
// the crawler is expected to produce from them. It uses the actual domain
// parser so the expectation matches real pipeline behavior. Serve the output
// directory with any static file server and point ELECWARN_URL_<ID> at it to
// crawl against mocks.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/kuropen/elecwarn/internal/domain"
	"github.com/kuropen/elecwarn/internal/mockdata"
)

// The fixture day, frozen so generated files and the expected aggregate are
// reproducible. 13:35 JST is the latest populated five-minute slot.
var fixtureTime = time.Date(2026, time.July, 1, 13, 35, 0, 0, domain.JST)

// Fixture peak supply (万kW) and target usage percentage per region,
// covering every warning level.
type fixtureSpec struct {
	peakSupply float64
	percent    float64
}

var fixtures = map[string]fixtureSpec{
	"tokyo":    {peakSupply: 5461, percent: 88.5},
	"tohoku":   {peakSupply: 1437, percent: 93.2}, // warning
	"hokkaido": {peakSupply: 525, percent: 85.0},
	"chubu":    {peakSupply: 2563, percent: 90.1},
	"hokuriku": {peakSupply: 542, percent: 87.3},
	"kansai":   {peakSupply: 2849, percent: 95.6}, // alert
	"chugoku":  {peakSupply: 1138, percent: 89.9},
	"shikoku":  {peakSupply: 543, percent: 91.0},
	"kyushu":   {peakSupply: 1631, percent: 97.4}, // severe
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out", "", "output directory for fixture CSVs and expected.json")
	flag.Parse()

	if *outDir == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return err
	}

	domain.SetClock(clockwork.NewFakeClockAt(fixtureTime))
	defer domain.SetClock(nil)

	results := make([]domain.RegionResult, 0, len(fixtures))
	for _, region := range domain.DefaultRegions() {
		spec, ok := fixtures[region.ID]
		if !ok {
			return fmt.Errorf("no fixture spec for region %q", region.ID)
		}

		csv, err := mockdata.JuyoCSV(region.Layout, spec.peakSupply, spec.percent, fixtureTime)
		if err != nil {
			return fmt.Errorf("build %s fixture: %w", region.ID, err)
		}
		path := filepath.Join(*outDir, region.ID+".csv")
		if err := os.WriteFile(path, csv, 0o644); err != nil {
			return err
		}

		data, err := domain.ParseJuyo(csv, region.Layout)
		if err != nil {
			return fmt.Errorf("fixture for %s does not parse: %w", region.ID, err)
		}
		results = append(results, domain.Success(domain.BuildReport(region, data)))
		log.Printf("%s: peak %v, usage %.1f%%", region.ID, spec.peakSupply, spec.percent)
	}

	expected := domain.AggregateReport{GeneratedAt: fixtureTime, Results: results}
	data, err := json.MarshalIndent(expected, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(*outDir, "expected.json"), append(data, '\n'), 0o644)
}
