package domain

import (
	"fmt"
	"strings"
	"time"
)

// datePlaceholder is substituted with the current JST date (YYYYMMDD) in
// region URLs whose upstream embeds the date in the filename.
const datePlaceholder = "{date}"

// Layout describes where the demand tables start within a juyo CSV.
// Most companies use the common offsets; Kansai shifts both tables down
// by four lines.
type Layout struct {
	HourlyStart  int
	FiveMinStart int
}

// StandardLayout is the table layout shared by eight of the nine companies.
var StandardLayout = Layout{HourlyStart: 7, FiveMinStart: 42}

// Region is one power company's service area and its upstream configuration.
// Regions are defined once at startup and never mutated.
type Region struct {
	ID     string // stable machine identifier, e.g. "tohoku"
	Name   string // company display name, e.g. "東北電力"
	URL    string // juyo CSV endpoint, may contain {date}
	Layout Layout

	// Unstable marks a region whose upstream is known to fail during
	// certain windows. The output contract checker exempts these regions
	// from the no-error smoke test.
	Unstable bool
}

// ResolveURL returns the concrete endpoint for the given day.
func (r Region) ResolveURL(day time.Time) string {
	if !strings.Contains(r.URL, datePlaceholder) {
		return r.URL
	}
	return strings.ReplaceAll(r.URL, datePlaceholder, day.In(JST).Format("20060102"))
}

// DefaultRegions returns the nine regional power companies in publication
// order. The slice is freshly allocated so callers may reorder or trim it.
func DefaultRegions() []Region {
	return []Region{
		{ID: "tokyo", Name: "東京電力パワーグリッド", URL: "http://www.tepco.co.jp/forecast/html/images/juyo-j.csv", Layout: StandardLayout},
		{ID: "tohoku", Name: "東北電力", URL: "http://setsuden.tohoku-epco.co.jp/common/demand/juyo_02_{date}.csv", Layout: StandardLayout, Unstable: true},
		{ID: "hokkaido", Name: "北海道電力", URL: "http://denkiyoho.hepco.co.jp/data/juyo_juyo_01_{date}.csv", Layout: StandardLayout},
		{ID: "chubu", Name: "中部電力", URL: "http://denki-yoho.chuden.jp/denki_yoho_content_data/juyo_cepco003.csv", Layout: StandardLayout},
		{ID: "hokuriku", Name: "北陸電力", URL: "http://www.rikuden.co.jp/denki-yoho/csv/juyo_05_{date}.csv", Layout: StandardLayout},
		{ID: "kansai", Name: "関西電力", URL: "http://www.kepco.co.jp/yamasou/juyo1_kansai.csv", Layout: Layout{HourlyStart: 11, FiveMinStart: 46}},
		{ID: "chugoku", Name: "中国電力", URL: "http://www.energia.co.jp/jukyuu/sys/juyo_07_{date}.csv", Layout: StandardLayout},
		{ID: "shikoku", Name: "四国電力", URL: "http://www.yonden.co.jp/denkiyoho/juyo_shikoku.csv", Layout: StandardLayout},
		{ID: "kyushu", Name: "九州電力", URL: "http://www.kyuden.co.jp/power_usages/csv/juyo-hourly-{date}.csv", Layout: StandardLayout},
	}
}

// SelectRegions resolves a configured region list against the default
// registry. An empty id list selects every region in default order;
// otherwise the result follows the requested order. URL overrides replace
// a region's endpoint wholesale (used to point a crawl at mock upstreams).
func SelectRegions(ids []string, urlOverrides map[string]string) ([]Region, error) {
	all := DefaultRegions()
	byID := make(map[string]Region, len(all))
	for _, r := range all {
		byID[r.ID] = r
	}

	var selected []Region
	if len(ids) == 0 {
		selected = all
	} else {
		selected = make([]Region, 0, len(ids))
		seen := make(map[string]bool, len(ids))
		for _, id := range ids {
			r, ok := byID[id]
			if !ok {
				return nil, fmt.Errorf("unknown region %q", id)
			}
			if seen[id] {
				return nil, fmt.Errorf("region %q listed twice", id)
			}
			seen[id] = true
			selected = append(selected, r)
		}
	}

	for i := range selected {
		if u, ok := urlOverrides[selected[i].ID]; ok {
			selected[i].URL = u
		}
	}
	return selected, nil
}
