// Package mockdata builds synthetic juyo CSV payloads for tests and the
// genmock fixture generator. Files are rendered exactly the way the
// upstreams publish them: Shift-JIS, CRLF, with the region's table layout
// and empty demand fields for future time slots.
package mockdata

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/kuropen/elecwarn/internal/domain"
)

// JuyoCSV renders one juyo file with constant demand at the given usage
// percentage through `at`, the latest populated five-minute slot.
func JuyoCSV(layout domain.Layout, peakSupply, percent float64, at time.Time) ([]byte, error) {
	at = at.In(domain.JST)
	demand := fmt.Sprintf("%.0f", peakSupply*percent/100)
	date := at.Format("2006/1/2")

	var lines []string
	add := func(s string) { lines = append(lines, s) }

	add(at.Format("2006/1/2 15:04") + " UPDATE")
	add("ピーク時供給力(万kW),時台,供給力情報更新日,供給力情報更新時刻")
	add(fmt.Sprintf("%.0f,14:00,%s,8:30", peakSupply, at.Format("1/2")))
	for len(lines) < layout.HourlyStart {
		add("")
	}

	add("DATE,TIME,当日実績(万kW),予測値(万kW),使用率(%)")
	for hour := 0; hour < 24; hour++ {
		slot := fmt.Sprintf("%s,%d:00", date, hour)
		if hour <= at.Hour() {
			add(fmt.Sprintf("%s,%s,%s,%.0f", slot, demand, demand, percent))
		} else {
			add(slot + ",,,")
		}
	}
	for len(lines) < layout.FiveMinStart {
		add("")
	}

	add("DATE,TIME,当日実績(万kW)")
	for slot := 0; slot < 288; slot++ {
		slotTime := time.Date(at.Year(), at.Month(), at.Day(), 0, slot*5, 0, 0, domain.JST)
		row := fmt.Sprintf("%s,%s,", date, slotTime.Format("15:04"))
		if !slotTime.After(at) {
			row += demand
		}
		add(row)
	}

	return EncodeShiftJIS(strings.Join(lines, "\r\n") + "\r\n")
}

// EncodeShiftJIS converts UTF-8 text to the upstreams' wire encoding.
func EncodeShiftJIS(text string) ([]byte, error) {
	encoded, _, err := transform.Bytes(japanese.ShiftJIS.NewEncoder(), []byte(text))
	return encoded, err
}
