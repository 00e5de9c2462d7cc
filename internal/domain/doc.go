// Package domain models the electricity demand ("juyo") data published by
// the Japanese regional power companies.
//
// # Data Source
//
// Each of the nine regional transmission operators publishes a demand
// forecast CSV (the "denki yoho" / juyo file) on its public website, updated
// every few minutes during the day. The files share a common layout but are
// hosted at company-specific URLs; several companies embed the current date
// in the filename (e.g. juyo_02_20260828.csv for Tohoku).
//
// # Juyo CSV Conventions
//
// Encoding:
//
//	Shift-JIS (CP932). Line endings are CRLF. All timestamps are JST.
//
// Layout (line indices are zero-based):
//
//	Line 0: update stamp, e.g. "2026/8/28 14:45 UPDATE"
//	Line 1: header "ピーク時供給力(万kW),時台,..."
//	Line 2: peak supply row; the first comma field is the peak-time supply
//	        capacity in units of 万kW (ten thousand kilowatts).
//	Hourly table: header plus 24 rows of
//	        "DATE,TIME,当日実績(万kW),予測値(万kW),使用率(%)"
//	        starting at line 7 (line 11 for Kansai).
//	Five-minute table: header plus 288 rows of "DATE,TIME,当日実績(万kW)"
//	        starting at line 42 (line 46 for Kansai).
//
// Rows for time slots that have not happened yet carry an empty demand
// field (sometimes "-"). The latest reading is the last row with a numeric
// demand. Dates are "2026/8/28" (unpadded month/day), times are "14:35".
//
// # Warning Levels
//
// Usage percentage is the latest demand divided by peak supply. The
// classification follows the thresholds used in official supply-demand
// announcements:
//
//	> 97%  Severe  (緊急警報)
//	> 95%  Alert   (警報)
//	> 92%  Warning (注意報)
//	else   Normal
//
// Unknown is reserved for records where no percentage could be derived.
//
// # Known Quirks
//
// Tohoku publishes its dated CSV only while the forecast window is open;
// outside it the URL returns 404. Some companies briefly serve truncated
// files during the nightly rollover. Both cases are classified as fetch
// errors for that region and never abort a crawl.
package domain
