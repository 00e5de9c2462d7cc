package domain

import (
	"encoding/json"
	"fmt"
)

// StatusLevel is the ordered severity classification of supply conditions.
// Higher values are more severe.
type StatusLevel int

const (
	StatusUnknown StatusLevel = iota
	StatusNormal
	StatusWarning // 注意報
	StatusAlert   // 警報
	StatusSevere  // 緊急警報
)

// Usage-percentage thresholds for the warning levels, matching the official
// supply-demand announcement criteria.
const (
	warningThreshold = 92.0
	alertThreshold   = 95.0
	severeThreshold  = 97.0
)

// StatusForUsage classifies a usage percentage into a warning level.
func StatusForUsage(percent float64) StatusLevel {
	switch {
	case percent > severeThreshold:
		return StatusSevere
	case percent > alertThreshold:
		return StatusAlert
	case percent > warningThreshold:
		return StatusWarning
	default:
		return StatusNormal
	}
}

var statusNames = map[StatusLevel]string{
	StatusUnknown: "unknown",
	StatusNormal:  "normal",
	StatusWarning: "warning",
	StatusAlert:   "alert",
	StatusSevere:  "severe",
}

func (s StatusLevel) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// Kanji returns the Japanese announcement label for the level, or the empty
// string for levels that carry no announcement.
func (s StatusLevel) Kanji() string {
	switch s {
	case StatusWarning:
		return "注意報"
	case StatusAlert:
		return "警報"
	case StatusSevere:
		return "緊急警報"
	default:
		return ""
	}
}

// MarshalJSON encodes the level as its lowercase name.
func (s StatusLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts a lowercase level name.
func (s *StatusLevel) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for level, n := range statusNames {
		if n == name {
			*s = level
			return nil
		}
	}
	return fmt.Errorf("unknown status level %q", name)
}
