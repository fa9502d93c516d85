package model

import (
	"fmt"
	"strings"
	"time"
)

// StandardTimeLayout is the preferred format for timestamps the planner
// writes into plan output
const StandardTimeLayout = "2006-01-02T15:04:05.999999999Z"

// Time ranges arrive from several sources (CLI flags, HTTP queries, scene
// metadata) that do not agree on a single format, so parsing is lenient
// and matches against each accepted layout in turn.
var acceptedTimeLayouts = []string{
	"2006-01-02T15:04:05.999999999Z",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"20060102T15:04:05",
}

// ParseFlexibleTime is a drop-in replacement for time.Parse matching against
// multiple accepted layouts. Timestamps with a leap-second-style ":60"
// seconds field, which some ground station metadata emits, are rolled over
// into the next minute.
func ParseFlexibleTime(value string) (time.Time, error) {
	for _, layout := range acceptedTimeLayouts {
		if output, err := time.Parse(layout, value); err == nil {
			return output, nil
		}
	}

	if strings.HasSuffix(value, "60") {
		rolled, err := ParseFlexibleTime(value[:len(value)-2] + "00")
		if err == nil {
			return rolled.Add(time.Minute), nil
		}
	}

	return time.Time{}, fmt.Errorf("Date could not be parsed by any expected time format: `%s`", value)
}
