// Package sleep holds the day-attribution and aggregation engine. Every function
// here is pure: callers pass in sessions and settings and get derived values back.
package sleep

import (
	"fmt"
	"math"
	"time"
)

// MinutesBetween returns the rounded minute difference between start and end.
// Inverted or empty ranges clamp to 0; validation of manual entries happens in
// ValidateManual, not here.
func MinutesBetween(start, end time.Time) int {
	mins := math.Round(end.Sub(start).Minutes())
	if mins < 0 {
		return 0
	}
	return int(mins)
}

// SessionScore weights a session's length by its rating
func SessionScore(minutes, rating int) float64 {
	return float64(minutes) / 60 * float64(rating)
}

// FormatHours renders minutes as hours with one decimal, e.g. "7.5h"
func FormatHours(totalMinutes int) string {
	return fmt.Sprintf("%.1fh", float64(totalMinutes)/60)
}

// FormatHoursMinutes renders minutes as "7h 30m"
func FormatHoursMinutes(totalMinutes int) string {
	h := totalMinutes / 60
	m := totalMinutes % 60
	return fmt.Sprintf("%dh %dm", h, m)
}
