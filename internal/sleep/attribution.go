package sleep

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// DateLayout is the calendar key format used for attributed days
const DateLayout = "2006-01-02"

// DefaultBoundary is the day cutoff for new profiles
const DefaultBoundary = "02:00"

var boundaryRegex = regexp.MustCompile(`^(\d{2}):(\d{2})$`)

// Boundary is the time of day before which a sleep counts toward the previous day
type Boundary struct {
	Hour   int
	Minute int
}

// ParseBoundary parses a 24-hour "HH:mm" string
func ParseBoundary(s string) (Boundary, error) {
	matches := boundaryRegex.FindStringSubmatch(s)
	if len(matches) != 3 {
		return Boundary{}, fmt.Errorf("invalid day boundary %q. Use HH:mm (24-hour)", s)
	}

	hour, _ := strconv.Atoi(matches[1])
	minute, _ := strconv.Atoi(matches[2])
	if hour > 23 || minute > 59 {
		return Boundary{}, fmt.Errorf("invalid day boundary %q. Hour must be 00-23 and minute 00-59", s)
	}

	return Boundary{Hour: hour, Minute: minute}, nil
}

// MustParseBoundary is ParseBoundary for known-good constants
func MustParseBoundary(s string) Boundary {
	b, err := ParseBoundary(s)
	if err != nil {
		panic(err)
	}
	return b
}

// String renders the boundary as "HH:mm"
func (b Boundary) String() string {
	return fmt.Sprintf("%02d:%02d", b.Hour, b.Minute)
}

// before reports whether the wall clock of t is strictly earlier than the boundary
func (b Boundary) before(t time.Time) bool {
	return t.Hour() < b.Hour || (t.Hour() == b.Hour && t.Minute() < b.Minute)
}

// AttributedDate returns the calendar day a session starting at start counts toward.
// Only the start's own wall clock is examined; the end time never matters.
func AttributedDate(start time.Time, b Boundary) string {
	if b.before(start) {
		return start.AddDate(0, 0, -1).Format(DateLayout)
	}
	return start.Format(DateLayout)
}
