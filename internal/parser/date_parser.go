package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	clockRegex   = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	slashRegex   = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	daysAgoRegex = regexp.MustCompile(`^(\d+)\s*(d|day|days)(\s+ago)?$`)
)

// ParseDate resolves a day reference relative to now. The result is midnight
// in now's location.
// Supported formats:
// - today, yesterday
// - yyyy-mm-dd (e.g., "2024-01-15")
// - dd/mm/yyyy (e.g., "15/01/2024")
// - X days ago (e.g., "3 days ago", "2d")
func ParseDate(input string, now time.Time) (time.Time, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch input {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}

	if t, err := time.ParseInLocation("2006-01-02", input, now.Location()); err == nil {
		return t, nil
	}

	if matches := slashRegex.FindStringSubmatch(input); len(matches) == 4 {
		day, _ := strconv.Atoi(matches[1])
		month, _ := strconv.Atoi(matches[2])
		year, _ := strconv.Atoi(matches[3])

		t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location())
		// Check if date is valid (handles leap years, etc.)
		if t.Day() != day || t.Month() != time.Month(month) || t.Year() != year {
			return time.Time{}, fmt.Errorf("invalid date %q", input)
		}
		return t, nil
	}

	if matches := daysAgoRegex.FindStringSubmatch(input); len(matches) > 1 {
		amount, _ := strconv.Atoi(matches[1])
		if amount > 366 {
			return time.Time{}, fmt.Errorf("days must be between 0 and 366")
		}
		return today.AddDate(0, 0, -amount), nil
	}

	return time.Time{}, fmt.Errorf("invalid date format. Use: today, yesterday, yyyy-mm-dd, dd/mm/yyyy, or X days ago")
}

// ParseClock parses a 24-hour "H:mm" or "HH:mm" time of day
func ParseClock(input string) (hour, minute int, err error) {
	matches := clockRegex.FindStringSubmatch(strings.TrimSpace(input))
	if len(matches) != 3 {
		return 0, 0, fmt.Errorf("invalid time %q. Use HH:mm (24-hour)", input)
	}

	hour, _ = strconv.Atoi(matches[1])
	minute, _ = strconv.Atoi(matches[2])
	if hour > 23 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid time %q. Hour must be 0-23 and minute 00-59", input)
	}
	return hour, minute, nil
}

// At places a clock time on the calendar day of date
func At(date time.Time, hour, minute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())
}

// ParseDateTime parses "yyyy-mm-dd HH:mm", or a bare "HH:mm" on now's day
func ParseDateTime(input string, now time.Time) (time.Time, error) {
	fields := strings.Fields(input)
	switch len(fields) {
	case 1:
		h, m, err := ParseClock(fields[0])
		if err != nil {
			return time.Time{}, err
		}
		return At(now, h, m), nil
	case 2:
		day, err := ParseDate(fields[0], now)
		if err != nil {
			return time.Time{}, err
		}
		h, m, err := ParseClock(fields[1])
		if err != nil {
			return time.Time{}, err
		}
		return At(day, h, m), nil
	default:
		return time.Time{}, fmt.Errorf("invalid date/time %q. Use \"yyyy-mm-dd HH:mm\" or \"HH:mm\"", input)
	}
}

// FormatDay labels an attributed date ("yyyy-mm-dd") for display relative to today
func FormatDay(date, today string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	label := t.Format("Mon 02 Jan")

	ref, err := time.Parse("2006-01-02", today)
	if err != nil {
		return label
	}

	switch int(ref.Sub(t).Hours() / 24) {
	case 0:
		return fmt.Sprintf("Today (%s)", label)
	case 1:
		return fmt.Sprintf("Yesterday (%s)", label)
	default:
		return label
	}
}
