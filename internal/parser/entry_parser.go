package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/balkashynov/sleeplog/internal/models"
)

var (
	rangeRegex  = regexp.MustCompile(`\b(\d{1,2}:\d{2})\s*-\s*(\d{1,2}:\d{2})\b`)
	typeRegex   = regexp.MustCompile(`@([a-zA-Z]+)`)
	ratingRegex = regexp.MustCompile(`\+(\S+)`)
	onRegex     = regexp.MustCompile(`on:(\S+)`)
)

// ParsedEntry represents a manual sleep entry parsed from one line
type ParsedEntry struct {
	Type   models.SleepType
	Start  time.Time
	End    time.Time
	Rating int
	Note   string
	Errors []string
}

// Valid reports whether parsing produced no errors
func (p ParsedEntry) Valid() bool {
	return len(p.Errors) == 0
}

// ParseEntry extracts a sleep entry from a single line relative to now.
// Syntax: "23:00-07:30 @nap +4 on:yesterday any note text"
//
// The start lands on the on: day (default today). An end clock at or before the
// start clock rolls over to the next day. Without on:, a start that would lie
// in the future is moved back one day.
func ParseEntry(input string, now time.Time) ParsedEntry {
	result := ParsedEntry{
		Type:   models.SleepMain,
		Errors: []string{},
	}

	// Extract the day (on:yesterday, on:2024-01-15)
	day := now
	explicitDay := false
	if matches := onRegex.FindStringSubmatch(input); len(matches) > 1 {
		d, err := ParseDate(matches[1], now)
		if err != nil {
			result.Errors = append(result.Errors, "Invalid day '"+matches[1]+"': "+err.Error())
		} else {
			day = d
			explicitDay = true
		}
		input = onRegex.ReplaceAllString(input, "")
	}

	// Extract the time range (23:00-07:30)
	if matches := rangeRegex.FindStringSubmatch(input); len(matches) == 3 {
		sh, sm, serr := ParseClock(matches[1])
		eh, em, eerr := ParseClock(matches[2])
		switch {
		case serr != nil:
			result.Errors = append(result.Errors, serr.Error())
		case eerr != nil:
			result.Errors = append(result.Errors, eerr.Error())
		default:
			result.Start = At(day, sh, sm)
			result.End = At(day, eh, em)
			if !result.End.After(result.Start) {
				result.End = result.End.AddDate(0, 0, 1)
			}
			if !explicitDay && result.Start.After(now) {
				result.Start = result.Start.AddDate(0, 0, -1)
				result.End = result.End.AddDate(0, 0, -1)
			}
		}
		input = rangeRegex.ReplaceAllString(input, "")
	} else {
		result.Errors = append(result.Errors, "Missing time range. Use e.g. 23:00-07:30")
	}

	// Extract type (@main, @nap)
	if matches := typeRegex.FindStringSubmatch(input); len(matches) > 1 {
		typ := models.SleepType(strings.ToLower(matches[1]))
		if typ.Valid() {
			result.Type = typ
		} else {
			result.Errors = append(result.Errors, "Invalid type '"+matches[1]+"'. Use: @main or @nap")
		}
		input = typeRegex.ReplaceAllString(input, "")
	}

	// Extract rating (+1 .. +5)
	if matches := ratingRegex.FindStringSubmatch(input); len(matches) > 1 {
		r, err := strconv.Atoi(matches[1])
		if err != nil || r < 1 || r > 5 {
			result.Errors = append(result.Errors, "Invalid rating '"+matches[1]+"'. Use: +1 to +5")
		} else {
			result.Rating = r
		}
		input = ratingRegex.ReplaceAllString(input, "")
	}

	// Whatever is left is the note
	result.Note = strings.Join(strings.Fields(input), " ")

	return result
}
