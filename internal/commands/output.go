package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/balkashynov/sleeplog/internal/models"
	"github.com/balkashynov/sleeplog/internal/sleep"
	"github.com/balkashynov/sleeplog/internal/tui"
)

// printJSON writes v to stdout as indented JSON
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// sessionRow prints one session as a table row
func sessionRow(s models.Session) {
	mins := sleep.MinutesBetween(s.Start, s.End)
	fmt.Printf("%-10s %-5s %s → %s  %8s  %s  %s\n",
		shortID(s.ID), s.Type,
		s.Start.Format("Mon 15:04"), s.End.Format("Mon 15:04"),
		sleep.FormatHoursMinutes(mins), tui.Stars(s.RatingValue()), s.Note)
}

func goalMark(d sleep.DaySummary) string {
	if d.Reached {
		return "✓"
	}
	return " "
}
