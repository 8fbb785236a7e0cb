package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/sleeplog/internal/app"
	"github.com/balkashynov/sleeplog/internal/models"
	"github.com/balkashynov/sleeplog/internal/parser"
	"github.com/balkashynov/sleeplog/internal/sleep"
	"github.com/balkashynov/sleeplog/internal/tui"
)

var addCmd = &cobra.Command{
	Use:   "add [entry]",
	Short: "Log a past sleep",
	Long: `Log a sleep that already happened.

Modes:
  Interactive: sleeplog add -i (or just 'sleeplog add' with no arguments)
  Quick: sleeplog add --start "yesterday 23:10" --end 07:05 --rating 4
  Smart parsing: sleeplog add "23:10-07:05 +4 on:yesterday restless"

Smart parsing syntax:
  HH:mm-HH:mm   - Start and end, the end rolls to the next day if needed
  @main, @nap   - Sleep type (default main)
  +1 .. +5      - Rating
  on:<day>      - Day of the start (today, yesterday, 3d, 2024-01-15, 15/01/2024)
  anything else - Note`,
	Args: cobra.ArbitraryArgs,
	RunE: withProfile(func(cmd *cobra.Command, args []string, a *app.App) error {
		interactive, _ := cmd.Flags().GetBool("interactive")
		start, _ := cmd.Flags().GetString("start")

		if len(args) == 0 && start == "" {
			interactive = true
		}
		if interactive {
			if !useUI(cmd) {
				return fmt.Errorf("interactive mode needs a terminal, pass an entry or --start/--end")
			}
			return tui.RunAddWizard(cmd.Context(), a, prefillFromFlags(cmd, nil))
		}

		var entry app.ManualEntry
		var problems []string
		if len(args) > 0 {
			parsed := parser.ParseEntry(strings.Join(args, " "), a.Now())
			problems = parsed.Errors
			entry = app.ManualEntry{Type: parsed.Type, Start: parsed.Start, End: parsed.End, Rating: parsed.Rating, Note: parsed.Note}
		} else {
			entry, problems = entryFromFlags(cmd, a)
		}
		if err := applyFlags(cmd, &entry); err != nil {
			problems = append(problems, err.Error())
		}
		if entry.Rating == 0 {
			problems = append(problems, "Missing rating. Use +1 to +5 or --rating")
		}

		if len(problems) > 0 {
			fmt.Printf("⚠️  Found issues with parsing: %s\n", strings.Join(problems, ", "))
			if !useUI(cmd) {
				return fmt.Errorf("entry not saved")
			}
			fmt.Println("Opening interactive mode for confirmation...")
			return tui.RunAddWizard(cmd.Context(), a, prefillFromFlags(cmd, &entry))
		}

		s, err := a.AddManual(cmd.Context(), entry)
		if sleep.IsValidation(err) {
			return fmt.Errorf("entry rejected: %w", err)
		}
		if err != nil {
			return err
		}

		loc := a.Location()
		fmt.Printf("✅ Logged %s sleep %s → %s (%s) [%s]\n", s.Type,
			s.Start.In(loc).Format("Mon 02 Jan 15:04"), s.End.In(loc).Format("15:04"),
			sleep.FormatHoursMinutes(sleep.MinutesBetween(s.Start, s.End)), shortID(s.ID))
		return nil
	}),
}

// entryFromFlags builds an entry from --start and --end
func entryFromFlags(cmd *cobra.Command, a *app.App) (app.ManualEntry, []string) {
	var entry app.ManualEntry
	var problems []string
	now := a.Now()

	startStr, _ := cmd.Flags().GetString("start")
	endStr, _ := cmd.Flags().GetString("end")

	start, err := parser.ParseDateTime(startStr, now)
	if err != nil {
		problems = append(problems, "Invalid start: "+err.Error())
	} else if !strings.Contains(strings.TrimSpace(startStr), " ") && start.After(now) {
		start = start.AddDate(0, 0, -1)
	}
	entry.Start = start

	if endStr == "" {
		problems = append(problems, "Missing --end")
		return entry, problems
	}
	// A bare clock is read on the start day, a full date relative to today.
	bare := !strings.Contains(strings.TrimSpace(endStr), " ")
	ref := now
	if bare && !start.IsZero() {
		ref = start
	}
	end, err := parser.ParseDateTime(endStr, ref)
	if err != nil {
		problems = append(problems, "Invalid end: "+err.Error())
	} else if bare && !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	entry.End = end
	return entry, problems
}

// applyFlags overrides parsed values with explicit flags
func applyFlags(cmd *cobra.Command, entry *app.ManualEntry) error {
	if typ, _ := cmd.Flags().GetString("type"); typ != "" {
		t := models.SleepType(strings.ToLower(typ))
		if !t.Valid() {
			return fmt.Errorf("invalid type '%s'. Use: main or nap", typ)
		}
		entry.Type = t
	}
	if cmd.Flags().Changed("rating") {
		r, _ := cmd.Flags().GetInt("rating")
		if r < 1 || r > 5 {
			return fmt.Errorf("invalid rating '%d'. Use: 1 to 5", r)
		}
		entry.Rating = r
	}
	if note, _ := cmd.Flags().GetString("note"); note != "" {
		entry.Note = note
	}
	return nil
}

// prefillFromFlags converts a partial entry and flags into wizard input
func prefillFromFlags(cmd *cobra.Command, entry *app.ManualEntry) map[string]string {
	prefilled := make(map[string]string)

	if entry != nil {
		if entry.Type != "" {
			prefilled["type"] = string(entry.Type)
		}
		if !entry.Start.IsZero() {
			prefilled["start"] = entry.Start.Format("2006-01-02 15:04")
		}
		if !entry.End.IsZero() {
			prefilled["end"] = entry.End.Format("2006-01-02 15:04")
		}
		if entry.Rating > 0 {
			prefilled["rating"] = strconv.Itoa(entry.Rating)
		}
		if entry.Note != "" {
			prefilled["note"] = entry.Note
		}
	}

	if typ, _ := cmd.Flags().GetString("type"); typ != "" {
		prefilled["type"] = typ
	}
	if start, _ := cmd.Flags().GetString("start"); start != "" && prefilled["start"] == "" {
		prefilled["start"] = start
	}
	if end, _ := cmd.Flags().GetString("end"); end != "" && prefilled["end"] == "" {
		prefilled["end"] = end
	}
	if cmd.Flags().Changed("rating") {
		r, _ := cmd.Flags().GetInt("rating")
		prefilled["rating"] = strconv.Itoa(r)
	}
	if note, _ := cmd.Flags().GetString("note"); note != "" {
		prefilled["note"] = note
	}
	return prefilled
}

func init() {
	addCmd.Flags().BoolP("interactive", "i", false, "Use the interactive wizard")
	addCmd.Flags().Bool("no-ui", false, "Never open the interactive wizard")
	addCmd.Flags().String("start", "", "Start: HH:mm or <day> HH:mm")
	addCmd.Flags().String("end", "", "End: HH:mm or <day> HH:mm")
	addCmd.Flags().StringP("type", "t", "", "Sleep type: main|nap")
	addCmd.Flags().IntP("rating", "r", 0, "How well you slept, 1-5")
	addCmd.Flags().String("note", "", "Note for the session")
}
