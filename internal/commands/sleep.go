package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/balkashynov/sleeplog/internal/app"
	"github.com/balkashynov/sleeplog/internal/models"
	"github.com/balkashynov/sleeplog/internal/sleep"
	"github.com/balkashynov/sleeplog/internal/tui"
)

var startCmd = &cobra.Command{
	Use:   "start [main|nap]",
	Short: "Start a sleep now",
	Long: `Start a sleep now. Opens the sleep timer by default, use --no-ui to just record the start.
Starting while a sleep is already running changes nothing.

Examples:
  sleeplog start              # Main sleep with the timer
  sleeplog start nap --no-ui  # Nap, no timer`,
	Args: cobra.MaximumNArgs(1),
	RunE: withProfile(func(cmd *cobra.Command, args []string, a *app.App) error {
		typ := models.SleepMain
		if len(args) == 1 {
			typ = models.SleepType(strings.ToLower(args[0]))
		}
		note, _ := cmd.Flags().GetString("note")

		active, started, err := a.StartSleep(cmd.Context(), typ, note)
		if err != nil {
			return err
		}

		since := active.Start.In(a.Location())
		if started {
			fmt.Printf("🌙 %s started at %s\n", strings.ToUpper(string(active.Type[:1]))+string(active.Type[1:]), since.Format("15:04"))
		} else {
			fmt.Printf("😴 Already sleeping since %s (%s)\n", since.Format("15:04"), humanize.Time(active.Start))
		}

		if useUI(cmd) {
			return tui.RunSleepTimer(cmd.Context(), a)
		}
		return nil
	}),
}

var endCmd = &cobra.Command{
	Use:     "end",
	Aliases: []string{"wake"},
	Short:   "End the current sleep and rate it",
	Long: `End the current sleep. A rating from 1 to 5 is required; without --rating
you are asked for one.

Examples:
  sleeplog end -r 4
  sleeplog end -r 2 --note "woke up at 4"`,
	RunE: withProfile(func(cmd *cobra.Command, args []string, a *app.App) error {
		if !a.Status().Sleeping() {
			fmt.Println("No sleep in progress. Use 'sleeplog start' to begin one.")
			return nil
		}

		rating, _ := cmd.Flags().GetInt("rating")
		if rating == 0 {
			if !isTerminal() {
				return fmt.Errorf("rating is required (--rating 1-5)")
			}
			r, err := askRating()
			if err != nil {
				return err
			}
			rating = r
		}
		if rating < 1 || rating > 5 {
			return fmt.Errorf("rating must be between 1 and 5")
		}
		note, _ := cmd.Flags().GetString("note")

		s, err := a.EndSleep(cmd.Context(), rating, note)
		if err != nil {
			return err
		}
		if s != nil {
			tui.PrintEnded(s)
		}
		return nil
	}),
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether you are asleep and today's total",
	RunE: withProfile(func(cmd *cobra.Command, args []string, a *app.App) error {
		st := a.Status()
		fmt.Printf("👤 %s\n", st.Profile.Name)

		if st.Sleeping() {
			since := st.Active.Start.In(a.Location())
			fmt.Printf("😴 %s since %s (%s)\n", st.Active.Type, since.Format("Mon 15:04"), humanize.Time(st.Active.Start))
			fmt.Printf("Elapsed: %s of %s goal\n", formatElapsed(st.Elapsed), sleep.FormatHoursMinutes(a.GoalMinutes()))
		} else {
			fmt.Println("☀️  Awake")
		}

		day, err := a.Day(cmd.Context(), a.Today())
		if err != nil {
			return err
		}
		mark := ""
		if day.Reached {
			mark = " ✓ goal reached"
		}
		fmt.Printf("Today (%s): %s, score %.1f%s\n", day.Date, sleep.FormatHoursMinutes(day.Totals.TotalMinutes), day.Totals.Score, mark)
		return nil
	}),
}

func init() {
	startCmd.Flags().Bool("no-ui", false, "Start without the interactive timer")
	startCmd.Flags().String("note", "", "Note kept with the sleep")

	endCmd.Flags().IntP("rating", "r", 0, "How well you slept, 1-5")
	endCmd.Flags().String("note", "", "Note for the session (defaults to the start note)")
}

// formatElapsed formats a duration in a human-readable way
func formatElapsed(d time.Duration) string {
	if d.Hours() >= 1 {
		return sleep.FormatHoursMinutes(int(d.Minutes()))
	} else if d.Minutes() >= 1 {
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
	return fmt.Sprintf("%.0fs", d.Seconds())
}
