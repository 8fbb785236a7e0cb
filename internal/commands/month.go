package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/sleeplog/internal/app"
	"github.com/balkashynov/sleeplog/internal/parser"
	"github.com/balkashynov/sleeplog/internal/sleep"
	"github.com/balkashynov/sleeplog/internal/tui"
)

var monthCmd = &cobra.Command{
	Use:     "month [yyyy-mm]",
	Aliases: []string{"cal", "calendar"},
	Short:   "Browse a month in the calendar",
	Long: `Open the month calendar. Days that reached the sleep goal are highlighted.
Use --no-ui or --json for plain output.`,
	Args: cobra.MaximumNArgs(1),
	RunE: withProfile(func(cmd *cobra.Command, args []string, a *app.App) error {
		year, month := a.ThisMonth()
		if len(args) == 1 {
			t, err := time.Parse("2006-01", args[0])
			if err != nil {
				return fmt.Errorf("invalid month %q, use yyyy-mm", args[0])
			}
			year, month = t.Year(), t.Month()
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		if !asJSON && len(args) == 0 && useUI(cmd) {
			return tui.RunCalendar(cmd.Context(), a)
		}

		sum, err := a.Month(cmd.Context(), year, month)
		if err != nil {
			return err
		}
		if asJSON {
			return printJSON(sum)
		}

		fmt.Printf("📅 %s %d\n\n", month, year)
		today := a.Today()
		for _, d := range sum.Days {
			if len(d.Sessions) == 0 {
				continue
			}
			fmt.Printf("%s %-24s %8s  score %5.1f\n", goalMark(d), parser.FormatDay(d.Date, today),
				sleep.FormatHoursMinutes(d.Totals.TotalMinutes), d.Totals.Score)
		}
		if sum.DaysWithSleep == 0 {
			fmt.Println("No sleep logged.")
			return nil
		}
		fmt.Printf("\n%d of %d days reached the %s goal, average %s\n", sum.DaysReached, len(sum.Days),
			sleep.FormatHoursMinutes(sum.GoalMinutes), sleep.FormatHoursMinutes(sum.AverageMinutes))
		return nil
	}),
}

func init() {
	monthCmd.Flags().Bool("no-ui", false, "Plain text output")
	monthCmd.Flags().Bool("json", false, "JSON output")
}
