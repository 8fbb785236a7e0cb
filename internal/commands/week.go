package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/sleeplog/internal/app"
	"github.com/balkashynov/sleeplog/internal/parser"
	"github.com/balkashynov/sleeplog/internal/sleep"
)

var weekCmd = &cobra.Command{
	Use:   "week [date]",
	Short: "Show the Monday-to-Sunday week",
	Long: `Show hours slept and score per day for the week containing date (default today).

Example output:
            Mon   Tue   Wed   Thu   Fri   Sat   Sun   Total
  Hours     7.5   6.0   8.2     -     -     -     -    21.7
  Score    30.0  18.0  32.8     -     -     -     -    80.8
  Goal        ✓           ✓                              2/7`,
	Args: cobra.ArbitraryArgs,
	RunE: withProfile(func(cmd *cobra.Command, args []string, a *app.App) error {
		day, err := time.ParseInLocation(sleep.DateLayout, a.Today(), a.Location())
		if err != nil {
			return err
		}
		if len(args) > 0 {
			if day, err = parser.ParseDate(strings.Join(args, " "), a.Now()); err != nil {
				return err
			}
		}

		sum, err := a.Week(cmd.Context(), day)
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(sum)
		}

		displayWeek(sum)
		return nil
	}),
}

// displayWeek outputs the week as a day-by-day table
func displayWeek(sum sleep.Summary) {
	const labelWidth = 8
	const col = 6

	fmt.Printf("%-*s", labelWidth, "")
	for _, d := range sum.Days {
		t, _ := time.Parse(sleep.DateLayout, d.Date)
		fmt.Printf("%*s", col, t.Format("Mon"))
	}
	fmt.Printf("%*s\n", col+2, "Total")
	fmt.Println(strings.Repeat("-", labelWidth+col*len(sum.Days)+col+2))

	fmt.Printf("%-*s", labelWidth, "Hours")
	for _, d := range sum.Days {
		if d.Totals.TotalMinutes > 0 {
			fmt.Printf("%*.1f", col, float64(d.Totals.TotalMinutes)/60)
		} else {
			fmt.Printf("%*s", col, "-")
		}
	}
	fmt.Printf("%*.1f\n", col+2, float64(sum.TotalMinutes)/60)

	fmt.Printf("%-*s", labelWidth, "Score")
	for _, d := range sum.Days {
		if d.Totals.TotalMinutes > 0 {
			fmt.Printf("%*.1f", col, d.Totals.Score)
		} else {
			fmt.Printf("%*s", col, "-")
		}
	}
	fmt.Printf("%*.1f\n", col+2, sum.Score)

	fmt.Printf("%-*s", labelWidth, "Goal")
	for _, d := range sum.Days {
		fmt.Printf("%*s", col, goalMark(d))
	}
	fmt.Printf("%*s\n", col+2, fmt.Sprintf("%d/%d", sum.DaysReached, len(sum.Days)))

	if len(sum.Days) > 0 {
		first, _ := time.Parse(sleep.DateLayout, sum.Days[0].Date)
		last, _ := time.Parse(sleep.DateLayout, sum.Days[len(sum.Days)-1].Date)
		fmt.Printf("\nWeek of %s to %s, goal %s", first.Format("Jan 2"), last.Format("Jan 2, 2006"),
			sleep.FormatHoursMinutes(sum.GoalMinutes))
		if sum.DaysWithSleep > 0 {
			fmt.Printf(", average %s", sleep.FormatHoursMinutes(sum.AverageMinutes))
		}
		fmt.Println()
	}
}

func init() {
	weekCmd.Flags().Bool("json", false, "JSON output")
}
