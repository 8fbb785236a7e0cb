package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/sleeplog/internal/app"
	"github.com/balkashynov/sleeplog/internal/parser"
	"github.com/balkashynov/sleeplog/internal/sleep"
)

var dayCmd = &cobra.Command{
	Use:     "day [date]",
	Aliases: []string{"today"},
	Short:   "Show the sessions of one day",
	Long: `Show the sessions attributed to one day, with totals and score.
A sleep belongs to the day it started on, except that starts before the day
boundary (default 02:00) count for the previous day.

Dates: today, yesterday, 3d, "3 days ago", 2024-01-15, 15/01/2024`,
	Args: cobra.ArbitraryArgs,
	RunE: withProfile(func(cmd *cobra.Command, args []string, a *app.App) error {
		date := a.Today()
		if len(args) > 0 {
			d, err := parser.ParseDate(strings.Join(args, " "), a.Now())
			if err != nil {
				return err
			}
			date = d.Format(sleep.DateLayout)
		}

		day, err := a.Day(cmd.Context(), date)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(day)
		}

		fmt.Printf("📅 %s\n\n", parser.FormatDay(day.Date, a.Today()))
		if len(day.Sessions) == 0 {
			fmt.Println("No sleep logged.")
			return nil
		}

		for _, s := range day.Sessions {
			sessionRow(s)
		}
		fmt.Println(strings.Repeat("-", 60))
		fmt.Printf("Total %s of %s goal, score %.1f %s\n",
			sleep.FormatHoursMinutes(day.Totals.TotalMinutes),
			sleep.FormatHoursMinutes(a.GoalMinutes()), day.Totals.Score, goalMark(day))
		return nil
	}),
}

func init() {
	dayCmd.Flags().Bool("json", false, "JSON output")
}
