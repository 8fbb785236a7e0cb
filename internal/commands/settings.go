package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/sleeplog/internal/app"
	"github.com/balkashynov/sleeplog/internal/parser"
	"github.com/balkashynov/sleeplog/internal/sleep"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the sleep goal, day boundary and theme",
	Long: `Show the current profile's settings, or change them with flags.

Examples:
  sleeplog settings
  sleeplog settings --goal 7:30
  sleeplog settings --goal-hours 8 --boundary 03:00
  sleeplog settings --theme light`,
	RunE: withProfile(func(cmd *cobra.Command, args []string, a *app.App) error {
		var u app.SettingsUpdate
		changed := false

		if goalStr, _ := cmd.Flags().GetString("goal"); goalStr != "" {
			mins, err := parseGoal(goalStr)
			if err != nil {
				return err
			}
			u.GoalMinutes = &mins
			changed = true
		}
		if cmd.Flags().Changed("goal-hours") {
			h, _ := cmd.Flags().GetInt("goal-hours")
			u.GoalHours = &h
			changed = true
		}
		if b, _ := cmd.Flags().GetString("boundary"); b != "" {
			u.Boundary = &b
			changed = true
		}
		if theme, _ := cmd.Flags().GetString("theme"); theme != "" {
			theme = strings.ToLower(theme)
			u.Theme = &theme
			changed = true
		}

		if changed {
			if err := a.UpdateSettings(cmd.Context(), u); err != nil {
				return err
			}
			fmt.Println("✅ Settings saved")
		}

		s := a.Settings()
		fmt.Printf("👤 %s\n", a.Profile().Name)
		fmt.Printf("  Sleep goal:    %s\n", sleep.FormatHoursMinutes(a.GoalMinutes()))
		fmt.Printf("  Day boundary:  %s\n", a.Boundary())
		fmt.Printf("  Theme:         %s\n", s.Theme)
		fmt.Printf("  Timezone:      %s\n", a.Location())
		return nil
	}),
}

// parseGoal reads a goal as "7:30", "7h30m", "8h" or plain minutes
func parseGoal(input string) (int, error) {
	input = strings.TrimSpace(input)
	if strings.Contains(input, ":") {
		h, m, err := parser.ParseClock(input)
		if err != nil {
			return 0, fmt.Errorf("invalid goal %q: %w", input, err)
		}
		return h*60 + m, nil
	}
	if mins, err := strconv.Atoi(input); err == nil {
		return mins, nil
	}
	d, err := time.ParseDuration(input)
	if err != nil {
		return 0, fmt.Errorf("invalid goal %q. Use 7:30, 7h30m or minutes", input)
	}
	return int(d.Minutes()), nil
}

func init() {
	settingsCmd.Flags().String("goal", "", "Daily sleep goal: 7:30, 7h30m or minutes")
	settingsCmd.Flags().Int("goal-hours", 0, "Daily sleep goal in whole hours")
	settingsCmd.Flags().String("boundary", "", "Day boundary HH:mm, sleeps starting earlier count for the previous day")
	settingsCmd.Flags().String("theme", "", "Theme: dark|light")
}
