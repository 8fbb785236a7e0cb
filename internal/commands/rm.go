package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/sleeplog/internal/app"
	"github.com/balkashynov/sleeplog/internal/sleep"
)

var rmCmd = &cobra.Command{
	Use:   "rm <session-id>",
	Short: "Delete a sleep session",
	Long: `Delete a sleep session. The id may be shortened to any unique prefix,
as printed by 'sleeplog day'. Deletions are recorded in the audit log.`,
	Args: cobra.ExactArgs(1),
	RunE: withProfile(func(cmd *cobra.Command, args []string, a *app.App) error {
		s, err := a.FindSession(cmd.Context(), args[0])
		if errors.Is(err, app.ErrAmbiguousID) {
			return fmt.Errorf("%q matches more than one session, use more characters", args[0])
		}
		if app.IsNotFound(err) {
			return fmt.Errorf("no session matches %q", args[0])
		}
		if err != nil {
			return err
		}

		loc := a.Location()
		desc := fmt.Sprintf("%s sleep %s → %s (%s)", s.Type,
			s.Start.In(loc).Format("Mon 02 Jan 15:04"), s.End.In(loc).Format("15:04"),
			sleep.FormatHoursMinutes(sleep.MinutesBetween(s.Start, s.End)))
		if !confirm(cmd, "Delete "+desc+"?") {
			fmt.Println("Nothing deleted. Pass --yes to confirm.")
			return nil
		}

		if err := a.DeleteSession(cmd.Context(), s.ID); err != nil {
			return err
		}
		fmt.Printf("🗑️  Deleted %s\n", desc)
		return nil
	}),
}

func init() {
	rmCmd.Flags().BoolP("yes", "y", false, "Delete without asking")
}
