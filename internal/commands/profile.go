package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/balkashynov/sleeplog/internal/app"
	"github.com/balkashynov/sleeplog/internal/db"
)

var profileCmd = &cobra.Command{
	Use:     "profile",
	Aliases: []string{"profiles"},
	Short:   "Manage profiles",
	Long: `Profiles keep separate sleep records, settings and goals.
The selected profile is remembered between runs.`,
}

var profileAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a profile and switch to it",
	Args:  cobra.MinimumNArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app.App) error {
		p, err := a.CreateProfile(cmd.Context(), strings.Join(args, " "))
		if errors.Is(err, db.ErrDuplicateName) {
			return fmt.Errorf("a profile named %q already exists", strings.Join(args, " "))
		}
		if err != nil {
			return err
		}
		fmt.Printf("✅ Profile %q created and selected\n", p.Name)
		return nil
	}),
}

var profileListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List profiles",
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app.App) error {
		profiles, err := a.Profiles(cmd.Context())
		if err != nil {
			return err
		}
		if len(profiles) == 0 {
			fmt.Println("No profiles yet. Create one with 'sleeplog profile add <name>'.")
			return nil
		}

		fmt.Printf("  %-10s %-24s %s\n", "ID", "NAME", "CREATED")
		fmt.Println(strings.Repeat("-", 50))
		for _, p := range profiles {
			marker := " "
			if cur := a.Profile(); cur != nil && cur.ID == p.ID {
				marker = "*"
			}
			fmt.Printf("%s %-10s %-24s %s\n", marker, shortID(p.ID), p.Name, humanize.Time(p.CreatedAt))
		}
		return nil
	}),
}

var profileUseCmd = &cobra.Command{
	Use:   "use <id|name>",
	Short: "Switch to another profile",
	Args:  cobra.MinimumNArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app.App) error {
		p, err := a.SwitchProfile(cmd.Context(), strings.Join(args, " "))
		if app.IsNotFound(err) {
			return fmt.Errorf("no profile matches %q", strings.Join(args, " "))
		}
		if err != nil {
			return err
		}
		fmt.Printf("👤 Switched to %q\n", p.Name)
		return nil
	}),
}

var profileRmCmd = &cobra.Command{
	Use:   "rm <id|name>",
	Short: "Delete a profile and all of its sleep records",
	Args:  cobra.MinimumNArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app.App) error {
		name := strings.Join(args, " ")
		if !confirm(cmd, fmt.Sprintf("Delete profile %q and all its sleep records?", name)) {
			fmt.Println("Nothing deleted. Pass --yes to confirm.")
			return nil
		}

		p, err := a.DeleteProfile(cmd.Context(), name)
		if app.IsNotFound(err) {
			return fmt.Errorf("no profile matches %q", name)
		}
		if err != nil {
			return err
		}

		fmt.Printf("🗑️  Deleted profile %q\n", p.Name)
		if cur := a.Profile(); cur != nil {
			fmt.Printf("👤 Now using %q\n", cur.Name)
		}
		return nil
	}),
}

func init() {
	profileRmCmd.Flags().BoolP("yes", "y", false, "Delete without asking")

	profileCmd.AddCommand(profileAddCmd)
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileUseCmd)
	profileCmd.AddCommand(profileRmCmd)
}
