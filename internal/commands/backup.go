package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/balkashynov/sleeplog/internal/app"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the current profile as JSON",
	Long: `Write the current profile, its settings and every session as a JSON backup.
Without a file the backup goes to stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: withProfile(func(cmd *cobra.Command, args []string, a *app.App) error {
		var w io.Writer = os.Stdout
		if len(args) == 1 {
			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", args[0], err)
			}
			defer f.Close()
			w = f
		}

		b, err := a.Export(cmd.Context(), w)
		if err != nil {
			return err
		}
		if len(args) == 1 {
			fmt.Printf("📦 Exported %q with %d sessions to %s\n", b.Profile.Name, len(b.Sessions), args[0])
		}
		return nil
	}),
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Restore a profile from a JSON backup",
	Long: `Restore a profile from a backup written by 'sleeplog export'.
The profile in the file is created or updated, and its sessions are replaced
by the ones in the file. The imported profile becomes the current one.`,
	Args: cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app.App) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer f.Close()

		if !confirm(cmd, "Importing replaces every session of the profile in "+args[0]+". Continue?") {
			fmt.Println("Nothing imported. Pass --yes to confirm.")
			return nil
		}

		b, err := a.Import(cmd.Context(), f)
		if errors.Is(err, app.ErrInvalidBackup) {
			return fmt.Errorf("%s is not a sleeplog backup: %w", args[0], err)
		}
		if err != nil {
			return err
		}
		fmt.Printf("📥 Imported %q with %d sessions\n", b.Profile.Name, len(b.Sessions))
		return nil
	}),
}

func init() {
	importCmd.Flags().BoolP("yes", "y", false, "Import without asking")
}
