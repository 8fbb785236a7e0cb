package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/balkashynov/sleeplog/internal/app"
	"github.com/balkashynov/sleeplog/internal/config"
	"github.com/balkashynov/sleeplog/internal/db"
	"github.com/balkashynov/sleeplog/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "sleeplog",
	Short: "A local sleep tracker for the terminal",
	Long: `sleeplog records when you sleep, how long and how well.
Start a sleep at night, end it in the morning with a rating, and see
daily, weekly and monthly totals against your goal. Everything stays
in a local database under ~/.sleeplog.`,
}

// openApp loads configuration, opens the database and selects the current profile
func openApp(ctx context.Context) (*app.App, func(), error) {
	v, err := config.NewViper(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	if err := config.BindFlags(v, rootCmd.PersistentFlags()); err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return nil, nil, err
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	store, err := db.Open(cfg.DBPath, log)
	if err != nil {
		return nil, nil, err
	}

	a := app.New(store, log, app.WithLocation(cfg.Location))
	if err := a.Load(ctx); err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	cleanup := func() {
		_ = store.Close()
		_ = log.Sync()
	}
	return a, cleanup, nil
}

// withApp wraps a command function to initialize the app first.
// Errors are returned to Execute, which prints them and sets the exit status.
func withApp(fn func(*cobra.Command, []string, *app.App) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, cleanup, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		return fn(cmd, args, a)
	}
}

// withProfile is withApp for commands that need a selected profile
func withProfile(fn func(*cobra.Command, []string, *app.App) error) func(*cobra.Command, []string) error {
	return withApp(func(cmd *cobra.Command, args []string, a *app.App) error {
		if a.Profile() == nil {
			fmt.Println("No profile yet. Create one with 'sleeplog profile add <name>'.")
			return nil
		}
		return fn(cmd, args, a)
	})
}

// useUI reports whether an interactive screen can be opened
func useUI(cmd *cobra.Command) bool {
	if noUI, _ := cmd.Flags().GetBool("no-ui"); noUI {
		return false
	}
	return isTerminal()
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command and prints any error as "Error: <msg>" on stderr
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default ~/.sleeplog/config.yaml)")
	pf.String("db", "", "Database file (default ~/.sleeplog/sleeplog.db)")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("tz", "", "IANA timezone for day attribution (default Local)")

	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(endCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(dayCmd)
	rootCmd.AddCommand(weekCmd)
	rootCmd.AddCommand(monthCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.SetHelpCommand(helpCmd)
}
