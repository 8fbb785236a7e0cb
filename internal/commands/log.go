package commands

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/balkashynov/sleeplog/internal/app"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recent deletions and profile switches",
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app.App) error {
		limit, _ := cmd.Flags().GetInt("limit")
		entries, err := a.AuditLog(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(entries)
		}
		if len(entries) == 0 {
			fmt.Println("Audit log is empty.")
			return nil
		}

		fmt.Printf("%-16s %-16s %-10s %s\n", "WHEN", "EVENT", "SESSION", "DETAILS")
		fmt.Println(strings.Repeat("-", 70))
		for _, e := range entries {
			fmt.Printf("%-16s %-16s %-10s %s\n", humanize.Time(e.CreatedAt), e.Type, shortID(e.SessionID), e.Details)
		}
		return nil
	}),
}

func init() {
	logCmd.Flags().IntP("limit", "n", 20, "Number of entries, 0 for all")
	logCmd.Flags().Bool("json", false, "JSON output")
}
