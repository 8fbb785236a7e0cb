package commands

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/balkashynov/sleeplog/internal/app"
	"github.com/balkashynov/sleeplog/internal/db"
	"github.com/balkashynov/sleeplog/internal/models"
	"github.com/balkashynov/sleeplog/internal/sleep"
)

func TestParseGoal(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"7:30", 450, false},
		{"8h", 480, false},
		{"7h45m", 465, false},
		{"420", 420, false},
		{" 6:05 ", 365, false},
		{"seven", 0, true},
		{"25:00", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseGoal(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "0b1c2d3e", shortID("0b1c2d3e-aaaa-bbbb-cccc-dddddddddddd"))
	assert.Equal(t, "abc", shortID("abc"))
	assert.Equal(t, "", shortID(""))
}

func newAddFlags(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "add"}
	cmd.Flags().String("start", "", "")
	cmd.Flags().String("end", "", "")
	cmd.Flags().StringP("type", "t", "", "")
	cmd.Flags().IntP("rating", "r", 0, "")
	cmd.Flags().String("note", "", "")
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd
}

func TestApplyFlags(t *testing.T) {
	t.Run("flags override parsed values", func(t *testing.T) {
		entry := app.ManualEntry{Type: models.SleepMain, Rating: 2, Note: "parsed"}
		cmd := newAddFlags(t, "--type", "NAP", "--rating", "5", "--note", "flag")

		require.NoError(t, applyFlags(cmd, &entry))
		assert.Equal(t, models.SleepNap, entry.Type)
		assert.Equal(t, 5, entry.Rating)
		assert.Equal(t, "flag", entry.Note)
	})

	t.Run("bad type", func(t *testing.T) {
		entry := app.ManualEntry{}
		assert.Error(t, applyFlags(newAddFlags(t, "--type", "siesta"), &entry))
	})

	t.Run("bad rating", func(t *testing.T) {
		entry := app.ManualEntry{}
		assert.Error(t, applyFlags(newAddFlags(t, "--rating", "0"), &entry))
	})
}

func TestPrefillFromFlags(t *testing.T) {
	cmd := newAddFlags(t, "--end", "07:00", "--note", "late dinner")
	got := prefillFromFlags(cmd, &app.ManualEntry{Type: models.SleepNap, Rating: 3})

	assert.Equal(t, map[string]string{
		"type":   "nap",
		"end":    "07:00",
		"rating": "3",
		"note":   "late dinner",
	}, got)
}

func execute(dbPath string, args ...string) error {
	rootCmd.SetArgs(append([]string{"--db", dbPath, "--tz", "UTC"}, args...))
	return rootCmd.ExecuteContext(context.Background())
}

func run(t *testing.T, dbPath string, args ...string) {
	t.Helper()
	require.NoError(t, execute(dbPath, args...))
}

func TestCommands_EndToEnd(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dbPath := filepath.Join(t.TempDir(), "sleeplog.db")

	run(t, dbPath, "profile", "add", "alice")
	run(t, dbPath, "add", "23:00-07:00", "+4", "on:2024-01-09", "restless")
	run(t, dbPath, "settings", "--goal", "7:30")

	ctx := context.Background()
	store, err := db.Open(dbPath, zaptest.NewLogger(t))
	require.NoError(t, err)

	profiles, err := store.ListProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "alice", profiles[0].Name)

	sessions, err := store.ListSessions(ctx, profiles[0].ID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, 480, sleepMinutes(sessions[0]))
	assert.Equal(t, 4, sessions[0].RatingValue())
	assert.Equal(t, "restless", sessions[0].Note)

	settings, err := store.GetSettings(ctx, profiles[0].ID)
	require.NoError(t, err)
	require.NotNil(t, settings.GoalMinutes)
	assert.Equal(t, 450, *settings.GoalMinutes)

	id := sessions[0].ID
	require.NoError(t, store.Close())

	run(t, dbPath, "rm", id[:6], "--yes")

	store, err = db.Open(dbPath, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer store.Close()

	sessions, err = store.ListSessions(ctx, profiles[0].ID)
	require.NoError(t, err)
	assert.Empty(t, sessions)

	entries, err := store.ListAudit(ctx, 0)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, models.AuditSessionDelete, entries[0].Type)
	assert.Equal(t, id, entries[0].SessionID)
}

func TestAdd_RejectionFailsTheCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dbPath := filepath.Join(t.TempDir(), "sleeplog.db")

	run(t, dbPath, "profile", "add", "bob")
	run(t, dbPath, "add", "22:00-06:00", "+3", "on:2024-02-01", "--no-ui")

	err := execute(dbPath, "add", "23:00-07:00", "+3", "on:2024-02-01", "--no-ui")
	var oerr *sleep.OverlapError
	assert.ErrorAs(t, err, &oerr)

	err = execute(dbPath, "add", "whenever", "--no-ui")
	assert.Error(t, err)
}

func sleepMinutes(s models.Session) int {
	return int(s.End.Sub(s.Start).Minutes())
}
