package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/balkashynov/sleeplog/internal/models"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "test.db"), zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seedProfile(t *testing.T, s *Store, id, name string) *models.Profile {
	t.Helper()
	p := &models.Profile{ID: id, Name: name}
	st := models.DefaultSettings(id)
	require.NoError(t, s.CreateProfile(context.Background(), p, &st))
	return p
}

func ts(day, hour, minute int) time.Time {
	return time.Date(2024, time.March, day, hour, minute, 0, 0, time.UTC)
}

func newSession(id, profileID string, start, end time.Time) *models.Session {
	r := 4
	d := int(end.Sub(start).Minutes())
	return &models.Session{
		ID:              id,
		ProfileID:       profileID,
		Type:            models.SleepMain,
		Start:           start,
		End:             end,
		DurationMinutes: &d,
		Rating:          &r,
	}
}

func TestCreateProfile_WithSettings(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	seedProfile(t, s, "p1", "alice")

	p, err := s.GetProfile(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "alice", p.Name)

	st, err := s.GetSettings(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "02:00", st.DayBoundary)
	require.NotNil(t, st.GoalMinutes)
	assert.Equal(t, 480, *st.GoalMinutes)
	require.NotNil(t, st.GoalHours)
	assert.Equal(t, 8, *st.GoalHours)
}

func TestCreateProfile_DuplicateName(t *testing.T) {
	s := setupStore(t)
	seedProfile(t, s, "p1", "alice")

	err := s.CreateProfile(context.Background(), &models.Profile{ID: "p2", Name: "alice"}, nil)
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestFindProfile_ByIDOrName(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	seedProfile(t, s, "p1", "alice")

	byID, err := s.FindProfile(ctx, "p1")
	require.NoError(t, err)
	byName, err := s.FindProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, byID.ID, byName.ID)

	_, err = s.FindProfile(ctx, "bob")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessions_ListOrderedAndScoped(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	seedProfile(t, s, "p1", "alice")
	seedProfile(t, s, "p2", "bob")

	require.NoError(t, s.CreateSession(ctx, newSession("late", "p1", ts(3, 23, 0), ts(4, 7, 0))))
	require.NoError(t, s.CreateSession(ctx, newSession("early", "p1", ts(1, 23, 0), ts(2, 7, 0))))
	require.NoError(t, s.CreateSession(ctx, newSession("other", "p2", ts(1, 23, 0), ts(2, 7, 0))))

	sessions, err := s.ListSessions(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "early", sessions[0].ID)
	assert.Equal(t, "late", sessions[1].ID)
	assert.True(t, sessions[0].Start.Equal(ts(1, 23, 0)))
	assert.Equal(t, 4, sessions[0].RatingValue())
}

func TestDeleteSession(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	seedProfile(t, s, "p1", "alice")
	require.NoError(t, s.CreateSession(ctx, newSession("s1", "p1", ts(1, 23, 0), ts(2, 7, 0))))

	// wrong profile can't touch it
	err := s.DeleteSession(ctx, "p2", "s1")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.DeleteSession(ctx, "p1", "s1"))
	_, err = s.GetSession(ctx, "p1", "s1")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.DeleteSession(ctx, "p1", "s1"), ErrNotFound)
}

func TestActive_PutAndClose(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	seedProfile(t, s, "p1", "alice")

	active, err := s.GetActive(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, active)

	require.NoError(t, s.PutActive(ctx, &models.ActiveSleep{ProfileID: "p1", Start: ts(1, 23, 0), Type: models.SleepMain}))

	// a second row for the same profile violates the primary key
	assert.Error(t, s.PutActive(ctx, &models.ActiveSleep{ProfileID: "p1", Start: ts(1, 23, 30), Type: models.SleepNap}))

	active, err = s.GetActive(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.True(t, active.Start.Equal(ts(1, 23, 0)))

	require.NoError(t, s.CloseActive(ctx, newSession("s1", "p1", ts(1, 23, 0), ts(2, 7, 0))))

	active, err = s.GetActive(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, active)

	sessions, err := s.ListSessions(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestCloseActive_WithoutActiveWritesNothing(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	seedProfile(t, s, "p1", "alice")

	err := s.CloseActive(ctx, newSession("s1", "p1", ts(1, 23, 0), ts(2, 7, 0)))
	assert.ErrorIs(t, err, ErrNotSleeping)

	sessions, err := s.ListSessions(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestDeleteProfileCascade(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	seedProfile(t, s, "p1", "alice")
	seedProfile(t, s, "p2", "bob")

	require.NoError(t, s.CreateSession(ctx, newSession("s1", "p1", ts(1, 23, 0), ts(2, 7, 0))))
	require.NoError(t, s.CreateSession(ctx, newSession("s2", "p2", ts(1, 23, 0), ts(2, 7, 0))))
	require.NoError(t, s.PutActive(ctx, &models.ActiveSleep{ProfileID: "p1", Start: ts(3, 22, 0), Type: models.SleepMain}))

	require.NoError(t, s.DeleteProfileCascade(ctx, "p1"))

	_, err := s.GetProfile(ctx, "p1")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetSettings(ctx, "p1")
	assert.ErrorIs(t, err, ErrNotFound)
	active, err := s.GetActive(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, active)
	sessions, err := s.ListSessions(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, sessions)

	// bob is untouched
	sessions, err = s.ListSessions(ctx, "p2")
	require.NoError(t, err)
	assert.Len(t, sessions, 1)

	assert.ErrorIs(t, s.DeleteProfileCascade(ctx, "p1"), ErrNotFound)
}

func TestSettings_SaveAndEnsure(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	st, err := s.EnsureSettings(ctx, "fresh")
	require.NoError(t, err)
	assert.Equal(t, "02:00", st.DayBoundary)

	goal := 0
	st.GoalMinutes = &goal
	st.GoalHours = &goal
	st.DayBoundary = "04:30"
	require.NoError(t, s.SaveSettings(ctx, st))

	got, err := s.EnsureSettings(ctx, "fresh")
	require.NoError(t, err)
	require.NotNil(t, got.GoalMinutes)
	assert.Equal(t, 0, *got.GoalMinutes)
	require.NotNil(t, got.GoalHours)
	assert.Equal(t, 0, *got.GoalHours)
	assert.Equal(t, "04:30", got.DayBoundary)
}

func TestBackup_ExportImport(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	seedProfile(t, s, "p1", "alice")
	require.NoError(t, s.CreateSession(ctx, newSession("old", "p1", ts(1, 23, 0), ts(2, 7, 0))))

	b, err := s.ExportProfile(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "alice", b.Profile.Name)
	require.NotNil(t, b.Settings)
	require.Len(t, b.Sessions, 1)

	// replace with a different session set
	b.Sessions = []models.Session{*newSession("new", "p1", ts(5, 22, 0), ts(6, 6, 0))}
	require.NoError(t, s.ImportBackup(ctx, b))

	sessions, err := s.ListSessions(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "new", sessions[0].ID)
}

func TestImportBackup_CreatesMissingProfile(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	b := &models.Backup{
		Profile:  &models.Profile{ID: "p9", Name: "restored"},
		Sessions: []models.Session{*newSession("s1", "p9", ts(1, 23, 0), ts(2, 7, 0))},
	}
	require.NoError(t, s.ImportBackup(ctx, b))

	p, err := s.GetProfile(ctx, "p9")
	require.NoError(t, err)
	assert.Equal(t, "restored", p.Name)

	sessions, err := s.ListSessions(ctx, "p9")
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestAuditAndPreferences(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	v, err := s.GetPreference(ctx, "current_profile")
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, s.SetPreference(ctx, "current_profile", "p1"))
	require.NoError(t, s.SetPreference(ctx, "current_profile", "p2"))
	v, err = s.GetPreference(ctx, "current_profile")
	require.NoError(t, err)
	assert.Equal(t, "p2", v)

	require.NoError(t, s.AppendAudit(ctx, &models.AuditLog{ID: "a1", Type: models.AuditProfileSwitch, ProfileID: "p1", CreatedAt: ts(1, 8, 0)}))
	require.NoError(t, s.AppendAudit(ctx, &models.AuditLog{ID: "a2", Type: models.AuditSessionDelete, ProfileID: "p1", SessionID: "s1", CreatedAt: ts(2, 8, 0)}))

	entries, err := s.ListAudit(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a2", entries[0].ID)

	entries, err = s.ListAudit(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
