package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/now"
	"go.uber.org/zap"

	"github.com/balkashynov/sleeplog/internal/db"
	"github.com/balkashynov/sleeplog/internal/models"
	"github.com/balkashynov/sleeplog/internal/sleep"
)

var ErrAmbiguousID = errors.New("ambiguous session id")

// ManualEntry is a past sleep typed in by the user
type ManualEntry struct {
	Type   models.SleepType
	Start  time.Time
	End    time.Time
	Rating int
	Note   string
}

// AddManual validates an entry against the active sleep and stored sessions,
// then persists it. Rejections are sleep validation errors.
func (a *App) AddManual(ctx context.Context, e ManualEntry) (*models.Session, error) {
	if err := a.requireProfile(); err != nil {
		return nil, err
	}
	if e.Type == "" {
		e.Type = models.SleepMain
	}

	if err := a.refreshActive(ctx); err != nil {
		return nil, err
	}
	// conflicts are reported in the display timezone
	existing, err := a.Sessions(ctx)
	if err != nil {
		return nil, err
	}
	var active *models.ActiveSleep
	if a.active != nil {
		local := *a.active
		local.Start = local.Start.In(a.loc)
		active = &local
	}

	c := sleep.Candidate{Type: e.Type, Start: e.Start, End: e.End, Rating: e.Rating, Note: e.Note}
	if err := sleep.ValidateManual(c, active, existing, a.now()); err != nil {
		return nil, err
	}

	mins := sleep.MinutesBetween(e.Start, e.End)
	rating := e.Rating
	session := &models.Session{
		ID:              uuid.NewString(),
		ProfileID:       a.profile.ID,
		Type:            e.Type,
		Start:           e.Start,
		End:             e.End,
		DurationMinutes: &mins,
		Rating:          &rating,
		Note:            e.Note,
	}
	if err := a.store.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	a.log.Debug("manual session added", zap.String("session", session.ID), zap.Int("minutes", mins))
	return session, nil
}

// FindSession resolves a full session id or a unique prefix of one
func (a *App) FindSession(ctx context.Context, idOrPrefix string) (*models.Session, error) {
	sessions, err := a.Sessions(ctx)
	if err != nil {
		return nil, err
	}

	var match *models.Session
	for i := range sessions {
		s := &sessions[i]
		if s.ID == idOrPrefix {
			return s, nil
		}
		if idOrPrefix != "" && strings.HasPrefix(s.ID, idOrPrefix) {
			if match != nil {
				return nil, fmt.Errorf("%w: %q matches more than one session", ErrAmbiguousID, idOrPrefix)
			}
			match = s
		}
	}
	if match == nil {
		return nil, fmt.Errorf("session %q: %w", idOrPrefix, db.ErrNotFound)
	}
	return match, nil
}

// DeleteSession permanently removes one of the current profile's sessions
func (a *App) DeleteSession(ctx context.Context, id string) error {
	if err := a.requireProfile(); err != nil {
		return err
	}

	s, err := a.store.GetSession(ctx, a.profile.ID, id)
	if err != nil {
		return err
	}
	if err := a.store.DeleteSession(ctx, a.profile.ID, id); err != nil {
		return err
	}

	details := fmt.Sprintf("%s %s - %s", s.Type, s.Start.In(a.loc).Format("2006-01-02 15:04"), s.End.In(a.loc).Format("15:04"))
	a.audit(ctx, models.AuditSessionDelete, a.profile.ID, id, details)
	return nil
}

// Sessions returns the current profile's sessions in the display timezone
func (a *App) Sessions(ctx context.Context) ([]models.Session, error) {
	if err := a.requireProfile(); err != nil {
		return nil, err
	}

	sessions, err := a.store.ListSessions(ctx, a.profile.ID)
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		sessions[i].Start = sessions[i].Start.In(a.loc)
		sessions[i].End = sessions[i].End.In(a.loc)
	}
	return sessions, nil
}

// grouped buckets the current profile's sessions by attributed date
func (a *App) grouped(ctx context.Context) (map[string][]models.Session, error) {
	sessions, err := a.Sessions(ctx)
	if err != nil {
		return nil, err
	}
	return sleep.GroupByDay(sessions, a.Boundary()), nil
}

// Day summarizes one attributed date ("YYYY-MM-DD")
func (a *App) Day(ctx context.Context, date string) (sleep.DaySummary, error) {
	if _, err := time.ParseInLocation(sleep.DateLayout, date, a.loc); err != nil {
		return sleep.DaySummary{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD", date)
	}

	grouped, err := a.grouped(ctx)
	if err != nil {
		return sleep.DaySummary{}, err
	}
	sum := sleep.Summarize([]string{date}, grouped, a.GoalMinutes())
	return sum.Days[0], nil
}

// Week summarizes the Monday-started week containing day
func (a *App) Week(ctx context.Context, day time.Time) (sleep.Summary, error) {
	grouped, err := a.grouped(ctx)
	if err != nil {
		return sleep.Summary{}, err
	}
	return sleep.Summarize(sleep.WeekDays(day.In(a.loc)), grouped, a.GoalMinutes()), nil
}

// Month summarizes every date of a calendar month
func (a *App) Month(ctx context.Context, year int, month time.Month) (sleep.Summary, error) {
	grouped, err := a.grouped(ctx)
	if err != nil {
		return sleep.Summary{}, err
	}
	return sleep.Summarize(sleep.MonthDays(year, month), grouped, a.GoalMinutes()), nil
}

// Today returns the attributed date "now" belongs to
func (a *App) Today() string {
	return sleep.AttributedDate(a.Now(), a.Boundary())
}

// ThisMonth returns the year and month of the current attributed day
func (a *App) ThisMonth() (int, time.Month) {
	t, err := time.ParseInLocation(sleep.DateLayout, a.Today(), a.loc)
	if err != nil {
		t = a.Now()
	}
	first := now.With(t).BeginningOfMonth()
	return first.Year(), first.Month()
}
