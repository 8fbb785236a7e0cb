package app

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/balkashynov/sleeplog/internal/db"
	"github.com/balkashynov/sleeplog/internal/models"
	"github.com/balkashynov/sleeplog/internal/sleep"
)

// Status is a snapshot of the lifecycle state for the current profile
type Status struct {
	Profile *models.Profile
	Active  *models.ActiveSleep
	Elapsed time.Duration
}

// Sleeping reports whether a sleep is in progress
func (s Status) Sleeping() bool { return s.Active != nil }

// Status reports the in-memory lifecycle state
func (a *App) Status() Status {
	st := Status{Profile: a.profile, Active: a.active}
	if a.active != nil {
		st.Elapsed = a.now().Sub(a.active.Start)
	}
	return st
}

// refreshActive reloads the active sleep from the store. Another process may
// have started or ended a sleep since this App loaded.
func (a *App) refreshActive(ctx context.Context) error {
	active, err := a.store.GetActive(ctx, a.profile.ID)
	if err != nil {
		return err
	}
	a.active = active
	return nil
}

// StartSleep moves Idle to Sleeping. When a sleep is already running the
// existing state is returned unchanged with started=false.
// Without a selected profile it does nothing.
func (a *App) StartSleep(ctx context.Context, typ models.SleepType, note string) (*models.ActiveSleep, bool, error) {
	if a.profile == nil {
		a.log.Debug("start ignored, no profile selected")
		return nil, false, nil
	}
	if err := a.refreshActive(ctx); err != nil {
		return nil, false, err
	}
	if a.active != nil {
		a.log.Debug("start ignored, already sleeping", zap.Time("since", a.active.Start))
		return a.active, false, nil
	}
	if typ == "" {
		typ = models.SleepMain
	}
	if !typ.Valid() {
		return nil, false, &sleep.ValidationError{Field: "type", Msg: "must be main or nap"}
	}

	active := &models.ActiveSleep{
		ProfileID: a.profile.ID,
		Start:     a.now(),
		Type:      typ,
		Note:      note,
	}
	if err := a.store.PutActive(ctx, active); err != nil {
		return nil, false, err
	}

	a.active = active
	a.log.Debug("sleep started", zap.String("profile", a.profile.ID), zap.String("type", string(typ)))
	return active, true, nil
}

// EndSleep moves Sleeping to Idle, closing the active state into a session.
// From Idle it returns nil, nil. rating 0 stores no rating; range checks on the
// rating belong to the caller.
func (a *App) EndSleep(ctx context.Context, rating int, note string) (*models.Session, error) {
	if a.profile == nil {
		a.log.Debug("end ignored, no profile selected")
		return nil, nil
	}
	if err := a.refreshActive(ctx); err != nil {
		return nil, err
	}
	if a.active == nil {
		a.log.Debug("end ignored, nothing in progress")
		return nil, nil
	}

	end := a.now()
	if note == "" {
		note = a.active.Note
	}
	mins := sleep.MinutesBetween(a.active.Start, end)

	session := &models.Session{
		ID:              uuid.NewString(),
		ProfileID:       a.profile.ID,
		Type:            a.active.Type,
		Start:           a.active.Start,
		End:             end,
		DurationMinutes: &mins,
		Note:            note,
	}
	if rating != 0 {
		session.Rating = &rating
	}

	err := a.store.CloseActive(ctx, session)
	if errors.Is(err, db.ErrNotSleeping) {
		// ended elsewhere between the refresh and the close
		a.active = nil
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	a.active = nil
	a.log.Debug("sleep ended", zap.String("session", session.ID), zap.Int("minutes", mins))
	return session, nil
}
