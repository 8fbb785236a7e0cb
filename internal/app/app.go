// Package app holds the explicit application state (current profile, its settings
// and the sleep in progress) and every operation that mutates it. Derived values
// come from the pure functions in internal/sleep.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/balkashynov/sleeplog/internal/db"
	"github.com/balkashynov/sleeplog/internal/models"
	"github.com/balkashynov/sleeplog/internal/sleep"
)

// PrefCurrentProfile is the preferences key remembering the selected profile
const PrefCurrentProfile = "current_profile"

var ErrNoProfile = errors.New("no profile selected, create one with 'sleeplog profile add <name>'")

// App is the per-process application state. Not safe for concurrent use.
type App struct {
	store *db.Store
	log   *zap.Logger
	loc   *time.Location
	now   func() time.Time

	profile  *models.Profile
	settings *models.Settings
	active   *models.ActiveSleep
}

// Option configures an App
type Option func(*App)

// WithClock replaces time.Now, mostly for tests
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// WithLocation sets the timezone used for day attribution and display
func WithLocation(loc *time.Location) Option {
	return func(a *App) {
		if loc != nil {
			a.loc = loc
		}
	}
}

// New creates an App over store. Call Load before using it.
func New(store *db.Store, log *zap.Logger, opts ...Option) *App {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{
		store: store,
		log:   log,
		loc:   time.Local,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Load selects the remembered profile, falling back to the oldest one
func (a *App) Load(ctx context.Context) error {
	id, err := a.store.GetPreference(ctx, PrefCurrentProfile)
	if err != nil {
		return err
	}

	if id != "" {
		p, err := a.store.GetProfile(ctx, id)
		switch {
		case err == nil:
			return a.selectProfile(ctx, p)
		case !errors.Is(err, db.ErrNotFound):
			return err
		}
		a.log.Debug("remembered profile is gone", zap.String("id", id))
	}

	profiles, err := a.store.ListProfiles(ctx)
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		a.clear()
		return nil
	}
	return a.selectProfile(ctx, &profiles[0])
}

// selectProfile makes p current and loads its settings and active sleep
func (a *App) selectProfile(ctx context.Context, p *models.Profile) error {
	settings, err := a.store.EnsureSettings(ctx, p.ID)
	if err != nil {
		return err
	}
	active, err := a.store.GetActive(ctx, p.ID)
	if err != nil {
		return err
	}

	a.profile = p
	a.settings = settings
	a.active = active
	return nil
}

func (a *App) clear() {
	a.profile = nil
	a.settings = nil
	a.active = nil
}

// Profile returns the current profile, or nil
func (a *App) Profile() *models.Profile { return a.profile }

// Settings returns the current profile's settings, or nil
func (a *App) Settings() *models.Settings { return a.settings }

// Location returns the display timezone
func (a *App) Location() *time.Location { return a.loc }

// Now returns the current time in the display timezone
func (a *App) Now() time.Time { return a.now().In(a.loc) }

// GoalMinutes is the current profile's daily goal
func (a *App) GoalMinutes() int { return sleep.GoalMinutes(a.settings) }

// Boundary returns the current day boundary. A corrupt stored value falls back
// to the default so read paths keep working.
func (a *App) Boundary() sleep.Boundary {
	if a.settings == nil {
		return sleep.MustParseBoundary(sleep.DefaultBoundary)
	}
	b, err := sleep.ParseBoundary(a.settings.DayBoundary)
	if err != nil {
		a.log.Warn("invalid stored day boundary, using default",
			zap.String("value", a.settings.DayBoundary), zap.Error(err))
		return sleep.MustParseBoundary(sleep.DefaultBoundary)
	}
	return b
}

// requireProfile returns ErrNoProfile when nothing is selected
func (a *App) requireProfile() error {
	if a.profile == nil {
		return ErrNoProfile
	}
	return nil
}

// audit writes an audit entry. Failures are logged, never returned.
func (a *App) audit(ctx context.Context, typ, profileID, sessionID, details string) {
	entry := &models.AuditLog{
		ID:        uuid.NewString(),
		Type:      typ,
		ProfileID: profileID,
		SessionID: sessionID,
		Details:   details,
		CreatedAt: a.now(),
	}
	if err := a.store.AppendAudit(ctx, entry); err != nil {
		a.log.Warn("audit write failed", zap.String("type", typ), zap.Error(err))
	}
}

// AuditLog returns the newest audit entries first
func (a *App) AuditLog(ctx context.Context, limit int) ([]models.AuditLog, error) {
	entries, err := a.store.ListAudit(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read audit log: %w", err)
	}
	return entries, nil
}
