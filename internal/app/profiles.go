package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/balkashynov/sleeplog/internal/db"
	"github.com/balkashynov/sleeplog/internal/models"
)

var ErrEmptyName = errors.New("profile name cannot be empty")

// Profiles lists every profile, oldest first
func (a *App) Profiles(ctx context.Context) ([]models.Profile, error) {
	return a.store.ListProfiles(ctx)
}

// CreateProfile adds a profile with default settings and makes it current
func (a *App) CreateProfile(ctx context.Context, name string) (*models.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	p := &models.Profile{ID: uuid.NewString(), Name: name}
	settings := models.DefaultSettings(p.ID)
	if err := a.store.CreateProfile(ctx, p, &settings); err != nil {
		return nil, err
	}

	if err := a.use(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// SwitchProfile makes the profile matching idOrName current
func (a *App) SwitchProfile(ctx context.Context, idOrName string) (*models.Profile, error) {
	p, err := a.store.FindProfile(ctx, strings.TrimSpace(idOrName))
	if err != nil {
		return nil, err
	}

	if err := a.use(ctx, p); err != nil {
		return nil, err
	}
	a.audit(ctx, models.AuditProfileSwitch, p.ID, "", p.Name)
	return p, nil
}

// DeleteProfile removes a profile with all its data. When it was current, the
// oldest remaining profile takes over, or the state is cleared.
func (a *App) DeleteProfile(ctx context.Context, idOrName string) (*models.Profile, error) {
	p, err := a.store.FindProfile(ctx, strings.TrimSpace(idOrName))
	if err != nil {
		return nil, err
	}

	if err := a.store.DeleteProfileCascade(ctx, p.ID); err != nil {
		return nil, err
	}
	a.audit(ctx, models.AuditProfileDelete, p.ID, "", p.Name)

	if a.profile == nil || a.profile.ID != p.ID {
		return p, nil
	}

	profiles, err := a.store.ListProfiles(ctx)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		a.clear()
		if err := a.store.SetPreference(ctx, PrefCurrentProfile, ""); err != nil {
			return nil, err
		}
		return p, nil
	}
	if err := a.use(ctx, &profiles[0]); err != nil {
		return nil, err
	}
	return p, nil
}

// use selects p and remembers it for the next launch
func (a *App) use(ctx context.Context, p *models.Profile) error {
	if err := a.selectProfile(ctx, p); err != nil {
		return err
	}
	if err := a.store.SetPreference(ctx, PrefCurrentProfile, p.ID); err != nil {
		return fmt.Errorf("failed to remember current profile: %w", err)
	}
	a.log.Debug("profile selected", zap.String("id", p.ID), zap.String("name", p.Name))
	return nil
}

// IsNotFound reports whether err means a profile or session does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, db.ErrNotFound)
}
