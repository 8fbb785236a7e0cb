package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/balkashynov/sleeplog/internal/models"
)

// GetSettings returns the settings row for a profile
func (s *Store) GetSettings(ctx context.Context, profileID string) (*models.Settings, error) {
	var st models.Settings
	if err := s.db.WithContext(ctx).First(&st, "profile_id = ?", profileID).Error; err != nil {
		return nil, fmt.Errorf("settings for %s: %w", profileID, notFound(err))
	}
	return &st, nil
}

// SaveSettings writes every field of st, inserting the row if needed
func (s *Store) SaveSettings(ctx context.Context, st *models.Settings) error {
	if err := s.db.WithContext(ctx).Save(st).Error; err != nil {
		return fmt.Errorf("failed to save settings for %s: %w", st.ProfileID, err)
	}
	return nil
}

// EnsureSettings returns the profile's settings, creating defaults when missing
func (s *Store) EnsureSettings(ctx context.Context, profileID string) (*models.Settings, error) {
	st, err := s.GetSettings(ctx, profileID)
	if err == nil {
		return st, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	defaults := models.DefaultSettings(profileID)
	if err := s.db.WithContext(ctx).Create(&defaults).Error; err != nil {
		return nil, fmt.Errorf("failed to create default settings for %s: %w", profileID, err)
	}
	return &defaults, nil
}
