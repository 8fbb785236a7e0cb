package db

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/balkashynov/sleeplog/internal/models"
)

// CreateSession stores a completed sleep session
func (s *Store) CreateSession(ctx context.Context, session *models.Session) error {
	if err := s.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// ListSessions returns every session of a profile ordered by start
func (s *Store) ListSessions(ctx context.Context, profileID string) ([]models.Session, error) {
	var sessions []models.Session
	if err := s.db.WithContext(ctx).Where("profile_id = ?", profileID).Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	// stored timestamps may carry different offsets, so order on the instant
	slices.SortStableFunc(sessions, func(a, b models.Session) int {
		return a.Start.Compare(b.Start)
	})
	return sessions, nil
}

// GetSession retrieves one session of a profile by id
func (s *Store) GetSession(ctx context.Context, profileID, id string) (*models.Session, error) {
	var session models.Session
	err := s.db.WithContext(ctx).
		Where("profile_id = ? AND id = ?", profileID, id).
		First(&session).Error
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", id, notFound(err))
	}
	return &session, nil
}

// DeleteSession permanently removes one session of a profile
func (s *Store) DeleteSession(ctx context.Context, profileID, id string) error {
	res := s.db.WithContext(ctx).
		Where("profile_id = ? AND id = ?", profileID, id).
		Delete(&models.Session{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("session %s: %w", id, ErrNotFound)
	}

	s.log.Debug("session deleted", zap.String("id", id), zap.String("profile", profileID))
	return nil
}

// GetActive returns the sleep in progress for a profile, or nil when idle
func (s *Store) GetActive(ctx context.Context, profileID string) (*models.ActiveSleep, error) {
	var active []models.ActiveSleep
	if err := s.db.WithContext(ctx).Where("profile_id = ?", profileID).Limit(1).Find(&active).Error; err != nil {
		return nil, fmt.Errorf("failed to load active sleep: %w", err)
	}
	if len(active) == 0 {
		return nil, nil // idle is not an error
	}
	return &active[0], nil
}

// PutActive records a sleep in progress
func (s *Store) PutActive(ctx context.Context, active *models.ActiveSleep) error {
	if err := s.db.WithContext(ctx).Create(active).Error; err != nil {
		return fmt.Errorf("failed to start sleep: %w", err)
	}
	return nil
}

// CloseActive stores the finished session and clears the active row atomically.
// When no active row exists nothing is written and ErrNotSleeping is returned.
func (s *Store) CloseActive(ctx context.Context, session *models.Session) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("profile_id = ?", session.ProfileID).Delete(&models.ActiveSleep{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return ErrNotSleeping
		}
		return tx.Create(session).Error
	})
	if errors.Is(err, ErrNotSleeping) {
		return ErrNotSleeping
	}
	if err != nil {
		return fmt.Errorf("failed to end sleep: %w", err)
	}
	return nil
}
