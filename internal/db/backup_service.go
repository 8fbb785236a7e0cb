package db

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/balkashynov/sleeplog/internal/models"
)

// ExportProfile collects a profile, its settings and all its sessions
func (s *Store) ExportProfile(ctx context.Context, profileID string) (*models.Backup, error) {
	p, err := s.GetProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	settings, err := s.GetSettings(ctx, profileID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	sessions, err := s.ListSessions(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if sessions == nil {
		sessions = []models.Session{}
	}

	return &models.Backup{Profile: p, Settings: settings, Sessions: sessions}, nil
}

// ImportBackup replaces the profile's sessions with the backup's in one transaction.
// Profile and settings rows are upserted.
func (s *Store) ImportBackup(ctx context.Context, b *models.Backup) error {
	profileID := b.Profile.ID

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("profile_id = ?", profileID).Delete(&models.Session{}).Error; err != nil {
			return err
		}
		if err := tx.Save(b.Profile).Error; err != nil {
			return err
		}
		if b.Settings != nil {
			b.Settings.ProfileID = profileID
			if err := tx.Save(b.Settings).Error; err != nil {
				return err
			}
		}
		// create, not save: an update would stamp UpdatedAt and break round-trips
		for i := range b.Sessions {
			b.Sessions[i].ProfileID = profileID
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&b.Sessions[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to import backup: %w", err)
	}

	s.log.Debug("backup imported", zap.String("profile", profileID), zap.Int("sessions", len(b.Sessions)))
	return nil
}
