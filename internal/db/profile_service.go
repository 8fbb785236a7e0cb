package db

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/balkashynov/sleeplog/internal/models"
)

// CreateProfile inserts a profile together with its settings row
func (s *Store) CreateProfile(ctx context.Context, p *models.Profile, settings *models.Settings) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Profile{}).Where("name = ?", p.Name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateName
		}

		if err := tx.Create(p).Error; err != nil {
			return err
		}
		if settings != nil {
			settings.ProfileID = p.ID
			return tx.Create(settings).Error
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create profile %q: %w", p.Name, err)
	}

	s.log.Debug("profile created", zap.String("id", p.ID), zap.String("name", p.Name))
	return nil
}

// ListProfiles returns all profiles, oldest first
func (s *Store) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	var profiles []models.Profile
	if err := s.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

// GetProfile retrieves a profile by id
func (s *Store) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	var p models.Profile
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("profile %s: %w", id, notFound(err))
	}
	return &p, nil
}

// FindProfile matches a profile by exact id or name
func (s *Store) FindProfile(ctx context.Context, idOrName string) (*models.Profile, error) {
	var p models.Profile
	err := s.db.WithContext(ctx).
		Where("id = ? OR name = ?", idOrName, idOrName).
		First(&p).Error
	if err != nil {
		return nil, fmt.Errorf("profile %q: %w", idOrName, notFound(err))
	}
	return &p, nil
}

// DeleteProfileCascade removes a profile and everything scoped to it
func (s *Store) DeleteProfileCascade(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("profile_id = ?", id).Delete(&models.Session{}).Error; err != nil {
			return err
		}
		if err := tx.Where("profile_id = ?", id).Delete(&models.Settings{}).Error; err != nil {
			return err
		}
		if err := tx.Where("profile_id = ?", id).Delete(&models.ActiveSleep{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", id).Delete(&models.Profile{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete profile %s: %w", id, err)
	}

	s.log.Debug("profile deleted", zap.String("id", id))
	return nil
}
