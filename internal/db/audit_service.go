package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/balkashynov/sleeplog/internal/models"
)

// AppendAudit writes one audit entry
func (s *Store) AppendAudit(ctx context.Context, entry *models.AuditLog) error {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to write audit entry: %w", err)
	}
	return nil
}

// ListAudit returns the newest audit entries first. limit <= 0 means all.
func (s *Store) ListAudit(ctx context.Context, limit int) ([]models.AuditLog, error) {
	q := s.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var entries []models.AuditLog
	if err := q.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list audit log: %w", err)
	}
	return entries, nil
}

// GetPreference returns the stored value for key, or "" when unset
func (s *Store) GetPreference(ctx context.Context, key string) (string, error) {
	var pref models.Preference
	err := s.db.WithContext(ctx).First(&pref, "pref_key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read preference %s: %w", key, err)
	}
	return pref.Value, nil
}

// SetPreference upserts a key/value pair
func (s *Store) SetPreference(ctx context.Context, key, value string) error {
	if err := s.db.WithContext(ctx).Save(&models.Preference{Key: key, Value: value}).Error; err != nil {
		return fmt.Errorf("failed to write preference %s: %w", key, err)
	}
	return nil
}
