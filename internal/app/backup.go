package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/balkashynov/sleeplog/internal/models"
	"github.com/balkashynov/sleeplog/internal/sleep"
)

var ErrInvalidBackup = errors.New("invalid backup: profile and sessions are required")

// Export writes the current profile as a backup JSON document
func (a *App) Export(ctx context.Context, w io.Writer) (*models.Backup, error) {
	if err := a.requireProfile(); err != nil {
		return nil, err
	}

	b, err := a.store.ExportProfile(ctx, a.profile.ID)
	if err != nil {
		return nil, err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return nil, fmt.Errorf("failed to write backup: %w", err)
	}
	return b, nil
}

// Import reads a backup document and replaces the contained profile's sessions.
// The imported profile becomes current.
func (a *App) Import(ctx context.Context, r io.Reader) (*models.Backup, error) {
	var b models.Backup
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return nil, fmt.Errorf("failed to parse backup: %w", err)
	}
	if b.Profile == nil || b.Profile.ID == "" || b.Sessions == nil {
		return nil, ErrInvalidBackup
	}

	for i := range b.Sessions {
		s := &b.Sessions[i]
		if s.DurationMinutes == nil {
			mins := sleep.MinutesBetween(s.Start, s.End)
			s.DurationMinutes = &mins
		}
		if s.Type == "" {
			s.Type = models.SleepMain
		}
	}

	if err := a.store.ImportBackup(ctx, &b); err != nil {
		return nil, err
	}
	if err := a.use(ctx, b.Profile); err != nil {
		return nil, err
	}

	a.log.Debug("backup imported", zap.String("profile", b.Profile.ID), zap.Int("sessions", len(b.Sessions)))
	return &b, nil
}
