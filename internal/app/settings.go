package app

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/balkashynov/sleeplog/internal/sleep"
)

// MaxGoalMinutes is the largest goal that still fits a single day (23:59)
const MaxGoalMinutes = 24*60 - 1

// SettingsUpdate carries the fields to change. Nil fields are left alone.
// GoalMinutes wins over GoalHours when both are set.
type SettingsUpdate struct {
	GoalMinutes *int
	GoalHours   *int
	Boundary    *string
	Theme       *string
}

// UpdateSettings validates and persists a partial settings change. Minutes are
// the canonical goal; hours are written through as the rounded equivalent.
func (a *App) UpdateSettings(ctx context.Context, u SettingsUpdate) error {
	if err := a.requireProfile(); err != nil {
		return err
	}

	next := *a.settings

	goal := u.GoalMinutes
	if goal == nil && u.GoalHours != nil {
		mins := *u.GoalHours * 60
		goal = &mins
	}
	if goal != nil {
		if *goal < 0 || *goal > MaxGoalMinutes {
			return &sleep.ValidationError{Field: "goal", Msg: fmt.Sprintf("must be between 0 and %d minutes", MaxGoalMinutes)}
		}
		mins := *goal
		next.GoalMinutes = &mins
		hours := int(math.Round(float64(mins) / 60))
		next.GoalHours = &hours
	}

	if u.Boundary != nil {
		b, err := sleep.ParseBoundary(*u.Boundary)
		if err != nil {
			return err
		}
		next.DayBoundary = b.String()
	}

	if u.Theme != nil {
		switch *u.Theme {
		case "dark", "light":
			next.Theme = *u.Theme
		default:
			return &sleep.ValidationError{Field: "theme", Msg: "must be dark or light"}
		}
	}

	if err := a.store.SaveSettings(ctx, &next); err != nil {
		return err
	}

	a.settings = &next
	a.log.Debug("settings updated",
		zap.Int("goal_minutes", sleep.GoalMinutes(&next)),
		zap.String("boundary", next.DayBoundary))
	return nil
}
