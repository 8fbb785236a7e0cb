package models

import (
	"time"
)

// SleepType distinguishes main sleep from naps
type SleepType string

const (
	SleepMain SleepType = "main"
	SleepNap  SleepType = "nap"
)

// Valid reports whether t is a known sleep type
func (t SleepType) Valid() bool {
	return t == SleepMain || t == SleepNap
}

// Session represents a completed sleep interval
type Session struct {
	ID        string    `gorm:"primarykey" json:"id"`
	ProfileID string    `gorm:"not null;index" json:"profileId"`
	Type      SleepType `gorm:"not null;default:main" json:"type"`
	Start     time.Time `gorm:"not null" json:"start"`
	End       time.Time `gorm:"not null;index" json:"end"`

	DurationMinutes *int   `json:"durationMinutes,omitempty"` // stored for stats, never trusted over start/end
	Rating          *int   `json:"rating,omitempty"`          // 1-5
	Note            string `json:"note,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RatingValue returns the rating or 0 when absent
func (s Session) RatingValue() int {
	if s.Rating == nil {
		return 0
	}
	return *s.Rating
}

// ActiveSleep is the in-progress sleep for a profile. At most one row per profile.
type ActiveSleep struct {
	ProfileID string    `gorm:"primarykey" json:"profileId"`
	Start     time.Time `gorm:"not null" json:"start"`
	Type      SleepType `gorm:"not null;default:main" json:"type"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName keeps the table name aligned with the other single-row-per-profile tables
func (ActiveSleep) TableName() string {
	return "active"
}
