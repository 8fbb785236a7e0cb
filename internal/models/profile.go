package models

import (
	"time"
)

// Profile is a named local identity that scopes all sleep data
type Profile struct {
	ID        string    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Settings holds per-profile preferences
type Settings struct {
	ProfileID string `gorm:"primarykey" json:"profileId"`
	Theme     string `gorm:"default:dark" json:"theme"`

	// GoalHours is written through from GoalMinutes for older backups.
	// Nil means absent; a stored 0 is a zero goal.
	GoalHours   *int   `json:"sleepGoalHours,omitempty"`
	GoalMinutes *int   `json:"sleepGoalMinutes,omitempty"`
	DayBoundary string `gorm:"not null;default:'02:00'" json:"dayBoundaryHHmm"`
}

// DefaultSettings returns the settings a new profile starts with
func DefaultSettings(profileID string) Settings {
	hours, goal := 8, 8*60
	return Settings{
		ProfileID:   profileID,
		Theme:       "dark",
		GoalHours:   &hours,
		GoalMinutes: &goal,
		DayBoundary: "02:00",
	}
}

// AuditLog records destructive or context-changing actions
type AuditLog struct {
	ID        string    `gorm:"primarykey" json:"id"`
	Type      string    `gorm:"not null;index" json:"type"` // session_delete, profile_delete, profile_switch
	ProfileID string    `gorm:"index" json:"profileId,omitempty"`
	SessionID string    `gorm:"index" json:"sessionId,omitempty"`
	Details   string    `json:"details,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

const (
	AuditSessionDelete = "session_delete"
	AuditProfileDelete = "profile_delete"
	AuditProfileSwitch = "profile_switch"
)

// Preference is a small key/value row for app-wide state
type Preference struct {
	Key   string `gorm:"column:pref_key;primarykey"`
	Value string
}
