package models

import (
	"time"
)

// Privacy controls who may see a user's schedule.
type Privacy string

const (
	PrivacyPrivate Privacy = "private"
	PrivacyFriends Privacy = "friends"
	PrivacyPublic  Privacy = "public"
)

// UserSettings holds per-user display preferences, stored as JSONB on
// the user row.
type UserSettings struct {
	ShowCourseNames bool    `json:"showCourseNames"`
	Privacy         Privacy `json:"privacy"`
}

// DefaultSettings returns the settings applied to newly registered users.
func DefaultSettings() UserSettings {
	return UserSettings{
		ShowCourseNames: true,
		Privacy:         PrivacyFriends,
	}
}

// User defines the user model based on the 'users' table
type User struct {
	ID          int64        `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	Email       string       `json:"email" db:"email" example:"user@ntu.edu.tw"`               // User's email address
	Password    string       `json:"-" db:"password"`                                          // User's hashed password (excluded from JSON)
	DisplayName string       `json:"displayName" db:"display_name" example:"Pei-Yu Lin"`       // Name shown to friends and in search
	SchoolID    *int64       `json:"schoolId,omitempty" db:"school_id"`                        // Nullable until the user picks a school
	PhotoURL    *string      `json:"photoUrl,omitempty" db:"photo_url"`                        // Avatar URL (nullable)
	Settings    UserSettings `json:"settings" db:"settings"`                                   // Display preferences
	IsActive    bool         `json:"isActive" db:"is_active" example:"true"`                   // Whether the user account is active
	CreatedAt   time.Time    `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the user was created
	UpdatedAt   time.Time    `json:"updatedAt" db:"updated_at"`                                // Timestamp when the user was last updated
	LastLoginAt *time.Time   `json:"lastLoginAt,omitempty" db:"last_login_at"`                 // Timestamp of the last login (nullable)
}
