// Package model contains the database models used across the application
package model

import "time"

// Role determines a user's administrative capability. It is the single
// source of truth: staff and superuser checks are derived from it
// instead of being stored as separate flags that could drift.
type Role string

const (
	RoleMember    Role = "member"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleMember, RoleModerator, RoleAdmin:
		return true
	}

	return false
}

// IsStaff reports whether the role grants access to the admin surface
func (r Role) IsStaff() bool {
	return r == RoleModerator || r == RoleAdmin
}

// IsSuperuser reports whether the role grants unrestricted capability
func (r Role) IsSuperuser() bool {
	return r == RoleAdmin
}

type User struct {
	ID           string `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Verified     bool   `gorm:"default:false"`
	Active       bool   `gorm:"default:true"`
	Role         Role   `gorm:"type:text;default:member"`
	CreatedAt    time.Time

	VerificationToken *VerificationToken `gorm:"foreignKey:UserID"`
}
