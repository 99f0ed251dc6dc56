package model

import "time"

// VerificationToken is a single-use token mailed to a user to prove
// control of their email address. A user owns at most one live token;
// reissuing replaces the previous one and consuming deletes it, so no
// used flag is needed.
type VerificationToken struct {
	ID        int    `gorm:"primaryKey;autoIncrement"`
	UserID    string `gorm:"uniqueIndex;not null"`
	Token     string `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
}
