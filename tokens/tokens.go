// Package tokens implements the email verification token lifecycle.
// A token is valid until consumed exactly once; issuing a new token
// for a user invalidates any previous one.
package tokens

import (
	"errors"

	"authhub/auth-api/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrInvalidToken = errors.New("verification token is invalid or has already been used")

// Issue replaces any live token for the user with a fresh one. The
// replacement happens in a single transaction so there is never more
// than one live token per user.
func Issue(db *gorm.DB, user *model.User) (*model.VerificationToken, error) {
	t := &model.VerificationToken{
		UserID: user.ID,
		Token:  uuid.NewString(),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&model.VerificationToken{}).Error; err != nil {
			return err
		}

		return tx.Create(t).Error
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}

// Consume looks up a live token by exact value, marks the owning user
// as verified and deletes the token. Unknown or malformed values fail
// with ErrInvalidToken and mutate nothing. The rows-affected guard on
// the delete makes sure only one of two concurrent calls with the same
// value can win.
func Consume(db *gorm.DB, value string) (*model.User, error) {
	var user model.User

	err := db.Transaction(func(tx *gorm.DB) error {
		var t model.VerificationToken

		if err := tx.Where("token = ?", value).First(&t).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidToken
			}

			return err
		}

		res := tx.Where("id = ? AND token = ?", t.ID, value).Delete(&model.VerificationToken{})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			// Lost the race against a concurrent consume
			return ErrInvalidToken
		}

		if err := tx.Model(&model.User{}).
			Where("id = ?", t.UserID).
			Update("verified", true).
			Error; err != nil {
			return err
		}

		return tx.Where("id = ?", t.UserID).First(&user).Error
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}
