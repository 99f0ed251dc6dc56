// Package account implements registration and login on top of the
// persistent user store. Handlers translate the typed errors returned
// here into HTTP responses.
package account

import (
	"errors"

	"authhub/auth-api/model"
	"authhub/auth-api/security"
	"authhub/auth-api/tokens"
	"authhub/auth-api/validators"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"
)

const idCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var (
	ErrDuplicateEmail    = errors.New("an account with this email already exists")
	ErrDuplicateUsername = errors.New("this username is already taken")
)

// Register creates a new unverified member account together with its
// verification token in one transaction. Sending the verification mail
// is the caller's job and must happen after this returns, so a failed
// delivery can never roll back the account.
func Register(db *gorm.DB, argon *security.ArgonHash, username, email, password string) (*model.User, *model.VerificationToken, error) {
	if err := validators.UsernameValidator(username); err != nil {
		return nil, nil, err
	}

	if err := validators.EmailValidator(email); err != nil {
		return nil, nil, err
	}

	if err := validators.PasswordValidator(password); err != nil {
		return nil, nil, err
	}

	var found bool

	r := db.Model(model.User{}).
		Select("count(*) > 0").
		Where("email = ?", email).
		Find(&found)
	if r.Error != nil {
		return nil, nil, r.Error
	}

	if found {
		return nil, nil, ErrDuplicateEmail
	}

	r = db.Model(model.User{}).
		Select("count(*) > 0").
		Where("username = ?", username).
		Find(&found)
	if r.Error != nil {
		return nil, nil, r.Error
	}

	if found {
		return nil, nil, ErrDuplicateUsername
	}

	hash, err := argon.GenerateFromPassword(password)
	if err != nil {
		return nil, nil, err
	}

	userID, err := gonanoid.Generate(idCharset, 16)
	if err != nil {
		return nil, nil, err
	}

	user := &model.User{
		ID:           userID,
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Verified:     false,
		Active:       true,
		Role:         model.RoleMember,
	}

	var token *model.VerificationToken

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		token, err = tokens.Issue(tx, user)
		return err
	})
	if err != nil {
		// A registration that snuck in between the checks above and
		// the insert trips the unique indexes instead. Map it back to
		// the duplicate errors, the constraint decides the winner.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			var emailTaken bool

			r := db.Model(model.User{}).
				Select("count(*) > 0").
				Where("email = ?", email).
				Find(&emailTaken)
			if r.Error == nil && emailTaken {
				return nil, nil, ErrDuplicateEmail
			}

			return nil, nil, ErrDuplicateUsername
		}

		return nil, nil, err
	}

	return user, token, nil
}
