package account

import (
	"errors"

	"authhub/auth-api/model"
	"authhub/auth-api/security"

	"gorm.io/gorm"
)

var (
	ErrBadCredentials = errors.New("invalid username or password")
	ErrNotVerified    = errors.New("please verify your email before logging in")
	ErrInactive       = errors.New("your account has been deactivated, contact support")
)

// Login authenticates a user by username and password. Credentials are
// checked first, then the verified and active gates, so any single
// failing condition blocks the login without leaking which one it was
// beyond the returned error.
func Login(db *gorm.DB, argon *security.ArgonHash, username, password string) (*model.User, error) {
	var user model.User

	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBadCredentials
		}

		return nil, err
	}

	ok, err := argon.VerifyPasswd(password, user.PasswordHash)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, ErrBadCredentials
	}

	if !user.Verified {
		return nil, ErrNotVerified
	}

	if !user.Active {
		return nil, ErrInactive
	}

	return &user, nil
}
