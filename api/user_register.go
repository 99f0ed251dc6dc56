package api

import (
	"errors"
	"net/http"

	"authhub/auth-api/account"
	"authhub/auth-api/service"
	"authhub/auth-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type registerBody struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *API) UserRegister(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data registerBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	user, token, err := account.Register(a.DB, a.Argon, data.Username, data.Email, data.Password)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrDuplicateEmail),
			errors.Is(err, account.ErrDuplicateUsername):
			c.JSON(http.StatusConflict, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
		case isValidationError(err):
			zap.L().Debug("Invalid registration input", zap.Error(err), zap.String("requestID", requestID))

			c.JSON(http.StatusBadRequest, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to create user", zap.Error(err), zap.String("requestID", requestID))
		}
		return
	}

	// The account and its token are committed at this point. Mail
	// delivery is best effort and never fails the registration.
	service.DeliverVerificationMail(token, user.Email)

	c.JSON(http.StatusCreated, gin.H{
		"userID":  user.ID,
		"message": "Account created! Please check your email for a verification link",
	})
}

func isValidationError(err error) bool {
	for _, v := range []error{
		validators.ErrUsernameEmpty,
		validators.ErrUsernameTooShort,
		validators.ErrUsernameTooLong,
		validators.ErrUsernameInvalid,
		validators.ErrEmailEmpty,
		validators.ErrEmailInvalid,
		validators.ErrPasswordEmpty,
		validators.ErrPasswordTooShort,
		validators.ErrPasswordTooLong,
	} {
		if errors.Is(err, v) {
			return true
		}
	}

	return false
}
