package api

import (
	"errors"
	"net/http"

	"authhub/auth-api/model"
	"authhub/auth-api/service"
	"authhub/auth-api/tokens"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type resendBody struct {
	Email string `json:"email"`
}

// UserResend reissues a verification token for an unverified account
// and resends the mail. The response is the same whether the email is
// known or not so the endpoint can't be used to probe for accounts.
func (a *API) UserResend(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data resendBody
	if err := c.ShouldBind(&data); err != nil || data.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Email field can't be empty",
			"requestID": requestID,
		})
		return
	}

	resp := gin.H{
		"message":   "If an unverified account with this email exists, a new verification link has been sent",
		"requestID": requestID,
	}

	var user model.User

	if err := a.DB.Where("email = ?", data.Email).First(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			zap.L().Error("Failed to look up user for resend", zap.Error(err), zap.String("requestID", requestID))
		}

		c.JSON(http.StatusOK, resp)
		return
	}

	if user.Verified {
		c.JSON(http.StatusOK, resp)
		return
	}

	// Replaces the previous token, old links die here
	token, err := tokens.Issue(a.DB, &user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to reissue verification token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	service.DeliverVerificationMail(token, user.Email)

	c.JSON(http.StatusOK, resp)
}
