package api

import (
	"errors"
	"net/http"

	"authhub/auth-api/tokens"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (a *API) UserVerify(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No verification token provided",
			"requestID": requestID,
		})
		return
	}

	// The value is attacker supplied, Consume treats anything that
	// doesn't match a live token as not found.
	user, err := tokens.Consume(a.DB, token)
	if err != nil {
		if errors.Is(err, tokens.ErrInvalidToken) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "Verification link is invalid or has already been used",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to consume verification token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	zap.L().Info("User verified", zap.String("userID", user.ID))

	c.JSON(http.StatusOK, gin.H{
		"message":   "Email verified! You can now log in",
		"requestID": requestID,
	})
}
