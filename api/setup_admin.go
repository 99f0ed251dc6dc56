package api

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"authhub/auth-api/model"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupAdmin promotes a registered user to admin. It exists so a fresh
// deployment can get its first admin without poking the database by
// hand, and is disabled unless admin.setup_key is configured. Remove
// the key from the config after use.
func (a *API) SetupAdmin(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	setupKey := viper.GetString("admin.setup_key")
	if setupKey == "" {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "Not found",
			"requestID": requestID,
		})
		return
	}

	if subtle.ConstantTimeCompare([]byte(c.Query("key")), []byte(setupKey)) != 1 {
		c.JSON(http.StatusForbidden, gin.H{
			"error":     "Invalid secret key",
			"requestID": requestID,
		})
		return
	}

	username := strings.TrimSpace(c.Query("username"))
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No username provided",
			"requestID": requestID,
		})
		return
	}

	err := a.DB.Transaction(func(tx *gorm.DB) error {
		var user model.User

		if err := tx.Where("username = ?", username).First(&user).Error; err != nil {
			return err
		}

		return tx.Model(&model.User{}).
			Where("id = ?", user.ID).
			Updates(map[string]any{
				"role":     model.RoleAdmin,
				"verified": true,
				"active":   true,
			}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "User not found",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to promote user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	zap.L().Warn("Admin bootstrap used", zap.String("username", username))

	c.JSON(http.StatusOK, gin.H{
		"message":   "User promoted to admin",
		"requestID": requestID,
	})
}
