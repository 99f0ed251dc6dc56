package api

import (
	"errors"
	"net/http"

	"authhub/auth-api/access"
	"authhub/auth-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (a *API) AdminToggleActive(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	actor := c.MustGet("user").(*model.User)

	var target model.User

	if err := a.DB.Where("id = ?", c.Param("id")).First(&target).Error; err != nil {
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

		zap.L().Error("Failed to load target user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	newState, err := access.ToggleActive(a.DB, actor, &target)
	if err != nil {
		writeAccessError(c, requestID, err)
		return
	}

	zap.L().Info("User active state toggled",
		zap.String("actor", actor.ID),
		zap.String("target", target.ID),
		zap.Bool("active", newState),
	)

	c.JSON(http.StatusOK, gin.H{
		"userID":    target.ID,
		"active":    newState,
		"requestID": requestID,
	})
}

// writeAccessError maps the access package's typed policy rejections
// onto HTTP statuses. Shared by the admin mutation handlers.
func writeAccessError(c *gin.Context, requestID string, err error) {
	switch {
	case errors.Is(err, access.ErrSelfTarget):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
	case errors.Is(err, access.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
	case errors.Is(err, access.ErrAccessDenied):
		c.JSON(http.StatusForbidden, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Admin mutation failed", zap.Error(err), zap.String("requestID", requestID))
	}
}
