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

type changeRoleBody struct {
	Role string `json:"role"`
}

func (a *API) AdminChangeRole(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	actor := c.MustGet("user").(*model.User)

	var data changeRoleBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

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

	newRole, err := access.ChangeRole(a.DB, actor, &target, model.Role(data.Role))
	if err != nil {
		writeAccessError(c, requestID, err)
		return
	}

	zap.L().Info("User role changed",
		zap.String("actor", actor.ID),
		zap.String("target", target.ID),
		zap.String("role", string(newRole)),
	)

	c.JSON(http.StatusOK, gin.H{
		"userID":    target.ID,
		"role":      newRole,
		"requestID": requestID,
	})
}
