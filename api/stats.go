package api

import (
	"net/http"

	"authhub/auth-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Stats returns public aggregate account counts. The response is
// cached for 30 seconds by the router.
func (a *API) Stats(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var total, verified int64

	if err := a.DB.Model(model.User{}).Count(&total).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to count users", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := a.DB.Model(model.User{}).Where("verified = ?", true).Count(&verified).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to count verified users", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.Header("Cache-Control", "max-age=30")
	c.JSON(http.StatusOK, gin.H{
		"totalUsers":    total,
		"verifiedUsers": verified,
	})
}
