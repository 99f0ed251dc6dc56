package api

import (
	"net/http"

	"authhub/auth-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type adminUserEntry struct {
	ID        string     `json:"userID"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      model.Role `json:"role"`
	Verified  bool       `json:"verified"`
	Active    bool       `json:"active"`
	CreatedAt string     `json:"createdAt"`
}

func (a *API) AdminListUsers(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var users []model.User

	err := a.DB.
		Order("created_at").
		Find(&users).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list users", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	out := make([]adminUserEntry, 0, len(users))
	for _, u := range users {
		out = append(out, adminUserEntry{
			ID:        u.ID,
			Username:  u.Username,
			Email:     u.Email,
			Role:      u.Role,
			Verified:  u.Verified,
			Active:    u.Active,
			CreatedAt: u.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"users": out,
	})
}
