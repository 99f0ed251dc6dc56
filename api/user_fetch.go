package api

import (
	"net/http"

	"authhub/auth-api/model"

	"github.com/gin-gonic/gin"
)

func (a *API) UserFetch(c *gin.Context) {
	user := c.MustGet("user").(*model.User)

	c.JSON(http.StatusOK, gin.H{
		"userID":    user.ID,
		"username":  user.Username,
		"email":     user.Email,
		"role":      user.Role,
		"verified":  user.Verified,
		"active":    user.Active,
		"staff":     user.Role.IsStaff(),
		"createdAt": user.CreatedAt,
	})
}
