package api

import (
	"errors"
	"net/http"
	"time"

	"authhub/auth-api/account"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const sessionDuration = time.Hour * 24 * 30

type loginBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (a *API) UserLogin(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data loginBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if data.Username == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Username field can't be empty",
			"requestID": requestID,
		})
		return
	}

	if data.Password == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Password field can't be empty",
			"requestID": requestID,
		})
		return
	}

	user, err := account.Login(a.DB, a.Argon, data.Username, data.Password)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrBadCredentials):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
		case errors.Is(err, account.ErrNotVerified),
			errors.Is(err, account.ErrInactive):
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to log in user", zap.Error(err), zap.String("requestID", requestID))
		}
		return
	}

	authToken, err := makeToken(&jwt.MapClaims{
		"user_id": user.ID,
		"type":    "auth",
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(sessionDuration).Unix(),
	})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate JWT auth token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	secs := int(sessionDuration.Seconds())
	ssl := viper.GetBool("host.ssl.enabled")

	c.SetCookie("auth_token", authToken, secs, "/", "", ssl, true)
	c.SetCookie("logged_in", "1", secs, "/", "", ssl, false)
	c.JSON(http.StatusOK, gin.H{
		"userID": user.ID,
		"role":   user.Role,
	})
}

func makeToken(c *jwt.MapClaims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return t.SignedString([]byte(viper.GetString("jwt.secret")))
}
