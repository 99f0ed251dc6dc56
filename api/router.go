// Package api contains all endpoints available
package api

import (
	"fmt"
	"time"

	"authhub/auth-api/db"
	"authhub/auth-api/middleware"
	"authhub/auth-api/security"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var store = persist.NewMemoryStore(time.Minute)

type API struct {
	DB     *gorm.DB
	Router *gin.Engine
	Argon  *security.ArgonHash
}

func NewRouter() (*API, error) {
	a := &API{
		Argon: security.New(),
	}

	db, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	a.DB = db

	makeLogger()

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:5173"},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "TurnstileToken"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true

	jwt := middleware.NewJWTMiddleware(db)
	staff := middleware.NewStaffMiddleware()
	turnstile := middleware.NewTurnstileMiddleware()

	main := router.Group("/api")
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)

		// HEAD /api/validate		-> Validates a JWT token
		main.HEAD("/validate", jwt, a.Validate)

		// GET /api/stats		-> Public aggregate account stats
		main.GET("/stats", cacheFor(30), a.Stats)

		// GET /api/setup-admin		-> One-time admin bootstrap, guarded by a secret key
		main.GET("/setup-admin", a.SetupAdmin)
	}

	users := main.Group("/users", middleware.BodySizeLimiter(1<<20))
	{
		// GET /api/users		-> Returns the profile of the logged in user
		users.GET("", jwt, a.UserFetch)

		// POST /api/users 		-> Registers a new user
		users.POST("", turnstile, a.UserRegister)

		// POST /api/users/login 	-> Logs in a user and returns a JWT cookie
		users.POST("/login", a.UserLogin)

		// POST /api/users/logout 	-> Clears the session cookies
		users.POST("/logout", a.UserLogout)

		// GET /api/users/verify	-> Consumes an email verification token
		users.GET("/verify", a.UserVerify)

		// POST /api/users/resend	-> Reissues a verification token and resends the mail
		users.POST("/resend", a.UserResend)
	}

	admin := main.Group("/admin", middleware.BodySizeLimiter(1<<20), jwt, staff)
	{
		// GET /api/admin/users			-> Lists all accounts
		admin.GET("/users", a.AdminListUsers)

		// POST /api/admin/users/:id/active	-> Toggles an account's active state
		admin.POST("/users/:id/active", a.AdminToggleActive)

		// POST /api/admin/users/:id/role	-> Changes an account's role
		admin.POST("/users/:id/role", a.AdminChangeRole)
	}

	return a, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	if viper.GetString("app.log_level") == "debug" {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}
