// Package api contains all endpoints available
package api

import (
	"fmt"
	"time"

	"webmail/backend/db"
	"webmail/backend/middleware"
	"webmail/backend/security"
	"webmail/backend/session"

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

type API struct {
	DB       *gorm.DB
	Router   *gin.Engine
	Argon    *security.ArgonHash
	Sessions *session.Store
}

func NewRouter() (*API, error) {
	a := &API{}

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
			AllowOrigins:     []string{viper.GetString("host.cors_origin")},
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
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

	a.Argon = security.NewArgon()
	a.Sessions = session.NewStore(db, time.Duration(viper.GetInt("session.ttl_hours"))*time.Hour)

	auth := middleware.NewAuthMiddleware(db,
		middleware.BearerResolver{},
		middleware.SessionResolver{Sessions: a.Sessions},
	)
	limit := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: viper.GetInt("rate_limit.rps"),
		Burst:             viper.GetInt("rate_limit.burst"),
	})
	body := middleware.BodySizeLimiter(1 << 20)

	main := router.Group("/api")
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)

		// HEAD /api/validate		-> Validates the caller's credentials
		main.HEAD("/validate", auth, a.Validate)

		// POST /api/register 		-> Registers a new user
		main.POST("/register", limit, body, a.UserRegister)

		// POST /api/login 		-> Logs in a user and returns a JWT token
		main.POST("/login", limit, body, a.UserLogin)

		// POST /api/logout 		-> Terminates the caller's session.
		// Deliberately not auth-gated, logging out without a live
		// session still answers 200
		main.POST("/logout", a.UserLogout)

		// GET /api/user 		-> Returns the authenticated user
		main.GET("/user", auth, a.UserFetch)
	}

	emails := main.Group("/emails", auth, body)
	{
		// GET /api/emails/view/:id 	-> Returns a single email and marks it read
		emails.GET("/view/:id", a.EmailView)

		// GET /api/emails/:folder 	-> Lists a folder of the caller's mailbox
		emails.GET("/:folder", a.EmailList)

		// POST /api/emails 		-> Sends (creates) a new email
		emails.POST("", a.EmailSend)

		// PATCH /api/emails/:id/status	-> Moves an email between folders
		emails.PATCH("/:id/status", a.EmailSetStatus)

		// PATCH /api/emails/:id/read	-> Marks an email read or unread
		emails.PATCH("/:id/read", a.EmailSetRead)

		// PATCH /api/emails/:id/star	-> Stars or unstars an email
		emails.PATCH("/:id/star", a.EmailSetStarred)

		// DELETE /api/emails/:id 	-> Permanently deletes an email
		emails.DELETE("/:id", a.EmailDelete)
	}

	a.Sessions.StartCleanup(time.Hour)

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

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}
