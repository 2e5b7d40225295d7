package api

import (
	"errors"
	"net/http"
	"time"

	"webmail/backend/model"
	"webmail/backend/security"
	"webmail/backend/session"
	"webmail/backend/validators"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const idCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

type registerBody struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *API) UserRegister(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data registerBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := validators.UsernameValidator(data.Username); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	if err := validators.EmailValidator(data.Email); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	if err := validators.PasswordValidator(data.Password); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	var taken bool

	r := a.DB.Model(model.User{}).
		Select("count(*) > 0").
		Where("username = ?", data.Username).
		Find(&taken)
	if r.Error != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to check if username is registered", zap.Error(r.Error), zap.String("requestID", requestID))
		return
	}

	if taken {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Username already exists",
			"requestID": requestID,
		})
		return
	}

	r = a.DB.Model(model.User{}).
		Select("count(*) > 0").
		Where("email = ?", data.Email).
		Find(&taken)
	if r.Error != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to check if email is registered", zap.Error(r.Error), zap.String("requestID", requestID))
		return
	}

	if taken {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Email already exists",
			"requestID": requestID,
		})
		return
	}

	hash, err := a.Argon.GenerateFromPassword(data.Password)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to hash password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	userID, err := gonanoid.Generate(idCharset, 16)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate user ID", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	user := model.User{
		ID:           userID,
		Username:     data.Username,
		Email:        data.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	if err := a.DB.Create(&user).Error; err != nil {
		// The pre-checks race with concurrent registrations, the unique
		// index has the final say
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":     "Username or email already exists",
				"requestID": requestID,
			})

			zap.L().Debug("Failed to create user", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	token, err := a.openSession(c, &user)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to establish session", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":  user,
		"token": token,
	})
}

// openSession creates a session cookie for the user and mints the bearer
// token returned alongside it
func (a *API) openSession(c *gin.Context, user *model.User) (string, error) {
	token, err := security.MakeAuthToken(user.ID, user.Username)
	if err != nil {
		return "", err
	}

	sessToken, err := a.Sessions.Create(user.ID)
	if err != nil {
		return "", err
	}

	maxAge := int(a.Sessions.TTL().Seconds())
	ssl := viper.GetBool("host.ssl.enabled")

	c.SetCookie(session.CookieName, sessToken, maxAge, "/", "", ssl, true)

	return token, nil
}
