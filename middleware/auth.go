package middleware

import (
	"errors"
	"net/http"
	"strings"

	"webmail/backend/model"
	"webmail/backend/security"
	"webmail/backend/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrBadCredential means the request presented a credential that failed
// verification. Any other resolver error is a backend failure and maps
// to 500, not 401.
var ErrBadCredential = errors.New("invalid or expired credentials")

// Resolver maps request credentials to a user id. Returns ("", nil) when
// the request simply doesn't carry this kind of credential, so the next
// resolver in line gets a shot.
type Resolver interface {
	Resolve(c *gin.Context) (userID string, err error)
}

// BearerResolver authenticates requests carrying a signed token in the
// Authorization header
type BearerResolver struct{}

func (BearerResolver) Resolve(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", nil
	}

	userID, err := security.ParseAuthToken(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return "", ErrBadCredential
	}

	return userID, nil
}

// SessionResolver authenticates requests carrying a session cookie
type SessionResolver struct {
	Sessions *session.Store
}

func (r SessionResolver) Resolve(c *gin.Context) (string, error) {
	token, err := c.Cookie(session.CookieName)
	if err != nil {
		return "", nil
	}

	userID, err := r.Sessions.Resolve(token)
	if err == session.ErrNoSession {
		return "", nil
	}

	return userID, err
}

// NewAuthMiddleware resolves the caller's identity by trying each
// resolver in order, first match wins. The matched user must still exist
// in the database; the resolved id is set as userID on the context.
func NewAuthMiddleware(db *gorm.DB, resolvers ...Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		var userID string

		for _, r := range resolvers {
			id, err := r.Resolve(c)
			if err != nil {
				if errors.Is(err, ErrBadCredential) {
					c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
						"error":     "Invalid or expired credentials",
						"requestID": requestID,
					})
					return
				}

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error":     "Internal server error",
					"requestID": requestID,
				})

				zap.L().Error("Credential resolver failed", zap.Error(err), zap.String("requestID", requestID))
				return
			}

			if id != "" {
				userID = id
				break
			}
		}

		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Not authenticated",
				"requestID": requestID,
			})
			return
		}

		// A valid token may outlive its user, so check the row is still there
		var user model.User
		if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error":     "Not authenticated",
					"requestID": requestID,
				})
				return
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to check if user exists", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}
