package api

import (
	"net/http"

	"webmail/backend/session"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func (a *API) UserLogout(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	token, err := c.Cookie(session.CookieName)
	if err == nil {
		if err := a.Sessions.Delete(token); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to delete session", zap.Error(err), zap.String("requestID", requestID))
			return
		}
	}

	c.SetCookie(session.CookieName, "", -1, "/", "", viper.GetBool("host.ssl.enabled"), true)
	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}
