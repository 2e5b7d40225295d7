package api

import (
	"net/http"

	"webmail/backend/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EmailView returns a single email. Viewing an unread email marks it
// read, viewing an already-read one changes nothing.
func (a *API) EmailView(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	email := a.fetchOwnedEmail(c)
	if email == nil {
		return
	}

	if !email.Read {
		err := a.DB.
			Model(model.Email{}).
			Where("id = ?", email.ID).
			Update("read", true).
			Error
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to mark email as read", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		email.Read = true
	}

	c.JSON(http.StatusOK, email)
}
