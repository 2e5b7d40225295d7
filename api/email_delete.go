package api

import (
	"net/http"

	"webmail/backend/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EmailDelete permanently removes an email. This is independent of the
// trash status, deleting works from any folder.
func (a *API) EmailDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	email := a.fetchOwnedEmail(c)
	if email == nil {
		return
	}

	err := a.DB.
		Where("id = ?", email.ID).
		Delete(model.Email{}).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete email", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.Status(http.StatusNoContent)
}
