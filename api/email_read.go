package api

import (
	"net/http"

	"webmail/backend/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type readBody struct {
	Read *bool `json:"read"`
}

func (a *API) EmailSetRead(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data readBody
	if err := c.ShouldBind(&data); err != nil || data.Read == nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Read status must be a boolean",
			"requestID": requestID,
		})
		return
	}

	email := a.fetchOwnedEmail(c)
	if email == nil {
		return
	}

	err := a.DB.
		Model(model.Email{}).
		Where("id = ?", email.ID).
		Update("read", *data.Read).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update email read flag", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	email.Read = *data.Read
	c.JSON(http.StatusOK, email)
}
