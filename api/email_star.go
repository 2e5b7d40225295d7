package api

import (
	"net/http"

	"webmail/backend/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type starBody struct {
	Starred *bool `json:"starred"`
}

func (a *API) EmailSetStarred(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data starBody
	if err := c.ShouldBind(&data); err != nil || data.Starred == nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Starred status must be a boolean",
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
		Update("starred", *data.Starred).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update email starred flag", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	email.Starred = *data.Starred
	c.JSON(http.StatusOK, email)
}
