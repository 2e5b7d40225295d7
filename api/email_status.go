package api

import (
	"net/http"

	"webmail/backend/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type statusBody struct {
	Status string `json:"status"`
}

// EmailSetStatus moves an email between folders. Any move between the
// four canonical statuses is allowed; "starred" is a flag, not a status,
// and gets rejected here.
func (a *API) EmailSetStatus(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data statusBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	status, ok := model.ParseStatus(data.Status)
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid status",
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
		Update("status", status).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update email status", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	email.Status = status
	c.JSON(http.StatusOK, email)
}
