package api

import (
	"net/http"
	"time"

	"webmail/backend/model"
	"webmail/backend/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type sendBody struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// EmailSend persists a new email owned by the caller. New mail always
// lands in the inbox, unread and unstarred; callers can't pick a status
// here.
func (a *API) EmailSend(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var data sendBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := validators.EmailValidator(data.ToEmail); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Recipient: " + err.Error(),
			"requestID": requestID,
		})
		return
	}

	if data.Subject == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Subject field can't be empty",
			"requestID": requestID,
		})
		return
	}

	if data.Body == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Body field can't be empty",
			"requestID": requestID,
		})
		return
	}

	var sender model.User
	if err := a.DB.Where("id = ?", userID).First(&sender).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch sender", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	email := model.Email{
		UserID:    sender.ID,
		FromEmail: sender.Email,
		FromName:  sender.Username,
		ToEmail:   data.ToEmail,
		Subject:   data.Subject,
		Body:      data.Body,
		Status:    model.StatusInbox,
		Read:      false,
		Starred:   false,
		CreatedAt: time.Now().UnixMilli(),
	}

	if err := a.DB.Create(&email).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create email", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, email)
}
