package api

import (
	"net/http"
	"strconv"

	"webmail/backend/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// fetchOwnedEmail loads the email named by the :id route param and runs
// the ownership check against the authenticated caller. Responds 400/404/
// 403/500 as appropriate and returns nil once it has done so; the 404
// must win over the 403 so callers can't probe which ids exist.
func (a *API) fetchOwnedEmail(c *gin.Context) *model.Email {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	emailID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Email ID must be a positive integer",
			"requestID": requestID,
		})
		return nil
	}

	var email model.Email

	err = a.DB.
		Where("id = ?", emailID).
		First(&email).
		Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "Email not found",
				"requestID": requestID,
			})
			return nil
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch email", zap.Error(err), zap.String("requestID", requestID))
		return nil
	}

	if email.UserID != userID {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":     "Access denied",
			"requestID": requestID,
		})
		return nil
	}

	return &email
}
