package api

import (
	"net/http"

	"webmail/backend/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EmailList returns every email in one of the caller's folders, newest
// first. The starred folder is a view over the starred flag and cuts
// across all statuses.
func (a *API) EmailList(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	folder := c.Param("folder")
	if !model.ValidFolder(folder) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid folder specified",
			"requestID": requestID,
		})
		return
	}

	q := a.DB.Where("user_id = ?", userID)

	if folder == model.FolderStarred {
		q = q.Where("starred = ?", true)
	} else {
		q = q.Where("status = ?", folder)
	}

	emails := []model.Email{}

	err := q.
		Order("created_at desc").
		Find(&emails).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch emails", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, emails)
}
