package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Heartbeat answers liveness probes, no auth required
func (a *API) Heartbeat(c *gin.Context) {
	c.Status(http.StatusOK)
}
