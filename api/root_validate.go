package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Validate only confirms the auth middleware let the request through,
// so clients can check a stored token or session without fetching data
func (a *API) Validate(c *gin.Context) {
	c.Status(http.StatusOK)
}
