package identity

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shareit/internal/pkg/apperror"
	"shareit/internal/pkg/response"
)

var errMissingHeader = apperror.New(http.StatusBadRequest, "X-Sharer-User-Id header is required.")

// Required aborts with a 400 envelope unless the request carries a
// parseable caller id in the X-Sharer-User-Id header.
func Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(Header)
		if raw == "" {
			response.Error(c, errMissingHeader)
			c.Abort()
			return
		}

		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, errMissingHeader)
			c.Abort()
			return
		}

		setCallerID(c, id)
		c.Next()
	}
}
