package identity

import "github.com/gin-gonic/gin"

// Header carries the opaque numeric caller identifier.
// It is trusted as-is; there is no token or signature verification.
const Header = "X-Sharer-User-Id"

const contextKey = "callerID"

// CallerID returns the caller id stored by the Required middleware,
// or 0 if the middleware did not run.
func CallerID(c *gin.Context) int64 {
	if v, ok := c.Get(contextKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

func setCallerID(c *gin.Context, id int64) {
	c.Set(contextKey, id)
}
