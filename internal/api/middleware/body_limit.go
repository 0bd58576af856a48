package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Diwak4r/ERP-System/pkg/response"
)

// BodyLimit caps the request body at maxBytes.
// Requests announcing a larger Content-Length are rejected up front; others
// are wrapped in http.MaxBytesReader so binding fails once the cap is hit.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "request body too large")
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()
	}
}
