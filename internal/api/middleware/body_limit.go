package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/benitha200/cherryapp-backend/pkg/response"
)

// BodyLimit caps request bodies at maxBytes.
// Oversized chunked bodies fail later in binding with "http: request body too large".
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 && c.Request.Body != nil {
			if c.Request.ContentLength > maxBytes {
				response.PayloadTooLarge(c, 10005, "request body too large")
				c.Abort()
				return
			}
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()
	}
}
