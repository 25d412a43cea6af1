package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/protheus/connector/internal/interfaces/http/dto"
)

// APIKeyHeader is the header carrying the shared connector API key.
const APIKeyHeader = "X-API-Key"

// APIKey returns a middleware that rejects requests without the configured
// shared key. An empty configured key disables the check, which is only
// acceptable in development; production config validation enforces a key.
func APIKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.Next()
			return
		}

		provided := c.GetHeader(APIKeyHeader)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeUnauthorized,
				"missing or invalid API key",
				GetRequestID(c),
			))
			return
		}
		c.Next()
	}
}
