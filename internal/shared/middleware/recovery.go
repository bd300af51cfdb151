package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/logger"
)

// Recovery converts handler panics into the standard error envelope
// instead of letting the connection drop mid-response.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic recovered", fmt.Errorf("%s %s (request %s): %v",
					c.Request.Method, c.Request.URL.Path, c.GetString("request_id"), rec))
				response.ErrorResponse(c, http.StatusInternalServerError,
					"INTERNAL_SERVER_ERROR", "Internal server error")
				c.Abort()
			}
		}()

		c.Next()
	}
}
