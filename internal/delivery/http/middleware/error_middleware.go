package middleware

import (
	"errors"
	"net/http"

	"go-devconnector-backend/internal/delivery/http/response"
	"go-devconnector-backend/pkg/apperror"
	"go-devconnector-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError {
				logger.Log.Error("request failed",
					"error", appErr.Unwrap(),
					"path", c.FullPath(),
					"request_id", RequestIDFrom(c),
				)
			}
			var details interface{}
			if len(appErr.Details) > 0 {
				details = appErr.Details
			}
			response.Error(c, appErr.Code, appErr.Message, details)
			return
		}

		// Never expose internal error details to clients.
		logger.Log.Error("unhandled error",
			"error", err,
			"path", c.FullPath(),
			"request_id", RequestIDFrom(c),
		)
		response.Error(c, http.StatusInternalServerError, "Server Error", nil)
	}
}
