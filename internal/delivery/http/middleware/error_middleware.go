package middleware

import (
	"errors"
	"net/http"

	"meal-planner-backend/internal/delivery/http/response"
	"meal-planner-backend/pkg/apperror"
	"meal-planner-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler is the single top-level error sink. Known application
// errors are rendered with their kind and message; anything else is
// logged in full and flattened to a generic internal error so no driver
// or stack detail crosses the boundary.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Kind == apperror.KindInternal {
				logger.Log.Error("internal error",
					"error", appErr.Err,
					"path", c.Request.URL.Path,
				)
			}
			response.Error(c, appErr.Code, appErr.Kind, appErr.Message)
			return
		}

		logger.Log.Error("unhandled error",
			"error", err,
			"path", c.Request.URL.Path,
		)
		response.Error(c, http.StatusInternalServerError, apperror.KindInternal,
			"An unexpected error occurred. Please try again later.")
	}
}
