package middleware

import (
	"errors"
	"net/http"

	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func ErrorHandler(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		fields := []zap.Field{
			zap.String("request_id", c.GetString(RequestIDKey)),
			zap.String("path", c.FullPath()),
		}

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			// The cause stays in the logs; clients only see the public message.
			if appErr.Code >= http.StatusInternalServerError {
				log.Error(appErr.Message, append(fields, zap.Error(appErr.Err))...)
			} else if appErr.Err != nil {
				log.Info(appErr.Message, append(fields, zap.Error(appErr.Err))...)
			}
			response.Error(c, appErr.Code, appErr.Message)
			return
		}

		log.Error("Internal Server Error", append(fields, zap.Error(err))...)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.")
	}
}
