package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/hospital-api/internal/handler"
)

// ErrorHandler renders the last error a handler pushed with c.Error.
func ErrorHandler(config ValidationConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		requestID := c.GetString(ContextRequestID)
		for _, e := range c.Errors {
			log.Error().
				Err(e.Err).
				Str("request_id", requestID).
				Str("path", c.Request.URL.Path).
				Str("method", c.Request.Method).
				Msg("Request error")
		}

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last().Err
		status := http.StatusInternalServerError
		var coded interface{ StatusCode() int }
		if errors.As(lastErr, &coded) {
			status = coded.StatusCode()
		}

		resp := handler.NewErrorResponse(lastErr.Error())

		var verrs validator.ValidationErrors
		if errors.As(lastErr, &verrs) {
			status = http.StatusBadRequest
			resp = handler.NewErrorResponse("validation failed")
			resp.Data = gin.H{"errors": validationErrors(verrs, config)}
		} else if status >= http.StatusInternalServerError {
			resp = handler.NewErrorResponse("internal server error")
		}

		c.JSON(status, resp)
	}
}
