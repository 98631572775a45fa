package middleware

import (
	"net/http"
	"time"

	"github.com/MartinOstios/backend-posco/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const internalErrorDetail = "Internal server error"

// AbortWithError writes the envelope for a domain error. Anything that is not
// an *apierror.Error is logged with the request id and hidden behind a 500.
func AbortWithError(c *gin.Context, err error) {
	if e, ok := apierror.As(err); ok {
		c.AbortWithStatusJSON(e.Status(), e.Envelope())
		return
	}
	log.Error().
		Str("request_id", c.GetString(RequestIDKey)).
		Str("path", c.FullPath()).
		Str("method", c.Request.Method).
		Err(err).
		Msg("unhandled error")
	c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New(internalErrorDetail))
}

// ErrorHandler catches errors pushed with c.Error that no handler answered.
// Stack traces are never sent to clients.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		AbortWithError(c, c.Errors.Last().Err)
	}
}

// Recovery handles panics and converts them into 500 responses.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Str("request_id", c.GetString(RequestIDKey)).
					Interface("panic", r).
					Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New(internalErrorDetail))
			}
		}()
		c.Next()
	}
}

// Logger logs each request with method, path, status, latency, and request_id.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		ev := log.Info()
		if status >= http.StatusInternalServerError {
			ev = log.Error()
		} else if status >= http.StatusBadRequest {
			ev = log.Warn()
		}
		ev.Str("request_id", c.GetString(RequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
