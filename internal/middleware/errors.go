package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/fxpulse/internal/domain/dto"
	"github.com/guttosm/fxpulse/internal/logger"
)

// ErrorHandler turns errors attached with c.Error into a 500 ErrorResponse
// when no handler has written a response yet.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}
	last := c.Errors.Last()
	rid, _ := c.Get(RequestIDKey)
	logger.L().Error().Str("request_id", toString(rid)).Err(last.Err).Msg("unhandled request error")
	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", last.Err))
}

// AbortWithError records err on the context and aborts with a JSON ErrorResponse.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
