package middleware

import (
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	apierrors "github.com/yukikurage/onestep-api/internal/errors"
)

// RecoveryWithLog turns a panic into a 500 and logs it with the stack.
func RecoveryWithLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				zerolog.Ctx(c.Request.Context()).Error().
					Interface("panic", err).
					Str("stack", string(debug.Stack())).
					Msg("panic recovered")
				apierrors.InternalError(c, "")
				c.Abort()
			}
		}()
		c.Next()
	}
}
