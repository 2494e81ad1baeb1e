package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yukikurage/onestep-api/internal/constants"
	apierrors "github.com/yukikurage/onestep-api/internal/errors"
)

// RequireAuth loads the session user, stores it under ContextKeyUserID and
// tags the request logger with user_id, the group key of todos and categories.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := sessionUserID(sessions.Default(c))
		if !ok {
			apierrors.Unauthorized(c, "Not authenticated")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)

		ctx := c.Request.Context()
		l := zerolog.Ctx(ctx).With().Uint64("user_id", userID).Logger()
		c.Request = c.Request.WithContext(l.WithContext(ctx))

		c.Next()
	}
}

// sessionUserID reads the user id saved by login. Cookie and redis stores
// hand it back as the type it was saved with.
func sessionUserID(session sessions.Session) (uint64, bool) {
	return toUserID(session.Get(constants.ContextKeyUserID))
}

// GetUserID returns the user stored by RequireAuth.
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return toUserID(userID)
}

func toUserID(v any) (uint64, bool) {
	switch id := v.(type) {
	case uint64:
		return id, true
	case uint:
		return uint64(id), true
	case int:
		if id < 0 {
			return 0, false
		}
		return uint64(id), true
	default:
		return 0, false
	}
}
