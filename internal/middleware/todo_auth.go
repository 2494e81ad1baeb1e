package middleware

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yukikurage/onestep-api/internal/constants"
	apierrors "github.com/yukikurage/onestep-api/internal/errors"
	"github.com/yukikurage/onestep-api/internal/models"
	"github.com/yukikurage/onestep-api/internal/ordering"
	"github.com/yukikurage/onestep-api/internal/repository"
)

// RequireTodoAccess loads the live todo named by the :id parameter and
// stores it in the context. Todos of other users are reported as missing.
func RequireTodoAccess(todos repository.TodoRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		todoID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid todo ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		todo, err := todos.FindLive(c.Request.Context(), userID, todoID)
		if err != nil {
			if errors.Is(err, ordering.ErrNotFound) {
				apierrors.NotFound(c, "Todo not found")
			} else {
				zerolog.Ctx(c.Request.Context()).Error().Err(err).Uint64("todo_id", todoID).Msg("failed to load todo")
				apierrors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyTodo, todo)
		c.Next()
	}
}

// GetTodo retrieves the todo stored by RequireTodoAccess
func GetTodo(c *gin.Context) (*models.Todo, bool) {
	value, exists := c.Get(constants.ContextKeyTodo)
	if !exists {
		return nil, false
	}
	todo, ok := value.(*models.Todo)
	return todo, ok
}
