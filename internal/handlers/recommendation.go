package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/onestep-api/internal/errors"
	"github.com/yukikurage/onestep-api/internal/middleware"
	"github.com/yukikurage/onestep-api/internal/services"
)

// RecommendationHandler serves LLM subtodo suggestions.
type RecommendationHandler struct {
	recommendService *services.RecommendService
}

// NewRecommendationHandler creates a new RecommendationHandler.
func NewRecommendationHandler(recommendService *services.RecommendService) *RecommendationHandler {
	return &RecommendationHandler{
		recommendService: recommendService,
	}
}

// Recommend suggests subtodos for the todo loaded by RequireTodoAccess.
// Nothing is saved; the client creates the subtodos it keeps.
func (h *RecommendationHandler) Recommend(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	todo, exists := middleware.GetTodo(c)
	if !exists {
		apierrors.InternalError(c, "Todo not found in context")
		return
	}

	rec, err := h.recommendService.Recommend(c.Request.Context(), userID, todo.ID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAIServiceNotConfigured):
			apierrors.ServiceUnavailable(c, "AI service is not configured. Please set OPENAI_API_KEY.")
		case errors.Is(err, services.ErrRecommendCooldown):
			apierrors.TooManyRequests(c, "Please wait before requesting recommendations again")
		case errors.Is(err, services.ErrTodoNotFound):
			apierrors.NotFound(c, "Todo not found")
		default:
			respondInternalError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, rec)
}
