package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/onestep-api/internal/dto"
	apierrors "github.com/yukikurage/onestep-api/internal/errors"
	"github.com/yukikurage/onestep-api/internal/middleware"
	"github.com/yukikurage/onestep-api/internal/services"
)

// SubTodoHandler serves subtodo endpoints.
type SubTodoHandler struct {
	subTodoService *services.SubTodoService
}

// NewSubTodoHandler creates a new SubTodoHandler.
func NewSubTodoHandler(subTodoService *services.SubTodoService) *SubTodoHandler {
	return &SubTodoHandler{
		subTodoService: subTodoService,
	}
}

// ListSubTodos returns the subtodos of the todo loaded by RequireTodoAccess
func (h *SubTodoHandler) ListSubTodos(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	todo, exists := middleware.GetTodo(c)
	if !exists {
		apierrors.InternalError(c, "Todo not found in context")
		return
	}

	subTodos, err := h.subTodoService.ListSubTodos(c.Request.Context(), userID, todo.ID)
	if err != nil {
		respondSubTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSubTodoDTOs(subTodos))
}

// CreateSubTodos appends a batch of subtodos, in body order, to the todo loaded by RequireTodoAccess
func (h *SubTodoHandler) CreateSubTodos(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	todo, exists := middleware.GetTodo(c)
	if !exists {
		apierrors.InternalError(c, "Todo not found in context")
		return
	}

	var reqs []dto.CreateSubTodoRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	inputs := make([]services.CreateSubTodoInput, len(reqs))
	for i, req := range reqs {
		date, err := dto.ParseDate(req.Date)
		if err != nil {
			apierrors.BadRequest(c, err.Error())
			return
		}
		inputs[i] = services.CreateSubTodoInput{
			Content:     req.Content,
			Date:        date,
			DueTime:     req.DueTime,
			IsCompleted: req.IsCompleted,
		}
	}

	subTodos, err := h.subTodoService.CreateSubTodos(c.Request.Context(), userID, todo.ID, inputs)
	if err != nil {
		respondSubTodoError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToSubTodoDTOs(subTodos))
}

// UpdateSubTodo updates the fields present in the body. todo_id moves the
// subtodo under another todo; "rank" moves it among its siblings.
func (h *SubTodoHandler) UpdateSubTodo(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	subTodoID, ok := parseIDParam(c, "id", "subtodo")
	if !ok {
		return
	}

	var req dto.UpdateSubTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	date, clearDate, err := optionalDate(req.Date)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}
	dueTime, clearDueTime := optionalString(req.DueTime)

	subTodo, err := h.subTodoService.UpdateSubTodo(c.Request.Context(), userID, subTodoID, services.UpdateSubTodoInput{
		Content:      req.Content,
		TodoID:       req.TodoID,
		Date:         date,
		ClearDate:    clearDate,
		DueTime:      dueTime,
		ClearDueTime: clearDueTime,
		IsCompleted:  req.IsCompleted,
		Move:         toMoveInput(req.Rank),
	})
	if err != nil {
		respondSubTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSubTodoDTO(*subTodo))
}

// MoveSubTodo places a subtodo between prev_id and next_id
func (h *SubTodoHandler) MoveSubTodo(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	subTodoID, ok := parseIDParam(c, "id", "subtodo")
	if !ok {
		return
	}

	var req dto.RankMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	subTodo, err := h.subTodoService.MoveSubTodo(c.Request.Context(), userID, subTodoID, *toMoveInput(&req))
	if err != nil {
		respondSubTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSubTodoDTO(*subTodo))
}

// DeleteSubTodo deletes a subtodo
func (h *SubTodoHandler) DeleteSubTodo(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	subTodoID, ok := parseIDParam(c, "id", "subtodo")
	if !ok {
		return
	}

	subTodo, err := h.subTodoService.DeleteSubTodo(c.Request.Context(), userID, subTodoID)
	if err != nil {
		respondSubTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSubTodoDTO(*subTodo))
}

func respondSubTodoError(c *gin.Context, err error) {
	if respondOrderingError(c, err) || respondValidationError(c, err) {
		return
	}

	switch {
	case errors.Is(err, services.ErrSubTodoNotFound):
		apierrors.NotFound(c, "Subtodo not found")
	case errors.Is(err, services.ErrTodoNotFound):
		apierrors.NotFound(c, "Todo not found")
	case errors.Is(err, services.ErrEmptyBatch),
		errors.Is(err, services.ErrBatchTooLarge):
		apierrors.BadRequest(c, err.Error())
	default:
		respondInternalError(c, err)
	}
}
