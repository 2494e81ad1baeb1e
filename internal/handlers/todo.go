package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/onestep-api/internal/dto"
	apierrors "github.com/yukikurage/onestep-api/internal/errors"
	"github.com/yukikurage/onestep-api/internal/services"
)

// TodoHandler serves todo endpoints.
type TodoHandler struct {
	todoService *services.TodoService
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(todoService *services.TodoService) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
	}
}

// ListTodos returns the user's todos in rank order.
// start_date and end_date (YYYY-MM-DD) restrict the list to dated todos in that range.
func (h *TodoHandler) ListTodos(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	input := services.ListTodosInput{UserID: userID}
	if v, exists := c.GetQuery("start_date"); exists {
		start, err := dto.ParseDate(&v)
		if err != nil {
			apierrors.BadRequest(c, err.Error())
			return
		}
		input.StartDate = start
	}
	if v, exists := c.GetQuery("end_date"); exists {
		end, err := dto.ParseDate(&v)
		if err != nil {
			apierrors.BadRequest(c, err.Error())
			return
		}
		input.EndDate = end
	}

	todos, err := h.todoService.ListTodos(c.Request.Context(), input)
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTodoDTOs(todos))
}

// GetTodo returns one todo with its subtodos
func (h *TodoHandler) GetTodo(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	todoID, ok := parseIDParam(c, "id", "todo")
	if !ok {
		return
	}

	todo, err := h.todoService.GetTodo(c.Request.Context(), userID, todoID)
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTodoDTO(*todo))
}

// CreateTodo appends a new todo at the bottom of the user's list
func (h *TodoHandler) CreateTodo(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	todo, err := h.todoService.CreateTodo(c.Request.Context(), services.CreateTodoInput{
		UserID:      userID,
		Content:     req.Content,
		CategoryID:  req.CategoryID,
		Date:        date,
		DueTime:     req.DueTime,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTodoDTO(*todo))
}

// UpdateTodo updates the fields present in the body. A "rank" object moves the todo as well.
func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	todoID, ok := parseIDParam(c, "id", "todo")
	if !ok {
		return
	}

	var req dto.UpdateTodoRequest
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

	todo, err := h.todoService.UpdateTodo(c.Request.Context(), userID, todoID, services.UpdateTodoInput{
		Content:      req.Content,
		CategoryID:   req.CategoryID,
		Date:         date,
		ClearDate:    clearDate,
		DueTime:      dueTime,
		ClearDueTime: clearDueTime,
		IsCompleted:  req.IsCompleted,
		Move:         toMoveInput(req.Rank),
	})
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTodoDTO(*todo))
}

// MoveTodo places a todo between prev_id and next_id
func (h *TodoHandler) MoveTodo(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	todoID, ok := parseIDParam(c, "id", "todo")
	if !ok {
		return
	}

	var req dto.RankMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	todo, err := h.todoService.MoveTodo(c.Request.Context(), userID, todoID, *toMoveInput(&req))
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTodoDTO(*todo))
}

// DeleteTodo deletes a todo and its subtodos
func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	todoID, ok := parseIDParam(c, "id", "todo")
	if !ok {
		return
	}

	todo, err := h.todoService.DeleteTodo(c.Request.Context(), userID, todoID)
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTodoDTO(*todo))
}

// Inbox returns undated todos and todos with undated subtodos
func (h *TodoHandler) Inbox(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	todos, err := h.todoService.Inbox(c.Request.Context(), userID)
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTodoDTOs(todos))
}

func respondTodoError(c *gin.Context, err error) {
	if respondOrderingError(c, err) || respondValidationError(c, err) {
		return
	}

	switch {
	case errors.Is(err, services.ErrTodoNotFound):
		apierrors.NotFound(c, "Todo not found")
	case errors.Is(err, services.ErrCategoryNotFound):
		apierrors.BadRequest(c, "category_id does not name one of your categories")
	case errors.Is(err, services.ErrInvalidDateRange):
		apierrors.BadRequest(c, err.Error())
	default:
		respondInternalError(c, err)
	}
}
