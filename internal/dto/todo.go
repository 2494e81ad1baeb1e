package dto

import (
	"time"

	"github.com/yukikurage/onestep-api/internal/models"
)

// RankMoveRequest places an item right after PrevID and right before NextID.
// Either may be omitted, not both.
type RankMoveRequest struct {
	PrevID *uint64 `json:"prev_id"`
	NextID *uint64 `json:"next_id"`
}

// CreateTodoRequest is the body of POST /api/todos
type CreateTodoRequest struct {
	Content     string  `json:"content" binding:"required"`
	CategoryID  uint64  `json:"category_id" binding:"required"`
	Date        *string `json:"date"`
	DueTime     *string `json:"due_time"`
	IsCompleted bool    `json:"is_completed"`
}

// UpdateTodoRequest is the body of PATCH /api/todos/:id. Date and DueTime
// accept null to clear the field.
type UpdateTodoRequest struct {
	Content     *string          `json:"content"`
	CategoryID  *uint64          `json:"category_id"`
	Date        Optional[string] `json:"date"`
	DueTime     Optional[string] `json:"due_time"`
	IsCompleted *bool            `json:"is_completed"`
	Rank        *RankMoveRequest `json:"rank"`
}

// CreateSubTodoRequest is one element of the POST /api/todos/:id/subtodos body
type CreateSubTodoRequest struct {
	Content     string  `json:"content" binding:"required"`
	Date        *string `json:"date"`
	DueTime     *string `json:"due_time"`
	IsCompleted bool    `json:"is_completed"`
}

// UpdateSubTodoRequest is the body of PATCH /api/subtodos/:id. A todo_id
// different from the current parent moves the subtodo to that todo.
type UpdateSubTodoRequest struct {
	Content     *string          `json:"content"`
	TodoID      *uint64          `json:"todo_id"`
	Date        Optional[string] `json:"date"`
	DueTime     Optional[string] `json:"due_time"`
	IsCompleted *bool            `json:"is_completed"`
	Rank        *RankMoveRequest `json:"rank"`
}

// SubTodoDTO represents a subtodo in API responses
type SubTodoDTO struct {
	ID          uint64    `json:"id"`
	TodoID      uint64    `json:"todo_id"`
	Content     string    `json:"content"`
	Date        *string   `json:"date"`
	DueTime     *string   `json:"due_time"`
	IsCompleted bool      `json:"is_completed"`
	Rank        string    `json:"rank"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TodoDTO represents a todo in API responses
type TodoDTO struct {
	ID          uint64       `json:"id"`
	UserID      uint64       `json:"user_id"`
	CategoryID  uint64       `json:"category_id"`
	Content     string       `json:"content"`
	Date        *string      `json:"date"`
	DueTime     *string      `json:"due_time"`
	IsCompleted bool         `json:"is_completed"`
	Rank        string       `json:"rank"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Children    []SubTodoDTO `json:"children"`
}

// ToSubTodoDTO converts a SubTodo model to SubTodoDTO
func ToSubTodoDTO(subTodo models.SubTodo) SubTodoDTO {
	return SubTodoDTO{
		ID:          subTodo.ID,
		TodoID:      subTodo.TodoID,
		Content:     subTodo.Content,
		Date:        FormatDate(subTodo.Date),
		DueTime:     subTodo.DueTime,
		IsCompleted: subTodo.IsCompleted,
		Rank:        subTodo.Rank,
		CreatedAt:   subTodo.CreatedAt,
		UpdatedAt:   subTodo.UpdatedAt,
	}
}

// ToSubTodoDTOs converts a slice of subtodos
func ToSubTodoDTOs(subTodos []models.SubTodo) []SubTodoDTO {
	out := make([]SubTodoDTO, len(subTodos))
	for i, subTodo := range subTodos {
		out[i] = ToSubTodoDTO(subTodo)
	}
	return out
}

// ToTodoDTO converts a Todo model to TodoDTO. Children is always a list,
// empty when no subtodos were loaded.
func ToTodoDTO(todo models.Todo) TodoDTO {
	return TodoDTO{
		ID:          todo.ID,
		UserID:      todo.UserID,
		CategoryID:  todo.CategoryID,
		Content:     todo.Content,
		Date:        FormatDate(todo.Date),
		DueTime:     todo.DueTime,
		IsCompleted: todo.IsCompleted,
		Rank:        todo.Rank,
		CreatedAt:   todo.CreatedAt,
		UpdatedAt:   todo.UpdatedAt,
		Children:    ToSubTodoDTOs(todo.SubTodos),
	}
}

// ToTodoDTOs converts a slice of todos
func ToTodoDTOs(todos []models.Todo) []TodoDTO {
	out := make([]TodoDTO, len(todos))
	for i, todo := range todos {
		out[i] = ToTodoDTO(todo)
	}
	return out
}
