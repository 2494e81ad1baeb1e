package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/yukikurage/onestep-api/internal/models"
	"github.com/yukikurage/onestep-api/internal/ordering"
	"github.com/yukikurage/onestep-api/internal/repository"
)

var (
	ErrTodoNotFound     = errors.New("todo not found")
	ErrInvalidDateRange = errors.New("start_date and end_date must be given together and in order")
)

// TodoService handles todo business logic. Todos are ordered per user.
type TodoService struct {
	repos *repository.Repositories
}

// NewTodoService creates a new TodoService
func NewTodoService(repos *repository.Repositories) *TodoService {
	return &TodoService{
		repos: repos,
	}
}

func todoStore(repos *repository.Repositories) *ordering.Store[*models.Todo] {
	return ordering.NewStore[*models.Todo](repos.Todos)
}

// ListTodosInput represents filters for listing todos
type ListTodosInput struct {
	UserID    uint64
	StartDate *time.Time
	EndDate   *time.Time
}

// CreateTodoInput represents input for creating a todo
type CreateTodoInput struct {
	UserID      uint64
	Content     string
	CategoryID  uint64
	Date        *time.Time
	DueTime     *string
	IsCompleted bool
}

// UpdateTodoInput represents input for updating a todo. Move, when set, is
// applied after the field changes in the same transaction.
type UpdateTodoInput struct {
	Content      *string
	CategoryID   *uint64
	Date         *time.Time
	ClearDate    bool
	DueTime      *string
	ClearDueTime bool
	IsCompleted  *bool
	Move         *MoveInput
}

// ListTodos returns the live todos of a user in rank order with their subtodos.
// With a date range only dated todos and dated subtodos inside it are returned.
func (s *TodoService) ListTodos(ctx context.Context, input ListTodosInput) ([]models.Todo, error) {
	if (input.StartDate == nil) != (input.EndDate == nil) {
		return nil, ErrInvalidDateRange
	}

	if input.StartDate != nil {
		if input.EndDate.Before(*input.StartDate) {
			return nil, ErrInvalidDateRange
		}
		todos, err := s.repos.Todos.ListByDateRange(ctx, input.UserID, *input.StartDate, *input.EndDate)
		if err != nil {
			return nil, fmt.Errorf("failed to list todos: %w", err)
		}
		return todos, nil
	}

	live, err := todoStore(s.repos).ListLive(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}

	todos := make([]models.Todo, len(live))
	todoIDs := make([]uint64, len(live))
	index := make(map[uint64]int, len(live))
	for i, todo := range live {
		todos[i] = *todo
		todoIDs[i] = todo.ID
		index[todo.ID] = i
	}

	subTodos, err := s.repos.SubTodos.ListByTodoIDs(ctx, todoIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list subtodos: %w", err)
	}
	for _, subTodo := range subTodos {
		i := index[subTodo.TodoID]
		todos[i].SubTodos = append(todos[i].SubTodos, subTodo)
	}

	return todos, nil
}

// GetTodo returns a live todo of the user with its subtodos
func (s *TodoService) GetTodo(ctx context.Context, userID, todoID uint64) (*models.Todo, error) {
	todo, err := s.repos.Todos.FindLive(ctx, userID, todoID)
	if err != nil {
		return nil, notFoundAs(err, ErrTodoNotFound)
	}

	subTodos, err := s.repos.SubTodos.ListLive(ctx, todo.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subtodos: %w", err)
	}
	todo.SubTodos = make([]models.SubTodo, len(subTodos))
	for i, subTodo := range subTodos {
		todo.SubTodos[i] = *subTodo
	}

	return todo, nil
}

// CreateTodo validates the input and appends the todo at the bottom of the user's list
func (s *TodoService) CreateTodo(ctx context.Context, input CreateTodoInput) (*models.Todo, error) {
	content, err := validateContent(input.Content)
	if err != nil {
		return nil, err
	}
	dueTime, err := normalizeDueTime(input.DueTime)
	if err != nil {
		return nil, err
	}

	var created *models.Todo
	err = retryOnRankCollision(ctx, func() error {
		return s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
			if err := ensureCategory(ctx, tx, input.UserID, input.CategoryID); err != nil {
				return err
			}

			todo := &models.Todo{
				UserID:      input.UserID,
				CategoryID:  input.CategoryID,
				Content:     content,
				Date:        input.Date,
				DueTime:     dueTime,
				IsCompleted: input.IsCompleted,
			}
			appended, err := todoStore(tx).Append(ctx, todo)
			if err != nil {
				return err
			}
			created = appended
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	zerolog.Ctx(ctx).Debug().
		Uint64("todo_id", created.ID).
		Str("rank", created.Rank).
		Msg("todo created")
	return created, nil
}

// UpdateTodo applies the given field changes and, optionally, a move
func (s *TodoService) UpdateTodo(ctx context.Context, userID, todoID uint64, input UpdateTodoInput) (*models.Todo, error) {
	var content *string
	if input.Content != nil {
		c, err := validateContent(*input.Content)
		if err != nil {
			return nil, err
		}
		content = &c
	}
	dueTime, err := normalizeDueTime(input.DueTime)
	if err != nil {
		return nil, err
	}

	var updated *models.Todo
	err = retryOnRankCollision(ctx, func() error {
		return s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
			todo, err := tx.Todos.FindLive(ctx, userID, todoID)
			if err != nil {
				return notFoundAs(err, ErrTodoNotFound)
			}

			if content != nil {
				todo.Content = *content
			}
			if input.CategoryID != nil && *input.CategoryID != todo.CategoryID {
				if err := ensureCategory(ctx, tx, userID, *input.CategoryID); err != nil {
					return err
				}
				todo.CategoryID = *input.CategoryID
			}
			if input.ClearDate {
				todo.Date = nil
			} else if input.Date != nil {
				todo.Date = input.Date
			}
			if input.ClearDueTime {
				todo.DueTime = nil
			} else if dueTime != nil {
				todo.DueTime = dueTime
			}
			if input.IsCompleted != nil {
				todo.IsCompleted = *input.IsCompleted
			}

			if err := tx.Todos.Save(ctx, todo); err != nil {
				return err
			}

			if input.Move != nil {
				todo, err = todoStore(tx).Move(ctx, userID, input.Move.request(todo.ID))
				if err != nil {
					return notFoundAs(err, ErrTodoNotFound)
				}
			}

			updated = todo
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// MoveTodo places a todo between two of its siblings
func (s *TodoService) MoveTodo(ctx context.Context, userID, todoID uint64, move MoveInput) (*models.Todo, error) {
	return s.UpdateTodo(ctx, userID, todoID, UpdateTodoInput{Move: &move})
}

// DeleteTodo soft-deletes a todo together with all its live subtodos
func (s *TodoService) DeleteTodo(ctx context.Context, userID, todoID uint64) (*models.Todo, error) {
	var deleted *models.Todo
	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		todo, err := tx.Todos.FindLive(ctx, userID, todoID)
		if err != nil {
			return notFoundAs(err, ErrTodoNotFound)
		}

		subTodos, err := tx.SubTodos.ListLive(ctx, todo.ID)
		if err != nil {
			return err
		}
		if _, err := subTodoStore(tx).SoftDeleteCascade(ctx, subTodos); err != nil {
			return fmt.Errorf("failed to delete subtodos: %w", err)
		}

		deleted, err = todoStore(tx).SoftDelete(ctx, todo)
		if err != nil {
			return err
		}

		zerolog.Ctx(ctx).Info().
			Uint64("todo_id", todo.ID).
			Int("subtodos", len(subTodos)).
			Msg("todo deleted")
		return nil
	})
	if err != nil {
		return nil, err
	}

	return deleted, nil
}

// Inbox returns the todos still waiting to be scheduled: undated todos and
// todos having undated subtodos.
func (s *TodoService) Inbox(ctx context.Context, userID uint64) ([]models.Todo, error) {
	todos, err := s.repos.Todos.ListInbox(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inbox: %w", err)
	}
	return todos, nil
}

func ensureCategory(ctx context.Context, repos *repository.Repositories, userID, categoryID uint64) error {
	if _, err := repos.Categories.FindLive(ctx, userID, categoryID); err != nil {
		return notFoundAs(err, ErrCategoryNotFound)
	}
	return nil
}
