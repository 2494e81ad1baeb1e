package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/yukikurage/onestep-api/internal/constants"
	"github.com/yukikurage/onestep-api/internal/models"
	"github.com/yukikurage/onestep-api/internal/ordering"
	"github.com/yukikurage/onestep-api/internal/repository"
)

var (
	ErrSubTodoNotFound = errors.New("subtodo not found")
	ErrEmptyBatch      = errors.New("at least one subtodo is required")
	ErrBatchTooLarge   = fmt.Errorf("at most %d subtodos can be created at once", constants.MaxSubTodoBatchSize)
)

// SubTodoService handles subtodo business logic. Subtodos are ordered per parent todo.
type SubTodoService struct {
	repos *repository.Repositories
}

// NewSubTodoService creates a new SubTodoService
func NewSubTodoService(repos *repository.Repositories) *SubTodoService {
	return &SubTodoService{
		repos: repos,
	}
}

func subTodoStore(repos *repository.Repositories) *ordering.Store[*models.SubTodo] {
	return ordering.NewStore[*models.SubTodo](repos.SubTodos)
}

// CreateSubTodoInput represents one subtodo of a batch
type CreateSubTodoInput struct {
	Content     string
	Date        *time.Time
	DueTime     *string
	IsCompleted bool
}

// UpdateSubTodoInput represents input for updating a subtodo. A TodoID other
// than the current parent moves the subtodo to the bottom of that todo.
type UpdateSubTodoInput struct {
	Content      *string
	TodoID       *uint64
	Date         *time.Time
	ClearDate    bool
	DueTime      *string
	ClearDueTime bool
	IsCompleted  *bool
	Move         *MoveInput
}

// ListSubTodos returns the live subtodos of one of the user's todos in rank order
func (s *SubTodoService) ListSubTodos(ctx context.Context, userID, todoID uint64) ([]models.SubTodo, error) {
	if _, err := s.repos.Todos.FindLive(ctx, userID, todoID); err != nil {
		return nil, notFoundAs(err, ErrTodoNotFound)
	}

	live, err := subTodoStore(s.repos).ListLive(ctx, todoID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subtodos: %w", err)
	}

	subTodos := make([]models.SubTodo, len(live))
	for i, subTodo := range live {
		subTodos[i] = *subTodo
	}
	return subTodos, nil
}

// CreateSubTodos appends a batch of subtodos to a todo in input order. Either
// every subtodo is created or none is.
func (s *SubTodoService) CreateSubTodos(ctx context.Context, userID, todoID uint64, inputs []CreateSubTodoInput) ([]models.SubTodo, error) {
	if len(inputs) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(inputs) > constants.MaxSubTodoBatchSize {
		return nil, ErrBatchTooLarge
	}

	pending := make([]models.SubTodo, len(inputs))
	for i, input := range inputs {
		content, err := validateContent(input.Content)
		if err != nil {
			return nil, fmt.Errorf("subtodo %d: %w", i, err)
		}
		dueTime, err := normalizeDueTime(input.DueTime)
		if err != nil {
			return nil, fmt.Errorf("subtodo %d: %w", i, err)
		}
		pending[i] = models.SubTodo{
			TodoID:      todoID,
			Content:     content,
			Date:        input.Date,
			DueTime:     dueTime,
			IsCompleted: input.IsCompleted,
		}
	}

	var created []models.SubTodo
	err := retryOnRankCollision(ctx, func() error {
		created = make([]models.SubTodo, 0, len(pending))
		return s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
			if _, err := tx.Todos.FindLive(ctx, userID, todoID); err != nil {
				return notFoundAs(err, ErrTodoNotFound)
			}

			store := subTodoStore(tx)
			for _, p := range pending {
				subTodo := p
				appended, err := store.Append(ctx, &subTodo)
				if err != nil {
					return err
				}
				created = append(created, *appended)
			}
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, ErrTodoNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create subtodos: %w", err)
	}

	zerolog.Ctx(ctx).Debug().
		Uint64("todo_id", todoID).
		Int("count", len(created)).
		Msg("subtodos created")
	return created, nil
}

// UpdateSubTodo applies field changes, an optional reparent and an optional move
func (s *SubTodoService) UpdateSubTodo(ctx context.Context, userID, subTodoID uint64, input UpdateSubTodoInput) (*models.SubTodo, error) {
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

	var updated *models.SubTodo
	err = retryOnRankCollision(ctx, func() error {
		return s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
			subTodo, err := tx.SubTodos.FindOwned(ctx, userID, subTodoID)
			if err != nil {
				return notFoundAs(err, ErrSubTodoNotFound)
			}

			store := subTodoStore(tx)

			if content != nil {
				subTodo.Content = *content
			}
			if input.TodoID != nil && *input.TodoID != subTodo.TodoID {
				if _, err := tx.Todos.FindLive(ctx, userID, *input.TodoID); err != nil {
					return notFoundAs(err, ErrTodoNotFound)
				}
				r, err := store.RankForAppend(ctx, *input.TodoID)
				if err != nil {
					return err
				}
				subTodo.TodoID = *input.TodoID
				subTodo.Rank = r.String()
			}
			if input.ClearDate {
				subTodo.Date = nil
			} else if input.Date != nil {
				subTodo.Date = input.Date
			}
			if input.ClearDueTime {
				subTodo.DueTime = nil
			} else if dueTime != nil {
				subTodo.DueTime = dueTime
			}
			if input.IsCompleted != nil {
				subTodo.IsCompleted = *input.IsCompleted
			}

			if err := tx.SubTodos.Save(ctx, subTodo); err != nil {
				return err
			}

			if input.Move != nil {
				subTodo, err = store.Move(ctx, subTodo.TodoID, input.Move.request(subTodo.ID))
				if err != nil {
					return notFoundAs(err, ErrSubTodoNotFound)
				}
			}

			updated = subTodo
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// MoveSubTodo places a subtodo between two siblings under the same todo
func (s *SubTodoService) MoveSubTodo(ctx context.Context, userID, subTodoID uint64, move MoveInput) (*models.SubTodo, error) {
	return s.UpdateSubTodo(ctx, userID, subTodoID, UpdateSubTodoInput{Move: &move})
}

// DeleteSubTodo soft-deletes a subtodo. Its siblings keep their ranks.
func (s *SubTodoService) DeleteSubTodo(ctx context.Context, userID, subTodoID uint64) (*models.SubTodo, error) {
	subTodo, err := s.repos.SubTodos.FindOwned(ctx, userID, subTodoID)
	if err != nil {
		return nil, notFoundAs(err, ErrSubTodoNotFound)
	}

	deleted, err := subTodoStore(s.repos).SoftDelete(ctx, subTodo)
	if err != nil {
		return nil, fmt.Errorf("failed to delete subtodo: %w", err)
	}
	return deleted, nil
}
