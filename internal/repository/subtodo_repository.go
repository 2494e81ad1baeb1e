package repository

import (
	"context"

	"github.com/yukikurage/onestep-api/internal/database"
	"github.com/yukikurage/onestep-api/internal/models"
	"github.com/yukikurage/onestep-api/internal/ordering"
	"gorm.io/gorm"
)

// GormSubTodoRepository is a GORM implementation of SubTodoRepository
type GormSubTodoRepository struct {
	*OrderedRepository[models.SubTodo, *models.SubTodo]
	db *gorm.DB
}

// NewSubTodoRepository creates a new SubTodoRepository. Subtodos are ordered per parent todo.
func NewSubTodoRepository(db *gorm.DB) SubTodoRepository {
	return &GormSubTodoRepository{
		OrderedRepository: NewOrderedRepository[models.SubTodo, *models.SubTodo](db, "todo_id"),
		db:                db,
	}
}

// FindOwned finds a live subtodo whose live parent todo belongs to userID.
func (r *GormSubTodoRepository) FindOwned(ctx context.Context, userID, id uint64) (*models.SubTodo, error) {
	var rows []models.SubTodo
	err := r.db.WithContext(ctx).
		Joins("JOIN todos ON todos.id = sub_todos.todo_id AND todos.deleted_at IS NULL").
		Where("sub_todos.id = ? AND todos.user_id = ?", id, userID).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ordering.ErrNotFound
	}
	return &rows[0], nil
}

// ListByTodoIDs lists the live subtodos of several todos, grouped by todo and
// ordered by rank within each todo.
func (r *GormSubTodoRepository) ListByTodoIDs(ctx context.Context, todoIDs []uint64) ([]models.SubTodo, error) {
	if len(todoIDs) == 0 {
		return []models.SubTodo{}, nil
	}

	var rows []models.SubTodo
	err := r.db.WithContext(ctx).
		Where("todo_id IN ?", todoIDs).
		Scopes(database.OrderByRank(false, "todo_id")).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
