package repository

import (
	"context"
	"time"

	"github.com/yukikurage/onestep-api/internal/database"
	"github.com/yukikurage/onestep-api/internal/models"
	"gorm.io/gorm"
)

// GormTodoRepository is a GORM implementation of TodoRepository
type GormTodoRepository struct {
	*OrderedRepository[models.Todo, *models.Todo]
	db *gorm.DB
}

// NewTodoRepository creates a new TodoRepository. Todos are ordered per user.
func NewTodoRepository(db *gorm.DB) TodoRepository {
	return &GormTodoRepository{
		OrderedRepository: NewOrderedRepository[models.Todo, *models.Todo](db, "user_id"),
		db:                db,
	}
}

// ListByDateRange lists dated todos within [start, end] with their dated subtodos.
func (r *GormTodoRepository) ListByDateRange(ctx context.Context, userID uint64, start, end time.Time) ([]models.Todo, error) {
	var todos []models.Todo
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("date IS NOT NULL").
		Scopes(database.OnDate("date", start, end), database.OrderByRank(false)).
		Preload("SubTodos", func(db *gorm.DB) *gorm.DB {
			return db.Where("date IS NOT NULL").Scopes(database.OrderByRank(false))
		}).
		Find(&todos).Error
	if err != nil {
		return nil, err
	}
	return todos, nil
}

// ListInbox lists undated todos, and todos that still have undated subtodos,
// each with its undated subtodos.
func (r *GormTodoRepository) ListInbox(ctx context.Context, userID uint64) ([]models.Todo, error) {
	undatedSubTodos := r.db.Model(&models.SubTodo{}).
		Select("1").
		Where("sub_todos.todo_id = todos.id").
		Where("sub_todos.date IS NULL")

	var todos []models.Todo
	err := r.db.WithContext(ctx).
		Where("todos.user_id = ?", userID).
		Where(r.db.Where("todos.date IS NULL").Or("EXISTS (?)", undatedSubTodos)).
		Scopes(database.OrderByRank(false)).
		Preload("SubTodos", func(db *gorm.DB) *gorm.DB {
			return db.Where("date IS NULL").Scopes(database.OrderByRank(false))
		}).
		Find(&todos).Error
	if err != nil {
		return nil, err
	}
	return todos, nil
}
