package repository

import (
	"context"
	"time"

	"github.com/yukikurage/onestep-api/internal/models"
	"github.com/yukikurage/onestep-api/internal/ordering"
	"gorm.io/gorm"
)

// TodoRepository defines the interface for todo data access.
// The embedded ordering.Backend groups todos by user.
type TodoRepository interface {
	ordering.Backend[*models.Todo]

	// ListByDateRange lists dated todos within [start, end] with their dated subtodos
	ListByDateRange(ctx context.Context, userID uint64, start, end time.Time) ([]models.Todo, error)

	// ListInbox lists undated todos and todos with undated subtodos
	ListInbox(ctx context.Context, userID uint64) ([]models.Todo, error)
}

// SubTodoRepository defines the interface for subtodo data access.
// The embedded ordering.Backend groups subtodos by parent todo.
type SubTodoRepository interface {
	ordering.Backend[*models.SubTodo]

	// FindOwned finds a live subtodo whose parent todo belongs to the user
	FindOwned(ctx context.Context, userID, id uint64) (*models.SubTodo, error)

	// ListByTodoIDs lists live subtodos of several todos
	ListByTodoIDs(ctx context.Context, todoIDs []uint64) ([]models.SubTodo, error)
}

// CategoryRepository defines the interface for category data access.
// The embedded ordering.Backend groups categories by user.
type CategoryRepository interface {
	ordering.Backend[*models.Category]
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// CreateWithDefaultCategory creates a user and their first category
	// within a single transaction.
	CreateWithDefaultCategory(user *models.User, category *models.Category) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)
}

// Repositories bundles every repository over one *gorm.DB so that services
// can run work spanning several tables in a single transaction.
type Repositories struct {
	db         *gorm.DB
	Users      UserRepository
	Todos      TodoRepository
	SubTodos   SubTodoRepository
	Categories CategoryRepository
}

// New creates Repositories over db.
func New(db *gorm.DB) *Repositories {
	return &Repositories{
		db:         db,
		Users:      NewUserRepository(db),
		Todos:      NewTodoRepository(db),
		SubTodos:   NewSubTodoRepository(db),
		Categories: NewCategoryRepository(db),
	}
}

// Transaction runs fn with repositories bound to a single transaction.
func (r *Repositories) Transaction(ctx context.Context, fn func(tx *Repositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}
