package repository

import (
	"github.com/yukikurage/onestep-api/internal/models"
	"gorm.io/gorm"
)

// GormCategoryRepository is a GORM implementation of CategoryRepository
type GormCategoryRepository struct {
	*OrderedRepository[models.Category, *models.Category]
}

// NewCategoryRepository creates a new CategoryRepository. Categories are ordered per user.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &GormCategoryRepository{
		OrderedRepository: NewOrderedRepository[models.Category, *models.Category](db, "user_id"),
	}
}
