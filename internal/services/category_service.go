package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yukikurage/onestep-api/internal/constants"
	"github.com/yukikurage/onestep-api/internal/models"
	"github.com/yukikurage/onestep-api/internal/ordering"
	"github.com/yukikurage/onestep-api/internal/repository"
)

var (
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryTitleTooLong = fmt.Errorf("title must be at most %d characters", constants.MaxCategoryTitleLength)
	ErrInvalidCategoryColor = fmt.Errorf("color must be between %d and %d", constants.MinCategoryColor, constants.MaxCategoryColor)
)

// CategoryService handles category business logic. Categories are ordered per user.
type CategoryService struct {
	repos *repository.Repositories
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(repos *repository.Repositories) *CategoryService {
	return &CategoryService{
		repos: repos,
	}
}

func categoryStore(repos *repository.Repositories) *ordering.Store[*models.Category] {
	return ordering.NewStore[*models.Category](repos.Categories)
}

// CreateCategoryInput represents input for creating a category
type CreateCategoryInput struct {
	UserID uint64
	Title  *string
	Color  int16
}

// UpdateCategoryInput represents input for updating a category
type UpdateCategoryInput struct {
	Title      *string
	ClearTitle bool
	Color      *int16
	Move       *MoveInput
}

// ListCategories returns the live categories of a user in rank order
func (s *CategoryService) ListCategories(ctx context.Context, userID uint64) ([]models.Category, error) {
	live, err := categoryStore(s.repos).ListLive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := make([]models.Category, len(live))
	for i, category := range live {
		categories[i] = *category
	}
	return categories, nil
}

// CreateCategory appends a category at the bottom of the user's list
func (s *CategoryService) CreateCategory(ctx context.Context, input CreateCategoryInput) (*models.Category, error) {
	title, err := validateCategoryTitle(input.Title)
	if err != nil {
		return nil, err
	}
	if err := validateCategoryColor(input.Color); err != nil {
		return nil, err
	}

	var created *models.Category
	err = retryOnRankCollision(ctx, func() error {
		category := &models.Category{
			UserID: input.UserID,
			Title:  title,
			Color:  input.Color,
		}
		appended, err := categoryStore(s.repos).Append(ctx, category)
		if err != nil {
			return err
		}
		created = appended
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return created, nil
}

// UpdateCategory applies field changes and, optionally, a move
func (s *CategoryService) UpdateCategory(ctx context.Context, userID, categoryID uint64, input UpdateCategoryInput) (*models.Category, error) {
	title, err := validateCategoryTitle(input.Title)
	if err != nil {
		return nil, err
	}
	if input.Color != nil {
		if err := validateCategoryColor(*input.Color); err != nil {
			return nil, err
		}
	}

	var updated *models.Category
	err = retryOnRankCollision(ctx, func() error {
		return s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
			category, err := tx.Categories.FindLive(ctx, userID, categoryID)
			if err != nil {
				return notFoundAs(err, ErrCategoryNotFound)
			}

			if input.ClearTitle {
				category.Title = nil
			} else if title != nil {
				category.Title = title
			}
			if input.Color != nil {
				category.Color = *input.Color
			}

			if err := tx.Categories.Save(ctx, category); err != nil {
				return err
			}

			if input.Move != nil {
				category, err = categoryStore(tx).Move(ctx, userID, input.Move.request(category.ID))
				if err != nil {
					return notFoundAs(err, ErrCategoryNotFound)
				}
			}

			updated = category
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// MoveCategory places a category between two of its siblings
func (s *CategoryService) MoveCategory(ctx context.Context, userID, categoryID uint64, move MoveInput) (*models.Category, error) {
	return s.UpdateCategory(ctx, userID, categoryID, UpdateCategoryInput{Move: &move})
}

// DeleteCategory soft-deletes a category. Todos filed under it are left untouched.
func (s *CategoryService) DeleteCategory(ctx context.Context, userID, categoryID uint64) (*models.Category, error) {
	category, err := s.repos.Categories.FindLive(ctx, userID, categoryID)
	if err != nil {
		return nil, notFoundAs(err, ErrCategoryNotFound)
	}

	deleted, err := categoryStore(s.repos).SoftDelete(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to delete category: %w", err)
	}
	return deleted, nil
}

func validateCategoryTitle(title *string) (*string, error) {
	if title == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*title)
	if utf8.RuneCountInString(trimmed) > constants.MaxCategoryTitleLength {
		return nil, ErrCategoryTitleTooLong
	}
	return &trimmed, nil
}

func validateCategoryColor(color int16) error {
	if color < constants.MinCategoryColor || color > constants.MaxCategoryColor {
		return ErrInvalidCategoryColor
	}
	return nil
}
