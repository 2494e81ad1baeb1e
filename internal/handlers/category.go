package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/onestep-api/internal/dto"
	apierrors "github.com/yukikurage/onestep-api/internal/errors"
	"github.com/yukikurage/onestep-api/internal/services"
)

// CategoryHandler serves category endpoints.
type CategoryHandler struct {
	categoryService *services.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// ListCategories returns the user's categories in rank order
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	categories, err := h.categoryService.ListCategories(c.Request.Context(), userID)
	if err != nil {
		respondCategoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryDTOs(categories))
}

// CreateCategory appends a category at the bottom of the user's list
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), services.CreateCategoryInput{
		UserID: userID,
		Title:  req.Title,
		Color:  req.Color,
	})
	if err != nil {
		respondCategoryError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCategoryDTO(*category))
}

// UpdateCategory updates title and color. A "rank" object moves the category as well.
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	categoryID, ok := parseIDParam(c, "id", "category")
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	title, clearTitle := optionalString(req.Title)

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), userID, categoryID, services.UpdateCategoryInput{
		Title:      title,
		ClearTitle: clearTitle,
		Color:      req.Color,
		Move:       toMoveInput(req.Rank),
	})
	if err != nil {
		respondCategoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryDTO(*category))
}

// MoveCategory places a category between prev_id and next_id
func (h *CategoryHandler) MoveCategory(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	categoryID, ok := parseIDParam(c, "id", "category")
	if !ok {
		return
	}

	var req dto.RankMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.categoryService.MoveCategory(c.Request.Context(), userID, categoryID, *toMoveInput(&req))
	if err != nil {
		respondCategoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryDTO(*category))
}

// DeleteCategory deletes a category. Its todos are kept.
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	categoryID, ok := parseIDParam(c, "id", "category")
	if !ok {
		return
	}

	category, err := h.categoryService.DeleteCategory(c.Request.Context(), userID, categoryID)
	if err != nil {
		respondCategoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryDTO(*category))
}

func respondCategoryError(c *gin.Context, err error) {
	if respondOrderingError(c, err) {
		return
	}

	switch {
	case errors.Is(err, services.ErrCategoryNotFound):
		apierrors.NotFound(c, "Category not found")
	case errors.Is(err, services.ErrCategoryTitleTooLong),
		errors.Is(err, services.ErrInvalidCategoryColor):
		apierrors.BadRequest(c, err.Error())
	default:
		respondInternalError(c, err)
	}
}
