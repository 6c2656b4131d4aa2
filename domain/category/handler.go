package category

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/quillstack/be-cms-platform/config"
	"github.com/quillstack/be-cms-platform/pkg/apperrors"
	"github.com/quillstack/be-cms-platform/pkg/logger"
)

var validate = validator.New()

// ListCategoriesHandler returns all categories, alphabetically.
func ListCategoriesHandler(c echo.Context) error {
	categories := []Category{}
	err := config.DB.Select(&categories,
		`SELECT id, name, created_at FROM categories ORDER BY name`)
	if err != nil {
		logger.Get().WithComponent("category").Error("Failed to list categories", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err))
	}
	return apperrors.RespondWithSuccess(c, categories)
}

// CreateCategoryHandler adds a category.
func CreateCategoryHandler(c echo.Context) error {
	req := new(CategoryRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed, "Invalid request payload."))
	}
	if err := validate.Struct(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeMissingField, "Name is required."))
	}

	var id int64
	err := config.DB.QueryRow(
		`INSERT INTO categories (name, created_at) VALUES ($1, NOW()) RETURNING id`,
		req.Name).Scan(&id)
	if err != nil {
		logger.Get().WithComponent("category").Error("Failed to create category", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Failed to create category.", err))
	}
	return apperrors.RespondWithCreated(c, map[string]int64{"id": id})
}

// DeleteCategoryHandler removes a category.
func DeleteCategoryHandler(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput, "Invalid category id."))
	}

	res, err := config.DB.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		logger.Get().WithComponent("category").Error("Failed to delete category", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Failed to delete category.", err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeCategoryNotFound, "Category not found."))
	}
	return apperrors.RespondWithSuccess(c, map[string]string{"status": "deleted"})
}
