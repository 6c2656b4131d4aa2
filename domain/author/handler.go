package author

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/quillstack/be-cms-platform/config"
	"github.com/quillstack/be-cms-platform/pkg/apperrors"
	"github.com/quillstack/be-cms-platform/pkg/logger"
)

var validate = validator.New()

// ListAuthorsHandler returns all authors for the editor dropdown.
func ListAuthorsHandler(c echo.Context) error {
	authors := []Author{}
	err := config.DB.Select(&authors,
		`SELECT id, name, email, bio, avatar_url, created_at FROM authors ORDER BY name`)
	if err != nil {
		logger.Get().WithComponent("author").Error("Failed to list authors", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err))
	}
	return apperrors.RespondWithSuccess(c, authors)
}

// CreateAuthorHandler adds an author.
func CreateAuthorHandler(c echo.Context) error {
	req := new(AuthorRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed, "Invalid request payload."))
	}
	if err := validate.Struct(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed, "Name is required and email must be valid."))
	}

	var id int64
	err := config.DB.QueryRow(`
		INSERT INTO authors (name, email, bio, avatar_url, created_at)
		VALUES ($1, $2, $3, $4, NOW()) RETURNING id
	`, req.Name, req.Email, req.Bio, req.AvatarURL).Scan(&id)
	if err != nil {
		logger.Get().WithComponent("author").Error("Failed to create author", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Failed to create author.", err))
	}
	return apperrors.RespondWithCreated(c, map[string]int64{"id": id})
}

// UpdateAuthorHandler updates an author profile.
func UpdateAuthorHandler(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput, "Invalid author id."))
	}

	req := new(AuthorRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed, "Invalid request payload."))
	}
	if err := validate.Struct(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed, "Name is required and email must be valid."))
	}

	res, err := config.DB.Exec(`
		UPDATE authors SET name = $1, email = $2, bio = $3, avatar_url = $4 WHERE id = $5
	`, req.Name, req.Email, req.Bio, req.AvatarURL, id)
	if err != nil {
		logger.Get().WithComponent("author").Error("Failed to update author", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Failed to update author.", err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeAuthorNotFound, "Author not found."))
	}
	return apperrors.RespondWithSuccess(c, map[string]string{"status": "updated"})
}

// DeleteAuthorHandler removes an author.
func DeleteAuthorHandler(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput, "Invalid author id."))
	}

	res, err := config.DB.Exec(`DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		logger.Get().WithComponent("author").Error("Failed to delete author", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Failed to delete author.", err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeAuthorNotFound, "Author not found."))
	}
	return apperrors.RespondWithSuccess(c, map[string]string{"status": "deleted"})
}
