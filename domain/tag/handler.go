package tag

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/quillstack/be-cms-platform/config"
	"github.com/quillstack/be-cms-platform/pkg/apperrors"
	"github.com/quillstack/be-cms-platform/pkg/logger"
)

var validate = validator.New()

// ListTagsHandler returns all tags, alphabetically.
func ListTagsHandler(c echo.Context) error {
	tags := []Tag{}
	err := config.DB.Select(&tags, `SELECT id, name, created_at FROM tags ORDER BY name`)
	if err != nil {
		logger.Get().WithComponent("tag").Error("Failed to list tags", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err))
	}
	return apperrors.RespondWithSuccess(c, tags)
}

// CreateTagHandler adds a tag.
func CreateTagHandler(c echo.Context) error {
	req := new(TagRequest)
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
		`INSERT INTO tags (name, created_at) VALUES ($1, NOW()) RETURNING id`,
		req.Name).Scan(&id)
	if err != nil {
		logger.Get().WithComponent("tag").Error("Failed to create tag", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Failed to create tag.", err))
	}
	return apperrors.RespondWithCreated(c, map[string]int64{"id": id})
}

// DeleteTagHandler removes a tag and its post links.
func DeleteTagHandler(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput, "Invalid tag id."))
	}

	res, err := config.DB.Exec(`DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		logger.Get().WithComponent("tag").Error("Failed to delete tag", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Failed to delete tag.", err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeTagNotFound, "Tag not found."))
	}
	return apperrors.RespondWithSuccess(c, map[string]string{"status": "deleted"})
}
