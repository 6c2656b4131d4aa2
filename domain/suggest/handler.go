package suggest

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/quillstack/be-cms-platform/pkg/apperrors"
	"github.com/quillstack/be-cms-platform/pkg/logger"
)

var validate = validator.New()

var defaultService = NewService()

type SuggestRequest struct {
	Field   string      `json:"field" validate:"required"`
	Context PostContext `json:"context"`
}

// SuggestHandler proxies a field suggestion request to the external
// provider. Superseded requests return 409 so the client can drop them.
func SuggestHandler(c echo.Context) error {
	req := new(SuggestRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed, "Invalid request payload."))
	}
	if err := validate.Struct(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed, "Field is required."))
	}

	result, err := defaultService.Suggest(c.Request().Context(), req.Field, req.Context)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownField):
			return apperrors.RespondWithError(c, apperrors.NewBadRequest(
				apperrors.ErrCodeInvalidInput,
				"Field must be one of: title, excerpt, seo_title, seo_description."))
		case errors.Is(err, ErrStale):
			return apperrors.RespondWithError(c, apperrors.NewConflict(
				apperrors.ErrCodeSuggestFailed, "Request superseded by a newer one."))
		default:
			logger.Get().WithComponent("suggest").Error("Suggestion request failed", err)
			return apperrors.RespondWithError(c, apperrors.NewServiceUnavailable(
				apperrors.ErrCodeSuggestFailed, "Suggestion service unavailable.", err))
		}
	}

	return apperrors.RespondWithSuccess(c, result)
}
