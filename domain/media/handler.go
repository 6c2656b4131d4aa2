package media

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/quillstack/be-cms-platform/pkg/apperrors"
	"github.com/quillstack/be-cms-platform/pkg/logger"
	"github.com/quillstack/be-cms-platform/pkg/storage"
)

// maxUploadBytes caps a single image upload at 10 MiB.
const maxUploadBytes = 10 << 20

// useCases namespaces uploaded objects by where the image is used in the
// editor, so stale objects can be swept per use case later.
var useCases = map[string]string{
	"title":     "title",
	"content":   "content",
	"list_item": "list-item",
}

var allowedTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

type UploadResponse struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// UploadImageHandler accepts a multipart image and stores it in S3 under a
// use-case namespaced key, returning the public URL.
func UploadImageHandler(c echo.Context) error {
	log := logger.Get().WithComponent("media")

	useCase, ok := useCases[c.FormValue("use_case")]
	if !ok {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeUploadBadUseCase,
			"use_case must be one of: title, content, list_item."))
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed, "Missing image file."))
	}
	if fh.Size > maxUploadBytes {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeUploadTooLarge, "Image exceeds the 10MB limit."))
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	contentType, ok := allowedTypes[ext]
	if !ok {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed, "Unsupported image type."))
	}

	src, err := fh.Open()
	if err != nil {
		log.Error("Failed to open uploaded file", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeUploadFailed, "Failed to read upload.", err))
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxUploadBytes+1))
	if err != nil {
		log.Error("Failed to read uploaded file", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeUploadFailed, "Failed to read upload.", err))
	}
	if len(data) > maxUploadBytes {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeUploadTooLarge, "Image exceeds the 10MB limit."))
	}

	key := fmt.Sprintf("images/%s/%s%s", useCase, uuid.New().String(), ext)
	url, err := storage.UploadImage(data, key, contentType)
	if err != nil {
		log.Error("S3 upload failed", err, logger.Operation("upload"))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeS3Error, "Failed to store image.", err))
	}

	log.Info("Image uploaded", logger.Operation("upload"))
	return apperrors.RespondWithCreated(c, UploadResponse{URL: url, Key: key})
}

// DeleteImageHandler removes an uploaded object by key.
func DeleteImageHandler(c echo.Context) error {
	key := c.QueryParam("key")
	if key == "" || !strings.HasPrefix(key, "images/") {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput, "Invalid object key."))
	}

	if err := storage.DeleteObject(key); err != nil {
		logger.Get().WithComponent("media").Error("S3 delete failed", err, logger.Operation("delete"))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeS3Error, "Failed to delete image.", err))
	}
	return apperrors.RespondWithSuccess(c, map[string]string{"status": "deleted"})
}
