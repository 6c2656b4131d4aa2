package campaign

import (
	"database/sql"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/lib/pq"
	"github.com/quillstack/be-cms-platform/config"
	"github.com/quillstack/be-cms-platform/domain/content"
	"github.com/quillstack/be-cms-platform/pkg/apperrors"
	"github.com/quillstack/be-cms-platform/pkg/logger"
	"github.com/quillstack/be-cms-platform/pkg/mailer"
)

var validate = validator.New()

// normalizeContent parses the campaign body and re-serializes it with
// recomputed positions, rejecting malformed payloads up front.
func normalizeContent(raw string) (string, *apperrors.AppError) {
	blocks, err := content.Parse(raw)
	if err != nil {
		var perr *content.ParseError
		if errors.As(err, &perr) {
			return "", apperrors.NewBadRequest(
				apperrors.ErrCodeContentParseFailed, "Invalid content format.")
		}
		return "", apperrors.NewInternal(
			apperrors.ErrCodeUnexpectedError, "Failed to process content.", err)
	}
	doc := content.FromBlocks(blocks, content.EditPolicy)
	normalized, err := doc.Serialize()
	if err != nil {
		return "", apperrors.NewInternal(
			apperrors.ErrCodeUnexpectedError, "Failed to serialize content.", err)
	}
	return normalized, nil
}

// ListCampaignsHandler returns all campaigns, newest first.
func ListCampaignsHandler(c echo.Context) error {
	campaigns := []Campaign{}
	err := config.DB.Select(&campaigns, `
		SELECT id, subject, from_email, content, recipients, status, sent_at, created_at, updated_at
		FROM campaigns ORDER BY created_at DESC`)
	if err != nil {
		logger.Get().WithComponent("campaign").Error("Failed to list campaigns", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err))
	}
	return apperrors.RespondWithSuccess(c, campaigns)
}

// GetCampaignHandler returns one campaign.
func GetCampaignHandler(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput, "Invalid campaign id."))
	}

	var cp Campaign
	err = config.DB.Get(&cp, `
		SELECT id, subject, from_email, content, recipients, status, sent_at, created_at, updated_at
		FROM campaigns WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeCampaignNotFound, "Campaign not found."))
	}
	if err != nil {
		logger.Get().WithComponent("campaign").Error("Failed to fetch campaign", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err))
	}
	return apperrors.RespondWithSuccess(c, cp)
}

// CreateCampaignHandler creates a draft campaign.
func CreateCampaignHandler(c echo.Context) error {
	req := new(CampaignRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed, "Invalid request payload."))
	}
	if err := validate.Struct(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed, "Subject, a valid sender and content are required."))
	}

	normalized, appErr := normalizeContent(req.Content)
	if appErr != nil {
		return apperrors.RespondWithError(c, appErr)
	}

	var id int64
	err := config.DB.QueryRow(`
		INSERT INTO campaigns (subject, from_email, content, recipients, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW()) RETURNING id
	`, req.Subject, req.FromEmail, normalized, pq.StringArray(req.Recipients), StatusDraft).Scan(&id)
	if err != nil {
		logger.Get().WithComponent("campaign").Error("Failed to create campaign", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Failed to create campaign.", err))
	}
	return apperrors.RespondWithCreated(c, map[string]int64{"id": id})
}

// UpdateCampaignHandler edits a campaign that has not been sent yet.
func UpdateCampaignHandler(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput, "Invalid campaign id."))
	}

	req := new(CampaignRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed, "Invalid request payload."))
	}
	if err := validate.Struct(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed, "Subject, a valid sender and content are required."))
	}

	normalized, appErr := normalizeContent(req.Content)
	if appErr != nil {
		return apperrors.RespondWithError(c, appErr)
	}

	res, err := config.DB.Exec(`
		UPDATE campaigns
		SET subject = $1, from_email = $2, content = $3, recipients = $4, updated_at = NOW()
		WHERE id = $5 AND status != $6
	`, req.Subject, req.FromEmail, normalized, pq.StringArray(req.Recipients), id, StatusSent)
	if err != nil {
		logger.Get().WithComponent("campaign").Error("Failed to update campaign", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Failed to update campaign.", err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeCampaignNotFound, "Campaign not found or already sent."))
	}
	return apperrors.RespondWithSuccess(c, map[string]string{"status": "updated"})
}

// DeleteCampaignHandler removes a campaign.
func DeleteCampaignHandler(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput, "Invalid campaign id."))
	}

	res, err := config.DB.Exec(`DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		logger.Get().WithComponent("campaign").Error("Failed to delete campaign", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Failed to delete campaign.", err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeCampaignNotFound, "Campaign not found."))
	}
	return apperrors.RespondWithSuccess(c, map[string]string{"status": "deleted"})
}

// SendCampaignHandler renders the campaign body to HTML and sends it to
// every recipient. Partial failure is reported back, not rolled back.
func SendCampaignHandler(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput, "Invalid campaign id."))
	}

	log := logger.Get().WithComponent("campaign")

	var cp Campaign
	err = config.DB.Get(&cp, `
		SELECT id, subject, from_email, content, recipients, status, sent_at, created_at, updated_at
		FROM campaigns WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeCampaignNotFound, "Campaign not found."))
	}
	if err != nil {
		log.Error("Failed to fetch campaign", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err))
	}
	if cp.Status == StatusSent {
		return apperrors.RespondWithError(c, apperrors.NewConflict(
			apperrors.ErrCodeCampaignNotFound, "Campaign already sent."))
	}
	if len(cp.Recipients) == 0 {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed, "Campaign has no recipients."))
	}

	blocks, err := content.Parse(cp.Content)
	if err != nil {
		log.Error("Stored campaign content does not parse", err, logger.CampaignID(id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeContentParseFailed, "Campaign content is corrupt.", err))
	}
	html := content.RenderHTML(blocks, content.RenderRich)

	if _, err := config.DB.Exec(
		`UPDATE campaigns SET status = $1, updated_at = NOW() WHERE id = $2`,
		StatusSending, id); err != nil {
		log.Error("Failed to mark campaign sending", err, logger.CampaignID(id))
	}

	result := SendResult{}
	for _, to := range cp.Recipients {
		if err := mailer.Send(cp.FromEmail, to, cp.Subject, html); err != nil {
			log.Error("Campaign delivery failed", err, logger.CampaignID(id))
			result.Failed = append(result.Failed, to)
			continue
		}
		result.Sent++
	}

	status := StatusSent
	if result.Sent == 0 {
		status = StatusFailed
	}
	if _, err := config.DB.Exec(
		`UPDATE campaigns SET status = $1, sent_at = NOW(), updated_at = NOW() WHERE id = $2`,
		status, id); err != nil {
		log.Error("Failed to record campaign status", err, logger.CampaignID(id))
	}

	log.Info("Campaign send finished", logger.CampaignID(id), logger.Count(result.Sent))
	return apperrors.RespondWithSuccess(c, result)
}
