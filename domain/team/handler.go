package team

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/quillstack/be-cms-platform/config"
	"github.com/quillstack/be-cms-platform/pkg/apperrors"
	"github.com/quillstack/be-cms-platform/pkg/logger"
)

var validate = validator.New()

// ListMembersHandler returns all team members.
func ListMembersHandler(c echo.Context) error {
	members := []Member{}
	err := config.DB.Select(&members, `
		SELECT id, name, role, bio, image_url, twitter_url, linkedin_url, created_at
		FROM team_members ORDER BY id`)
	if err != nil {
		logger.Get().WithComponent("team").Error("Failed to list team members", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err))
	}
	return apperrors.RespondWithSuccess(c, members)
}

// CreateMemberHandler adds a team member.
func CreateMemberHandler(c echo.Context) error {
	req := new(MemberRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed, "Invalid request payload."))
	}
	if err := validate.Struct(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed, "Name is required."))
	}

	var id int64
	err := config.DB.QueryRow(`
		INSERT INTO team_members (name, role, bio, image_url, twitter_url, linkedin_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW()) RETURNING id
	`, req.Name, req.Role, req.Bio, req.ImageURL, req.TwitterURL, req.Linkedin).Scan(&id)
	if err != nil {
		logger.Get().WithComponent("team").Error("Failed to create team member", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Failed to create team member.", err))
	}
	return apperrors.RespondWithCreated(c, map[string]int64{"id": id})
}

// UpdateMemberHandler updates a team member.
func UpdateMemberHandler(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput, "Invalid member id."))
	}

	req := new(MemberRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed, "Invalid request payload."))
	}
	if err := validate.Struct(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed, "Name is required."))
	}

	res, err := config.DB.Exec(`
		UPDATE team_members
		SET name = $1, role = $2, bio = $3, image_url = $4, twitter_url = $5, linkedin_url = $6
		WHERE id = $7
	`, req.Name, req.Role, req.Bio, req.ImageURL, req.TwitterURL, req.Linkedin, id)
	if err != nil {
		logger.Get().WithComponent("team").Error("Failed to update team member", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Failed to update team member.", err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeTeamNotFound, "Team member not found."))
	}
	return apperrors.RespondWithSuccess(c, map[string]string{"status": "updated"})
}

// DeleteMemberHandler removes a team member.
func DeleteMemberHandler(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput, "Invalid member id."))
	}

	res, err := config.DB.Exec(`DELETE FROM team_members WHERE id = $1`, id)
	if err != nil {
		logger.Get().WithComponent("team").Error("Failed to delete team member", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Failed to delete team member.", err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeTeamNotFound, "Team member not found."))
	}
	return apperrors.RespondWithSuccess(c, map[string]string{"status": "deleted"})
}
