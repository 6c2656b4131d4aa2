package user

import (
	"database/sql"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/quillstack/be-cms-platform/config"
	"github.com/quillstack/be-cms-platform/pkg/apperrors"
	"github.com/quillstack/be-cms-platform/pkg/logger"
	"github.com/quillstack/be-cms-platform/utils"
)

var validate = validator.New()

// ListUsersHandler returns all users, admin only.
func ListUsersHandler(c echo.Context) error {
	users := []User{}
	err := config.DB.Select(&users, `
		SELECT id, email, password, role_id, created_at, updated_at
		FROM users ORDER BY created_at DESC`)
	if err != nil {
		logger.Get().WithComponent("user").Error("Failed to list users", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err))
	}
	return apperrors.RespondWithSuccess(c, users)
}

// CreateUserHandler creates an editor or admin account.
func CreateUserHandler(c echo.Context) error {
	log := logger.Get().WithComponent("user")

	req := new(CreateUserRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed, "Invalid request payload."))
	}
	if err := validate.Struct(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"A valid email, a password of at least 8 characters and a role are required."))
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Error("Failed to hash password", err, logger.Email(req.Email))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeUnexpectedError, "Internal server error.", err))
	}

	var id int64
	err = config.DB.QueryRow(`
		INSERT INTO users (email, password, role_id, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (email) DO NOTHING
		RETURNING id
	`, req.Email, hashed, req.RoleID).Scan(&id)
	if err == sql.ErrNoRows {
		// ON CONFLICT DO NOTHING returned no row: the email is taken.
		return apperrors.RespondWithError(c, apperrors.NewConflict(
			apperrors.ErrCodeResourceExists, "A user with that email already exists."))
	}
	if err != nil {
		log.Error("Failed to create user", err, logger.Email(req.Email))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err))
	}

	log.Info("User created", logger.UserID(id), logger.Email(req.Email))
	return apperrors.RespondWithCreated(c, map[string]int64{"id": id})
}

// UpdateRoleHandler changes a user's role, admin only.
func UpdateRoleHandler(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput, "Invalid user id."))
	}

	req := new(UpdateRoleRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed, "Invalid request payload."))
	}
	if err := validate.Struct(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidRole, "Role must be 0 (admin) or 1 (editor)."))
	}

	res, err := config.DB.Exec(
		`UPDATE users SET role_id = $1, updated_at = NOW() WHERE id = $2`,
		req.RoleID, id)
	if err != nil {
		logger.Get().WithComponent("user").Error("Failed to update role", err, logger.UserID(id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeUserNotFound, "User not found."))
	}
	return apperrors.RespondWithSuccess(c, map[string]string{"status": "updated"})
}

// DeleteUserHandler removes a user, admin only. Admins cannot delete
// themselves.
func DeleteUserHandler(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput, "Invalid user id."))
	}

	if callerID, ok := c.Get("user_id").(int64); ok && callerID == id {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput, "You cannot delete your own account."))
	}

	res, err := config.DB.Exec(`DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		logger.Get().WithComponent("user").Error("Failed to delete user", err, logger.UserID(id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeUserNotFound, "User not found."))
	}
	return apperrors.RespondWithSuccess(c, map[string]string{"status": "deleted"})
}
