package auth

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/quillstack/be-cms-platform/config"
	"github.com/quillstack/be-cms-platform/pkg/apperrors"
	"github.com/quillstack/be-cms-platform/pkg/logger"
	"github.com/quillstack/be-cms-platform/utils"
)

var validate = validator.New()

// User mirrors the users table for auth queries.
type User struct {
	ID       int64  `db:"id"`
	Email    string `db:"email"`
	Password string `db:"password"`
	RoleID   int64  `db:"role_id"`
}

type attemptsInfo struct {
	FailedAttempts int          `db:"failed_attempts"`
	BlockedUntil   sql.NullTime `db:"blocked_until"`
}

// LoginHandler authenticates a user and issues a JWT. Repeated failures
// lock the account for a cooldown period.
func LoginHandler(c echo.Context) error {
	log := logger.Get().WithComponent("auth")
	requestID := logger.GetRequestIDFromContext(c)
	log = log.WithRequestID(requestID)

	req := new(LoginRequest)
	if err := c.Bind(req); err != nil {
		log.Warn("Invalid login request payload", logger.Err(err))
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed, "Invalid request payload."))
	}
	if err := validate.Struct(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed, "Email and password are required."))
	}

	now := time.Now()

	var attempts attemptsInfo
	err := config.DB.Get(&attempts, `
		SELECT failed_attempts, blocked_until
		FROM user_login_attempts
		WHERE email = $1
	`, req.Email)
	if err == sql.ErrNoRows {
		if _, err := config.DB.Exec(`
			INSERT INTO user_login_attempts (email, failed_attempts, last_attempt_at)
			VALUES ($1, 0, $2)
		`, req.Email, now); err != nil {
			log.Error("Failed to insert login attempts record", err, logger.Email(req.Email))
			return apperrors.RespondWithError(c, apperrors.NewInternal(
				apperrors.ErrCodeDatabaseError, "Internal server error.", err))
		}
	} else if err != nil {
		log.Error("Failed to fetch login attempts", err, logger.Email(req.Email))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err))
	}

	if attempts.BlockedUntil.Valid && attempts.BlockedUntil.Time.After(now) {
		remaining := attempts.BlockedUntil.Time.Sub(now)
		log.Warn("Login attempt while account locked", logger.Email(req.Email))
		return apperrors.RespondWithError(c, apperrors.NewTooManyRequests(
			apperrors.ErrCodeAccountLocked,
			fmt.Sprintf("Account temporarily locked. Please try again in %d minutes and %d seconds.",
				int(remaining.Minutes()), int(remaining.Seconds())%60)))
	}

	// Block period over, start fresh.
	if attempts.BlockedUntil.Valid && attempts.BlockedUntil.Time.Before(now) {
		if _, err := config.DB.Exec(`
			UPDATE user_login_attempts
			SET failed_attempts = 0, blocked_until = NULL
			WHERE email = $1
		`, req.Email); err != nil {
			log.Error("Failed to reset login attempts", err, logger.Email(req.Email))
			return apperrors.RespondWithError(c, apperrors.NewInternal(
				apperrors.ErrCodeDatabaseError, "Internal server error.", err))
		}
		attempts.FailedAttempts = 0
	}

	var user User
	err = config.DB.Get(&user, `
		SELECT id, email, password, role_id FROM users WHERE email = $1
	`, req.Email)
	if err != nil && err != sql.ErrNoRows {
		log.Error("Failed to fetch user", err, logger.Email(req.Email))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err))
	}

	if err == sql.ErrNoRows || !utils.CheckPasswordHash(req.Password, user.Password) {
		return failLogin(c, log, req.Email, attempts.FailedAttempts, now)
	}

	// Success clears the attempt counter.
	if _, err := config.DB.Exec(`
		UPDATE user_login_attempts
		SET failed_attempts = 0, blocked_until = NULL, last_attempt_at = $1
		WHERE email = $2
	`, now, req.Email); err != nil {
		log.Error("Failed to clear login attempts", err, logger.Email(req.Email))
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, user.RoleID)
	if err != nil {
		log.Error("Failed to generate token", err, logger.UserID(user.ID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeUnexpectedError, "Internal server error.", err))
	}

	log.Info("User logged in", logger.UserID(user.ID))
	return apperrors.RespondWithSuccess(c, LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: tokenExpirySecs,
		User:      UserResponse{ID: user.ID, Email: user.Email, RoleID: user.RoleID},
	})
}

// failLogin bumps the failure counter and locks the account when the
// threshold is reached. The response never says which part was wrong.
func failLogin(c echo.Context, log logger.Logger, email string, failed int, now time.Time) error {
	failed++
	if failed >= maxFailedAttempts {
		blockedUntil := now.Add(lockoutDuration)
		if _, err := config.DB.Exec(`
			UPDATE user_login_attempts
			SET failed_attempts = $1, blocked_until = $2, last_attempt_at = $3
			WHERE email = $4
		`, failed, blockedUntil, now, email); err != nil {
			log.Error("Failed to record lockout", err, logger.Email(email))
		}
		log.Warn("Account locked after repeated failures", logger.Email(email))
		return apperrors.RespondWithError(c, apperrors.NewTooManyRequests(
			apperrors.ErrCodeAccountLocked,
			"Account temporarily locked due to repeated failed logins."))
	}

	if _, err := config.DB.Exec(`
		UPDATE user_login_attempts
		SET failed_attempts = $1, last_attempt_at = $2
		WHERE email = $3
	`, failed, now, email); err != nil {
		log.Error("Failed to record failed attempt", err, logger.Email(email))
	}

	return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
		apperrors.ErrCodeInvalidCredentials, "Invalid email or password."))
}

// LogoutHandler acknowledges logout. Tokens are stateless and short
// lived; the client discards its copy.
func LogoutHandler(c echo.Context) error {
	if userID, ok := c.Get("user_id").(int64); ok {
		logger.Get().WithComponent("auth").Info("User logged out", logger.UserID(userID))
	}
	return apperrors.RespondWithSuccess(c, map[string]string{"status": "logged_out"})
}

// MeHandler returns the authenticated user's profile.
func MeHandler(c echo.Context) error {
	userID, ok := c.Get("user_id").(int64)
	if !ok {
		return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
			apperrors.ErrCodeTokenInvalid, "Not authenticated."))
	}

	var user User
	err := config.DB.Get(&user, `
		SELECT id, email, password, role_id FROM users WHERE id = $1
	`, userID)
	if err == sql.ErrNoRows {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeUserNotFound, "User not found."))
	}
	if err != nil {
		logger.Get().WithComponent("auth").Error("Failed to fetch user", err, logger.UserID(userID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err))
	}

	return apperrors.RespondWithSuccess(c, UserResponse{
		ID: user.ID, Email: user.Email, RoleID: user.RoleID,
	})
}

// ChangePasswordHandler lets an authenticated user rotate their password.
func ChangePasswordHandler(c echo.Context) error {
	log := logger.Get().WithComponent("auth")

	userID, ok := c.Get("user_id").(int64)
	if !ok {
		return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
			apperrors.ErrCodeTokenInvalid, "Not authenticated."))
	}

	req := new(ChangePasswordRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed, "Invalid request payload."))
	}
	if err := validate.Struct(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed, "New password must be at least 8 characters."))
	}

	var user User
	err := config.DB.Get(&user, `
		SELECT id, email, password, role_id FROM users WHERE id = $1
	`, userID)
	if err != nil {
		log.Error("Failed to fetch user", err, logger.UserID(userID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err))
	}
	if !utils.CheckPasswordHash(req.CurrentPassword, user.Password) {
		return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
			apperrors.ErrCodeInvalidCredentials, "Current password is incorrect."))
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		log.Error("Failed to hash password", err, logger.UserID(userID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeUnexpectedError, "Internal server error.", err))
	}

	if _, err := config.DB.Exec(
		`UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`,
		hashed, userID); err != nil {
		log.Error("Failed to update password", err, logger.UserID(userID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err))
	}

	log.Info("Password changed", logger.UserID(userID))
	return apperrors.RespondWithSuccess(c, map[string]string{"status": "updated"})
}
