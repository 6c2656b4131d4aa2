package middleware

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/quillstack/be-cms-platform/pkg/apperrors"
	"github.com/spf13/viper"
)

// JWTMiddleware validates the bearer token and puts the user claims in
// the echo context for downstream handlers.
func JWTMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		jwtSecret := viper.GetString("JWT_SECRET")

		authHeader := c.Request().Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
				apperrors.ErrCodeTokenInvalid,
				"Missing or invalid token.",
			))
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if len(strings.Split(tokenString, ".")) != 3 {
			return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
				apperrors.ErrCodeTokenMalformed,
				"Malformed token.",
			))
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
				apperrors.ErrCodeTokenExpired,
				"Invalid or expired token.",
			))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
				apperrors.ErrCodeTokenInvalid,
				"Invalid token claims.",
			))
		}

		userID, ok := claims["user_id"].(float64)
		if !ok {
			return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
				apperrors.ErrCodeTokenInvalid,
				"Invalid token claims.",
			))
		}
		c.Set("user_id", int64(userID))
		if email, ok := claims["email"].(string); ok {
			c.Set("email", email)
		}
		if roleID, ok := claims["role_id"].(float64); ok {
			c.Set("role_id", int64(roleID))
		}

		return next(c)
	}
}
