package middleware

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/quillstack/be-cms-platform/pkg/logger"
)

// RateLimiterConfig holds the configuration for rate limiting
type RateLimiterConfig struct {
	MaxRequests   int           // Maximum number of requests allowed per window
	Window        time.Duration // Time window for rate limiting
	BlockDuration time.Duration // Duration to block the IP after exceeding limits
	DB            *sql.DB       // Database connection
}

// RateLimiterMiddleware limits requests per IP using a database table,
// so the limit holds across replicas sharing the same database.
func RateLimiterMiddleware(config RateLimiterConfig) echo.MiddlewareFunc {
	log := logger.Get().WithComponent("rate_limiter")
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			now := time.Now()

			tx, err := config.DB.Begin()
			if err != nil {
				log.Error("Failed to begin transaction", err)
				return internalLimiterError(c)
			}
			defer tx.Rollback()

			var blockedUntil sql.NullTime
			err = tx.QueryRow(`SELECT blocked_until FROM ip_rate_limits WHERE ip_address = $1`, ip).
				Scan(&blockedUntil)
			if err != nil && err != sql.ErrNoRows {
				log.Error("Failed to fetch blocked_until", err)
				return internalLimiterError(c)
			}
			if blockedUntil.Valid && blockedUntil.Time.After(now) {
				tx.Commit()
				return tooManyRequests(c)
			}

			var requestCount int
			var firstRequestTime time.Time
			err = tx.QueryRow(`SELECT request_count, first_request_time FROM ip_rate_limits WHERE ip_address = $1`, ip).
				Scan(&requestCount, &firstRequestTime)
			switch {
			case err == sql.ErrNoRows:
				_, err = tx.Exec(`
					INSERT INTO ip_rate_limits (ip_address, request_count, first_request_time, last_request_time)
					VALUES ($1, 1, $2, $2)
				`, ip, now)
				if err != nil {
					log.Error("Failed to insert rate limit row", err)
					return internalLimiterError(c)
				}
			case err != nil:
				log.Error("Failed to fetch rate limit row", err)
				return internalLimiterError(c)
			case now.Sub(firstRequestTime) > config.Window:
				_, err = tx.Exec(`
					UPDATE ip_rate_limits
					SET request_count = 1, first_request_time = $1, last_request_time = $1, blocked_until = NULL
					WHERE ip_address = $2
				`, now, ip)
				if err != nil {
					log.Error("Failed to reset rate limit window", err)
					return internalLimiterError(c)
				}
			case requestCount >= config.MaxRequests:
				_, err = tx.Exec(`
					UPDATE ip_rate_limits SET blocked_until = $1 WHERE ip_address = $2
				`, now.Add(config.BlockDuration), ip)
				if err != nil {
					log.Error("Failed to block IP", err)
					return internalLimiterError(c)
				}
				tx.Commit()
				return tooManyRequests(c)
			default:
				_, err = tx.Exec(`
					UPDATE ip_rate_limits
					SET request_count = request_count + 1, last_request_time = $1
					WHERE ip_address = $2
				`, now, ip)
				if err != nil {
					log.Error("Failed to update rate limit row", err)
					return internalLimiterError(c)
				}
			}

			if err := tx.Commit(); err != nil {
				log.Error("Failed to commit rate limit transaction", err)
				return internalLimiterError(c)
			}
			return next(c)
		}
	}
}

func tooManyRequests(c echo.Context) error {
	return c.JSON(http.StatusTooManyRequests, map[string]string{
		"error": "Too many requests from this IP, please try again later.",
	})
}

func internalLimiterError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, map[string]string{
		"error": "Internal server error",
	})
}
