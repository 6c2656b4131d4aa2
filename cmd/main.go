package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/pressly/goose/v3"
	"github.com/spf13/viper"

	"github.com/quillstack/be-cms-platform/config"
	"github.com/quillstack/be-cms-platform/migrations"
	"github.com/quillstack/be-cms-platform/pkg/apperrors"
	"github.com/quillstack/be-cms-platform/pkg/logger"
	"github.com/quillstack/be-cms-platform/routes"
	"github.com/quillstack/be-cms-platform/utils"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/main.go [server|migrate|seed]")
		os.Exit(1)
	}

	config.InitConfig()
	config.InitDB()
	defer config.CloseDB()

	switch os.Args[1] {
	case "server":
		config.InitRedis()
		startServer()
	case "migrate":
		runMigrations()
	case "seed":
		runSeed()
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}
}

func startServer() {
	log := logger.Get().WithComponent("server")

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = apperrors.HTTPErrorHandler(logger.Get())

	allowOrigins := viper.GetStringSlice("CORS_ALLOW_ORIGINS")
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"http://localhost:3000"}
	}
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders:    []string{echo.HeaderContentLength},
		AllowCredentials: true,
		MaxAge:           86400,
	}))
	e.Use(logger.RequestLoggerMiddleware(logger.Get()))
	e.Use(logger.RecoveryMiddleware(logger.Get()))
	e.Use(echomw.BodyLimit("12M"))

	routes.RegisterRoutes(e)

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}

	go func() {
		if err := e.Start(":" + port); err != nil {
			log.Info("Server shutting down")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", err)
	}
}

func runMigrations() {
	log := logger.Get().WithComponent("migrate")

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Error("Failed to set migration dialect", err)
		os.Exit(1)
	}
	if err := goose.Up(config.DB.DB, "."); err != nil {
		log.Error("Migrations failed", err)
		os.Exit(1)
	}
	log.Info("Migrations applied")
}

// runSeed creates the initial admin user and a starter taxonomy so a fresh
// deployment is usable immediately. Safe to run more than once.
func runSeed() {
	log := logger.Get().WithComponent("seed")

	adminEmail := viper.GetString("SEED_ADMIN_EMAIL")
	adminPassword := viper.GetString("SEED_ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		fmt.Println("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD must be set")
		os.Exit(1)
	}

	hashed, err := utils.HashPassword(adminPassword)
	if err != nil {
		log.Error("Failed to hash admin password", err)
		os.Exit(1)
	}

	_, err = config.DB.Exec(`
		INSERT INTO users (email, password, role_id, created_at, updated_at)
		VALUES ($1, $2, 0, NOW(), NOW())
		ON CONFLICT (email) DO NOTHING
	`, adminEmail, hashed)
	if err != nil {
		log.Error("Failed to seed admin user", err, logger.Email(adminEmail))
		os.Exit(1)
	}

	categories := []string{"Guides", "Reviews", "News"}
	for _, name := range categories {
		if _, err := config.DB.Exec(`
			INSERT INTO categories (name, created_at)
			VALUES ($1, NOW())
			ON CONFLICT (name) DO NOTHING
		`, name); err != nil {
			log.Error("Failed to seed category", err)
			os.Exit(1)
		}
	}

	log.Info("Seed complete", logger.Email(adminEmail))
}
