package app

import (
	"fmt"
	"time"

	"lifemed_backend/internal/auth"
	"lifemed_backend/internal/config"
	"lifemed_backend/internal/database"
	"lifemed_backend/internal/email"
	"lifemed_backend/internal/handlers"
	"lifemed_backend/internal/logger"
	"lifemed_backend/internal/middleware"
	"lifemed_backend/internal/repositories"
	"lifemed_backend/internal/routes"
	"lifemed_backend/internal/services"
	"lifemed_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	// TranslateError maps Postgres unique violations onto gorm.ErrDuplicatedKey,
	// which the repositories rely on for conflict detection.
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	router := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := router.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter assembles every component once and returns the configured engine.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	userRepo := repositories.NewUserRepository(gormDB)
	profileRepo := repositories.NewProfileRepository(gormDB)
	resetRepo := repositories.NewPasswordResetRepository(gormDB)

	var mailProvider email.Provider
	if cfg.Email.SMTPHost != "" {
		provider, err := email.NewGomailProvider(email.SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
		})
		if err != nil {
			logger.Fatal("Failed to initialize mail provider", "error", err)
		}
		mailProvider = provider
	} else {
		logger.Warn("SMTP not configured, password reset emails will not be sent")
	}

	signer := auth.NewTokenSigner(cfg.JWT.Secret, time.Duration(cfg.JWT.TTL)*time.Minute)

	authService := services.NewAuthService(userRepo, profileRepo, resetRepo, mailProvider, signer, services.AuthConfig{
		FrontendBaseURL: cfg.App.FrontendBaseURL,
		ResetTokenTTL:   time.Duration(cfg.App.ResetTokenTTL) * time.Minute,
	})
	userService := services.NewUserService(userRepo, profileRepo)

	v := validator.New()
	base := handlers.NewBaseHandler(v)
	authHandler := handlers.NewAuthHandler(base, authService)
	userHandler := handlers.NewUserHandler(base, userService)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())

	routes.RegisterRoutes(router, authHandler, userHandler, middleware.AuthMiddleware(signer))

	return router
}
