package app

import (
	"errors"
	"fmt"

	"realestate_backend/internal/auth"
	"realestate_backend/internal/config"
	"realestate_backend/internal/database"
	"realestate_backend/internal/handlers"
	"realestate_backend/internal/logger"
	"realestate_backend/internal/middleware"
	"realestate_backend/internal/models"
	"realestate_backend/internal/repositories"
	"realestate_backend/internal/routes"
	"realestate_backend/internal/services"
	"realestate_backend/internal/validator"
	"realestate_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/juju/clock"
	"gorm.io/gorm"
)

func Run() {
	cfg := config.GetConfig()
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)
	apperrors.SetDebug(cfg.IsDevelopment())

	clk := clock.WallClock

	logger.Info("Connecting to database...")
	gormDB, err := database.Connect(cfg.Database.DSN, clk, database.Options{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	logger.Info("Database connected")

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(gormDB); err != nil {
			logger.Fatal("Failed to migrate database", "error", err)
		}
	}

	if err := SeedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	ginRouter := SetupRouter(cfg, gormDB, clk)

	address := cfg.Address()
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter wires repositories, services and handlers onto a new engine.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, clk clock.Clock) *gin.Engine {
	serviceContainer := initializeServices(cfg, clk)
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.TokenTTL(), clk)
	appHandlers := initializeHandlers(serviceContainer, tokens)

	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers, middleware.AuthMiddleware(tokens, serviceContainer.UserService))
	return ginRouter
}

func initializeServices(cfg *config.Config, clk clock.Clock) *services.ServiceContainer {
	userRepo := repositories.NewUserRepository()
	propertyRepo := repositories.NewPropertyRepository()
	applicationRepo := repositories.NewApplicationRepository()
	viewingRepo := repositories.NewViewingRepository()
	favoriteRepo := repositories.NewFavoriteRepository()

	opts := services.Options{StrictTransitions: cfg.Workflow.StrictTransitions}
	if opts.StrictTransitions {
		logger.Info("Strict status transitions enabled")
	}

	return &services.ServiceContainer{
		UserService:        services.NewUserService(userRepo, clk),
		PropertyService:    services.NewPropertyService(propertyRepo, userRepo, clk, opts),
		ApplicationService: services.NewApplicationService(applicationRepo, propertyRepo, userRepo, clk, opts),
		ViewingService:     services.NewViewingService(viewingRepo, propertyRepo, userRepo, clk, opts),
		FavoriteService:    services.NewFavoriteService(favoriteRepo, propertyRepo, userRepo, clk),
		DashboardService:   services.NewDashboardService(propertyRepo, applicationRepo, viewingRepo, favoriteRepo, userRepo),
	}
}

func initializeHandlers(services *services.ServiceContainer, tokens *auth.TokenManager) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler(validator.New())

	return &handlers.AppHandlers{
		AuthHandler:        handlers.NewAuthHandler(baseHandler, services.UserService, tokens),
		PropertyHandler:    handlers.NewPropertyHandler(baseHandler, services.PropertyService),
		ApplicationHandler: handlers.NewApplicationHandler(baseHandler, services.ApplicationService, services.PropertyService),
		ViewingHandler:     handlers.NewViewingHandler(baseHandler, services.ViewingService, services.PropertyService),
		FavoriteHandler:    handlers.NewFavoriteHandler(baseHandler, services.FavoriteService),
		DashboardHandler:   handlers.NewDashboardHandler(baseHandler, services.DashboardService),
		AdminHandler: handlers.NewAdminHandler(
			baseHandler,
			services.PropertyService,
			services.UserService,
			services.ApplicationService,
			services.ViewingService,
			services.DashboardService,
		),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

// SeedFirstAdmin creates the configured admin account once. Missing
// credentials skip seeding.
func SeedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.Admin.Email
	adminPassword := cfg.Admin.Password

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	tx := db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	userRepo := repositories.NewUserRepository()
	_, err := userRepo.FindByEmail(tx, adminEmail)
	if err == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", err)
	}

	logger.Warn("No admin user found with specified email. Creating first admin...", "email", adminEmail)

	hashedPassword, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Name:         cfg.Admin.Name,
		Email:        adminEmail,
		PasswordHash: hashedPassword,
		Role:         models.UserRoleAdmin,
		IsActive:     true,
	}
	if err := userRepo.Create(tx, newAdmin); err != nil {
		return fmt.Errorf("failed to create admin user in database: %w", err)
	}

	logger.Info("Created first admin user", "email", adminEmail)
	return tx.Commit().Error
}
