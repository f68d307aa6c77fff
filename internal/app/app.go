package app

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"sakay_backend/internal/auth"
	"sakay_backend/internal/config"
	"sakay_backend/internal/email"
	"sakay_backend/internal/handlers"
	"sakay_backend/internal/logger"
	"sakay_backend/internal/middleware"
	"sakay_backend/internal/models"
	"sakay_backend/internal/repositories"
	"sakay_backend/internal/routes"
	"sakay_backend/internal/services"
	"sakay_backend/internal/validator"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
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

	if err := AutoMigrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Report{},
		&models.Route{},
		&models.Search{},
	)
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	serviceContainer := initializeServices(cfg)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(cfg, gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(cfg *config.Config) *services.ServiceContainer {
	emailService := buildEmailProvider(cfg)

	userRepo := repositories.NewUserRepository()
	reportRepo := repositories.NewReportRepository()
	routeRepo := repositories.NewRouteRepository()
	searchRepo := repositories.NewSearchRepository()

	return &services.ServiceContainer{
		AuthService:   services.NewAuthService(userRepo, emailService),
		UserService:   services.NewUserService(userRepo),
		ReportService: services.NewReportService(reportRepo),
		RouteService:  services.NewRouteService(routeRepo),
		SearchService: services.NewSearchService(searchRepo, userRepo),
		AdminService:  services.NewAdminService(userRepo, routeRepo, reportRepo, searchRepo),
		EmailService:  emailService,
	}
}

// buildEmailProvider returns SMTP when configured, otherwise the mock that
// logs codes to stdout for local development.
func buildEmailProvider(cfg *config.Config) email.Provider {
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP is not configured; OTP codes will be logged, not sent")
		return &email.MockProvider{}
	}

	provider, err := email.NewSMTPProvider(&email.Config{
		Host:         cfg.Email.SMTPHost,
		Port:         cfg.Email.SMTPPort,
		Username:     cfg.Email.SMTPUsername,
		Password:     cfg.Email.SMTPPassword,
		FromEmail:    cfg.Email.FromEmail,
		FromName:     cfg.Email.FromName,
		TemplatesDir: cfg.Email.TemplatesDir,
	})
	if err != nil {
		logger.Fatal("Failed to initialize SMTP provider", "error", err)
	}
	return provider
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:   handlers.NewAuthHandler(baseHandler, container.AuthService),
		UserHandler:   handlers.NewUserHandler(baseHandler, container.UserService),
		ReportHandler: handlers.NewReportHandler(baseHandler, container.ReportService),
		RouteHandler:  handlers.NewRouteHandler(baseHandler, container.RouteService),
		SearchHandler: handlers.NewSearchHandler(baseHandler, container.SearchService),
		AdminHandler:  handlers.NewAdminHandler(baseHandler, container.AdminService),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SessionMiddleware(cfg))
	router.Use(middleware.DBMiddleware(db))
	return router
}

// seedFirstAdmin creates the bootstrap admin account once. Role comes from
// this row, not from the email address.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		logger.Warn("ADMIN_EMAIL or ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	var existing models.User
	err := db.First(&existing, "email = ?", cfg.Admin.Email).Error
	if err == nil {
		logger.Info("Admin user already exists", "email", cfg.Admin.Email)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return err
	}

	username := cfg.Admin.Username
	if username == "" {
		username = "admin"
	}

	admin := &models.User{
		Username:     username,
		Email:        cfg.Admin.Email,
		PasswordHash: hash,
		Status:       models.UserStatusActive,
		Role:         models.UserRoleAdmin,
		Preferences:  models.DefaultPreferences(),
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}
	logger.Info("Seeded first admin user", "email", cfg.Admin.Email)
	return nil
}
