package main

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"techcorp/internal/auth"
	"techcorp/internal/cache"
	"techcorp/internal/config"
	"techcorp/internal/db"
	"techcorp/internal/handler"
	"techcorp/internal/model"
	"techcorp/internal/repository"
	"techcorp/internal/router"
	"techcorp/internal/service"
)

func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Project{},
		&model.ContactMessage{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	// One Redis client shared by the session store and the catalog cache
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	cacheClient := cache.New(redisClient)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	projectRepo := repository.NewProjectRepository(gormDB)
	messageRepo := repository.NewMessageRepository(gormDB)

	// Initialize auth components
	hasher := auth.NewHasher(cfg.HashScheme)
	sessionStore := auth.NewRedisSessionStore(redisClient)
	sessions := auth.NewSessionManager(sessionStore, userRepo)
	guard := auth.NewGuard(sessions, cfg.CookieName)

	// Initialize services
	authService := service.NewAuthService(userRepo, hasher, sessions)
	catalogService := service.NewCatalogService(productRepo, categoryRepo, projectRepo, cacheClient)
	messageService := service.NewMessageService(messageRepo, service.NewContactValidator())

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, cfg.CookieName)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	messageHandler := handler.NewMessageHandler(messageService)
	healthHandler := handler.NewHealthHandler(gormDB, redisClient)

	// Register routes
	router.Register(
		e,
		guard,
		authHandler,
		catalogHandler,
		messageHandler,
		healthHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
