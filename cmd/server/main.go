package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"storehub/docs"
	"storehub/internal/auth"
	"storehub/internal/cache"
	"storehub/internal/config"
	"storehub/internal/db"
	"storehub/internal/handler"
	"storehub/internal/model"
	"storehub/internal/repository"
	"storehub/internal/router"
	"storehub/internal/service"
)

// @title Store Ratings API
// @version 1.0
// @description Multi-role store-rating platform: admins manage users and stores, owners view their ratings, users rate stores.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Rating{},
			&model.Store{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Store{},
		&model.Rating{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	storeRepo := repository.NewStoreRepository(gormDB)
	ratingRepo := repository.NewRatingRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	ratingService := service.NewRatingService(ratingRepo, storeRepo, cacheClient)
	storeService := service.NewStoreService(storeRepo, userRepo, ratingRepo, cacheClient)
	adminService := service.NewAdminService(userRepo, storeRepo, ratingRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(adminService, storeService)
	storeHandler := handler.NewStoreHandler(storeService, ratingService)
	ownerHandler := handler.NewOwnerHandler(storeService)

	// Register routes
	router.Register(
		e,
		jwtService,
		authHandler,
		adminHandler,
		storeHandler,
		ownerHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
