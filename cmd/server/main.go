package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"printbridge/docs"
	"printbridge/internal/auth"
	"printbridge/internal/cache"
	"printbridge/internal/config"
	"printbridge/internal/db"
	"printbridge/internal/handler"
	"printbridge/internal/middleware"
	"printbridge/internal/model"
	"printbridge/internal/printer"
	"printbridge/internal/repository"
	"printbridge/internal/router"
	"printbridge/internal/service"
)

// @title Printbridge API
// @version 1.0
// @description Local-network label printer gateway with JWT authentication and admin user management.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(echomw.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)

	// Initialize auth components
	tokenService := auth.NewTokenService(cfg.JWTSecret, cfg.RefreshSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, tokenService, tokenStore)
	userService := service.NewUserService(userRepo)
	printService := service.NewPrintService(printer.NewSession())

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	profileHandler := handler.NewProfileHandler(userService)
	printHandler := handler.NewPrintHandler(printService, cfg.PrinterHost, cfg.PrinterPort)

	gate := middleware.Authenticate(tokenService, authService)

	// Register routes
	router.Register(e, gate, authHandler, userHandler, profileHandler, printHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
