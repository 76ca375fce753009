package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"printbridge/internal/handler"
	"printbridge/internal/middleware"
)

// Register wires routes and middleware. Everything under /api except login
// and refresh sits behind the auth gate; the admin group adds the role
// policy on top.
func Register(
	e *echo.Echo,
	gate echo.MiddlewareFunc,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	profileHandler *handler.ProfileHandler,
	printHandler *handler.PrintHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/login", authHandler.Login)
	api.POST("/refresh", authHandler.Refresh)

	// Authenticated routes
	secured := api.Group("", gate)
	secured.GET("/verify-token", authHandler.VerifyToken)
	secured.POST("/logout", authHandler.Logout)
	secured.GET("/profile", profileHandler.GetProfile)
	secured.POST("/profile/change-password", profileHandler.ChangePassword)
	secured.POST("/send-command", printHandler.SendCommand)
	secured.GET("/printer-data", printHandler.PrinterData)

	// Admin routes
	admin := secured.Group("/admin", middleware.RequireAdmin)
	admin.GET("/users", userHandler.ListUsers)
	admin.POST("/users", userHandler.CreateUser)
	admin.PUT("/users/:id", userHandler.UpdateUser)
	admin.POST("/users/:id/reset-password", userHandler.ResetPassword)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
