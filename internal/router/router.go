package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"storehub/internal/auth"
	"storehub/internal/handler"
	"storehub/internal/metrics"
)

// Register wires routes and middleware. Three role gates cover the whole
// authorization surface: admin-only, user-or-admin, and owner-or-admin; the
// owner dashboard additionally filters by the caller's id at the data layer.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	adminHandler *handler.AdminHandler,
	storeHandler *handler.StoreHandler,
	ownerHandler *handler.OwnerHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(metrics.Middleware())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/metrics", metrics.Handler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/login", authHandler.Login)
	api.POST("/admin/login", authHandler.AdminLogin)
	api.POST("/register", authHandler.Register)

	authenticated := auth.Authenticate(jwtService)

	// Any authenticated role may change its own password.
	api.PUT("/user/password", authHandler.ChangePassword, authenticated)

	// Admin-only routes
	admin := api.Group("/admin", authenticated, auth.RequireAdmin())
	admin.GET("/dashboard", adminHandler.Dashboard)
	admin.POST("/stores", adminHandler.CreateStore)
	admin.GET("/stores", adminHandler.ListStores)
	admin.POST("/users", adminHandler.CreateUser)
	admin.GET("/users", adminHandler.ListUsers)

	// User-or-admin routes
	api.GET("/stores", storeHandler.ListStores, authenticated, auth.RequireUser())
	api.POST("/ratings", storeHandler.SubmitRating, authenticated, auth.RequireUser())

	// Owner-or-admin routes
	api.GET("/store-owner/dashboard", ownerHandler.Dashboard, authenticated, auth.RequireStoreOwner())
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
