package router

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"taskboard/internal/auth"
	"taskboard/internal/handler"
	"taskboard/internal/validation"
	"taskboard/internal/web"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	gate *auth.Gate,
	taskHandler *handler.TaskHandler,
	userHandler *handler.UserHandler,
	healthHandler *handler.HealthHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = validation.New()

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	api.GET("/health", healthHandler.Health)

	// Task routes are public; a valid bearer token attaches ownership but is
	// never required.
	tasks := api.Group("/tasks", gate.Optional())
	tasks.GET("", taskHandler.List)
	tasks.GET("/stats/summary", taskHandler.Stats)
	tasks.GET("/:id", taskHandler.Get)
	tasks.POST("", taskHandler.Create)
	tasks.PUT("/:id", taskHandler.Replace)
	tasks.PATCH("/:id/status", taskHandler.UpdateStatus)
	tasks.DELETE("/:id", taskHandler.Delete)

	users := api.Group("/users")
	users.POST("/register", userHandler.Register)
	users.POST("/login", userHandler.Login)
	users.GET("/profile", userHandler.Profile, gate.Required())
	users.PUT("/profile", userHandler.UpdateProfile, gate.Required())
	users.POST("/change-password", userHandler.ChangePassword, gate.Required())

	web.Register(e)
}
