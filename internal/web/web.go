// Package web embeds and serves the browser frontend.
package web

import (
	"embed"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

//go:embed static
var staticFS embed.FS

// Register mounts the embedded frontend at the web root. API and swagger
// paths are left untouched; everything else falls back to index.html.
func Register(e *echo.Echo) {
	e.Use(middleware.StaticWithConfig(middleware.StaticConfig{
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return strings.HasPrefix(path, "/api") || strings.HasPrefix(path, "/swagger")
		},
		Root:       "static",
		Filesystem: http.FS(staticFS),
		HTML5:      true,
	}))
}
