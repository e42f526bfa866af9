package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/catalog_api/internal/logging"
	authmw "github.com/Skotchmaster/catalog_api/internal/middleware/auth"
	loggingmw "github.com/Skotchmaster/catalog_api/internal/middleware/logging"
	"github.com/Skotchmaster/catalog_api/internal/models"
)

const readyTimeout = 2 * time.Second

type Deps struct {
	CatalogHandler *CatalogHTTP
	AuthHandler    *AuthHTTP
	// SearchHandler is optional; without it the search route is not mounted.
	SearchHandler *SearchHTTP
	Authenticator *authmw.Authenticator
	// Ready reports whether backing stores are reachable. Nil means always ready.
	Ready func(ctx context.Context) error
}

// New builds the echo instance with the shared middleware pipeline and routes.
func New(logger *slog.Logger, d *Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler

	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(loggingmw.RequestLogger(logger))

	Register(e, d)
	return e
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready == nil {
			return c.NoContent(http.StatusOK)
		}
		ctx, cancel := context.WithTimeout(c.Request().Context(), readyTimeout)
		defer cancel()
		if err := d.Ready(ctx); err != nil {
			logging.FromContext(c.Request().Context()).Warn("readiness_failed", "error", err)
			return echo.NewHTTPError(http.StatusServiceUnavailable, "not ready")
		}
		return c.NoContent(http.StatusOK)
	})

	e.POST("/login", d.AuthHandler.Login)

	authMW := d.Authenticator
	adminOnly := authMW.RequireRole(models.RoleAdmin)

	products := e.Group("/products")
	products.GET("", d.CatalogHandler.GetProducts, authMW.RequireAuth)
	if d.SearchHandler != nil {
		products.GET("/search", d.SearchHandler.SearchProducts, authMW.RequireAuth)
	}
	products.GET("/:id", d.CatalogHandler.GetProduct, authMW.RequireAuth)

	products.POST("", d.CatalogHandler.CreateProduct, adminOnly)
	products.PUT("/:id", d.CatalogHandler.UpdateProduct, adminOnly)
	products.DELETE("/:id", d.CatalogHandler.DeleteProduct, adminOnly)
}
