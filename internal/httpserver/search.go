package httpserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/catalog_api/internal/logging"
	"github.com/Skotchmaster/catalog_api/internal/models"
	"github.com/Skotchmaster/catalog_api/internal/transport"
	"github.com/Skotchmaster/catalog_api/internal/util"
)

type Searcher interface {
	Search(ctx context.Context, q string, from, size int) (int64, []models.Product, error)
}

type SearchHTTP struct {
	Searcher Searcher
}

func (h *SearchHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		l.Warn("search_failed", "status", 400, "reason", "empty query")
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter q is required")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)

	total, products, err := h.Searcher.Search(ctx, q, from, limit)
	if err != nil {
		l.Error("search_failed", "status", 502, "reason", "search backend error", "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, "search unavailable")
	}
	if products == nil {
		products = []models.Product{}
	}

	l.Info("search_success", "total", total)
	return c.JSON(http.StatusOK, transport.SearchResponse{Total: total, Products: products})
}
