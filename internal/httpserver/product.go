package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/catalog_api/internal/logging"
	"github.com/Skotchmaster/catalog_api/internal/repo"
	"github.com/Skotchmaster/catalog_api/internal/service"
	"github.com/Skotchmaster/catalog_api/internal/transport"
)

const (
	msgProductNotFound = "Product not found"
	msgProductDeleted  = "Product deleted"
	msgInvalidBody     = "invalid body"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

// parseID reports false for anything that is not a base-10 int64; such an id
// can never name a stored product.
func parseID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	items, err := h.Svc.GetProducts(ctx)
	if err != nil {
		l.Error("get_products_failed", "status", 500, "reason", "cannot list products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list products")
	}

	l.Info("get_products_success", "count", len(items))
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, ok := parseID(c)
	if !ok {
		l.Warn("get_product_failed", "status", 404, "reason", "id is not an integer", "id", c.Param("id"))
		return echo.NewHTTPError(http.StatusNotFound, msgProductNotFound)
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("get_product_failed", "status", 404, "reason", "product with this id does not exist", "id", id)
			return echo.NewHTTPError(http.StatusNotFound, msgProductNotFound)
		}
		l.Error("get_product_failed", "status", 500, "reason", "cannot get product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get product")
	}

	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	var req transport.CreateProductRequest
	if err := bindJSON(c, &req); err != nil {
		l.Warn("create_product_failed", "status", 400, "reason", msgInvalidBody, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidBody)
	}

	created, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_product_failed", "status", 400, "reason", err.Error())
			return echo.NewHTTPError(http.StatusBadRequest, service.ValidationMessage)
		}
		l.Error("create_product_failed", "status", 500, "reason", "cannot store product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot store product")
	}

	l.Info("create_product_success", "id", created.ID)
	return c.JSON(http.StatusCreated, created)
}

func (h *CatalogHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update_product")

	id, ok := parseID(c)
	if !ok {
		l.Warn("update_product_failed", "status", 404, "reason", "id is not an integer", "id", c.Param("id"))
		return echo.NewHTTPError(http.StatusNotFound, msgProductNotFound)
	}

	var req transport.PatchProductRequest
	if err := bindJSON(c, &req); err != nil {
		l.Warn("update_product_failed", "status", 400, "reason", msgInvalidBody, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidBody)
	}

	updated, err := h.Svc.UpdateProduct(ctx, id, req)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("update_product_failed", "status", 404, "reason", "product with this id does not exist", "id", id)
			return echo.NewHTTPError(http.StatusNotFound, msgProductNotFound)
		}
		l.Error("update_product_failed", "status", 500, "reason", "cannot update product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update product")
	}

	l.Info("update_product_success", "id", id)
	return c.JSON(http.StatusOK, updated)
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete_product")

	id, ok := parseID(c)
	if !ok {
		l.Warn("delete_product_failed", "status", 404, "reason", "id is not an integer", "id", c.Param("id"))
		return echo.NewHTTPError(http.StatusNotFound, msgProductNotFound)
	}

	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("delete_product_failed", "status", 404, "reason", "product with this id does not exist", "id", id)
			return echo.NewHTTPError(http.StatusNotFound, msgProductNotFound)
		}
		l.Error("delete_product_failed", "status", 500, "reason", "cannot delete product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete product")
	}

	l.Info("delete_product_success", "id", id)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: msgProductDeleted})
}
