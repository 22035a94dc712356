package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shoe_shop/internal/catalog"
	"github.com/Skotchmaster/shoe_shop/internal/logging"
	"github.com/Skotchmaster/shoe_shop/internal/models"
	"github.com/Skotchmaster/shoe_shop/internal/util"
)

const HeaderTotalCount = "X-Total-Count"

type CatalogHTTP struct {
	Svc *catalog.Service
}

// GetProducts returns the catalog as a JSON array. Without page or size the
// whole catalog is returned.
func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_products")

	pageParam, sizeParam := c.QueryParam("page"), c.QueryParam("size")

	var (
		total    int64
		products []models.Product
		err      error
	)
	if pageParam == "" && sizeParam == "" {
		total, products, err = h.Svc.ListAll(ctx)
	} else {
		page := util.ParseIntDefault(pageParam, 1)
		size := util.ParseIntDefault(sizeParam, util.DefaultPageSize)
		total, products, err = h.Svc.ListPage(ctx, page, size)
	}
	if err != nil {
		l.Error("get_products_failed", "status", 500, "reason", "cannot list products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list products")
	}

	c.Response().Header().Set(HeaderTotalCount, strconv.FormatInt(total, 10))
	l.Info("get_products_success", "total", total, "returned", len(products))
	return c.JSON(http.StatusOK, products)
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_product")

	id := c.Param("id")
	p, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrValidation):
			l.Warn("get_product_failed", "status", 400, "reason", "id is required", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "id is required")
		case errors.Is(err, catalog.ErrNotFound):
			l.Warn("get_product_failed", "status", 404, "reason", "product not found", "product_id", id)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		default:
			l.Error("get_product_failed", "status", 500, "reason", "cannot get product", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot get product")
		}
	}

	return c.JSON(http.StatusOK, p)
}
