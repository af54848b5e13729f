package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/marketplace/internal/service"
	"github.com/Skotchmaster/marketplace/internal/transport"
	"github.com/Skotchmaster/marketplace/pkg/logging"
)

type ProductHTTP struct {
	Svc   *service.ProductService
	Pages Paginator
}

func (h *ProductHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	pr, err := h.Pages.parse(c)
	if err != nil {
		l.Warn("get_products_error", "status", 404, "reason", "invalid page")
		return err
	}

	total, items, err := h.Svc.List(ctx, pr.Offset, pr.Limit)
	if err != nil {
		return fail(l, "get_products_error", err)
	}

	page, err := build(c, pr, total, transport.NewProductList(items))
	if err != nil {
		l.Warn("get_products_error", "status", 404, "reason", "page out of range")
		return err
	}
	return c.JSON(http.StatusOK, page)
}

func (h *ProductHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_product_error", "status", 404, "reason", "id is not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusNotFound, detailNotFound)
	}

	prod, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "get_product_error", err)
	}
	return c.JSON(http.StatusOK, transport.NewProductDetail(prod))
}

func (h *ProductHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	me := principal(c)
	if err := h.Svc.CanCreate(me); err != nil {
		return fail(l, "product_create_error", err)
	}

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, detailMalformedBody).WithInternal(err)
	}
	if err := c.Validate(&req); err != nil {
		return fail(l, "product_create_error", err)
	}

	prod, err := h.Svc.Create(ctx, me, req)
	if err != nil {
		return fail(l, "product_create_error", err)
	}

	l.Info("create_product_success", "product_id", prod.ID.String())
	return c.JSON(http.StatusCreated, transport.NewProductDetail(prod))
}

func (h *ProductHTTP) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.patch_product")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("product_patch_error", "status", 404, "reason", "id is not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusNotFound, detailNotFound)
	}

	prod, err := h.Svc.Editable(ctx, principal(c), id)
	if err != nil {
		return fail(l, "product_patch_error", err)
	}

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_patch_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, detailMalformedBody).WithInternal(err)
	}
	if err := c.Validate(&req); err != nil {
		return fail(l, "product_patch_error", err)
	}

	prod, err = h.Svc.Patch(ctx, prod, req)
	if err != nil {
		return fail(l, "product_patch_error", err)
	}

	l.Info("patch_product_success", "product_id", prod.ID.String())
	return c.JSON(http.StatusOK, transport.NewProductDetail(prod))
}
