package httpserver

import (
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/marketplace/internal/service"
	"github.com/Skotchmaster/marketplace/internal/transport"
	"github.com/Skotchmaster/marketplace/pkg/logging"
)

type AccountHTTP struct {
	Svc   *service.AccountService
	Pages Paginator
}

func (h *AccountHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.list")

	pr, err := h.Pages.parse(c)
	if err != nil {
		l.Warn("list_accounts_error", "status", 404, "reason", "invalid page")
		return err
	}

	total, items, err := h.Svc.List(ctx, pr.Offset, pr.Limit)
	if err != nil {
		return fail(l, "list_accounts_error", err)
	}

	page, err := build(c, pr, total, transport.NewAccountList(items))
	if err != nil {
		l.Warn("list_accounts_error", "status", 404, "reason", "page out of range")
		return err
	}
	return c.JSON(http.StatusOK, page)
}

func (h *AccountHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, detailMalformedBody).WithInternal(err)
	}
	if err := c.Validate(&req); err != nil {
		return fail(l, "register_error", err)
	}

	acc, err := h.Svc.Register(ctx, req)
	if err != nil {
		return fail(l, "register_error", err)
	}

	l.Info("register_success", "account_id", acc.ID)
	return c.JSON(http.StatusCreated, transport.NewAccountResponse(acc))
}

func (h *AccountHTTP) Newest(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.newest")

	n, err := strconv.ParseUint(c.Param("n"), 10, 64)
	if err != nil {
		l.Warn("newest_accounts_error", "status", 404, "reason", "n is not a non-negative integer", "error", err)
		return echo.NewHTTPError(http.StatusNotFound, detailNotFound)
	}
	if n > math.MaxInt32 {
		n = math.MaxInt32
	}

	pr, err := h.Pages.parse(c)
	if err != nil {
		l.Warn("newest_accounts_error", "status", 404, "reason", "invalid page")
		return err
	}

	total, items, err := h.Svc.Newest(ctx, int(n), pr.Offset, pr.Limit)
	if err != nil {
		return fail(l, "newest_accounts_error", err)
	}

	page, err := build(c, pr, total, transport.NewAccountList(items))
	if err != nil {
		l.Warn("newest_accounts_error", "status", 404, "reason", "page out of range")
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Update is the self-service edit: only the account itself may change it.
func (h *AccountHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.update")

	id, ok := accountID(c)
	if !ok {
		l.Warn("update_account_error", "status", 404, "reason", "id is not an integer")
		return echo.NewHTTPError(http.StatusNotFound, detailNotFound)
	}

	me := principal(c)
	acc, err := h.Svc.Editable(ctx, me, id)
	if err != nil {
		return fail(l, "update_account_error", err)
	}

	var req transport.PatchAccountRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_account_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, detailMalformedBody).WithInternal(err)
	}
	if err := c.Validate(&req); err != nil {
		return fail(l, "update_account_error", err)
	}

	acc, err = h.Svc.Update(ctx, me, acc, req)
	if err != nil {
		return fail(l, "update_account_error", err)
	}

	l.Info("update_account_success", "account_id", acc.ID)
	return c.JSON(http.StatusOK, transport.NewAccountResponse(acc))
}

// Manage lets a superuser edit any account, is_active included.
func (h *AccountHTTP) Manage(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.manage")

	me := principal(c)
	if err := h.Svc.CanManage(me); err != nil {
		return fail(l, "manage_account_error", err)
	}

	id, ok := accountID(c)
	if !ok {
		l.Warn("manage_account_error", "status", 404, "reason", "id is not an integer")
		return echo.NewHTTPError(http.StatusNotFound, detailNotFound)
	}

	acc, err := h.Svc.Manageable(ctx, me, id)
	if err != nil {
		return fail(l, "manage_account_error", err)
	}

	var req transport.PatchAccountRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("manage_account_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, detailMalformedBody).WithInternal(err)
	}
	if err := c.Validate(&req); err != nil {
		return fail(l, "manage_account_error", err)
	}

	acc, err = h.Svc.Manage(ctx, acc, req)
	if err != nil {
		return fail(l, "manage_account_error", err)
	}

	l.Info("manage_account_success", "account_id", acc.ID, "is_active", acc.IsActive)
	return c.JSON(http.StatusOK, transport.NewAccountResponse(acc))
}

func accountID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
