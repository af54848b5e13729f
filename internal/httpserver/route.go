package httpserver

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Register(e *echo.Echo, d *Deps) {
	health := &HealthHTTP{DB: d.DB}
	e.GET("/health/live", health.Live)
	e.GET("/health/ready", health.Ready)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))

	pages := Paginator{DefaultSize: d.PageSize}
	auth := &AuthHTTP{Svc: d.Auth}
	accounts := &AccountHTTP{Svc: d.Accounts, Pages: pages}
	products := &ProductHTTP{Svc: d.Products, Pages: pages}

	// Authentication runs per route so the group adds no catch-all routes
	// and unknown methods on known paths still answer 405.
	authn := Authenticate(d.Auth)
	api := e.Group("/api")
	api.POST("/login", auth.Login, authn)

	api.GET("/accounts", accounts.List, authn)
	api.POST("/accounts", accounts.Register, authn)
	api.GET("/accounts/newest/:n", accounts.Newest, authn)
	api.PATCH("/accounts/:id", accounts.Update, authn)
	api.PATCH("/accounts/:id/management", accounts.Manage, authn)

	api.GET("/products", products.GetProducts, authn)
	api.POST("/products", products.CreateProduct, authn)
	api.GET("/products/:id", products.GetProduct, authn)
	api.PATCH("/products/:id", products.PatchProduct, authn)
}
