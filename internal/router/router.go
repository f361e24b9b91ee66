package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shop-inventory/internal/handler"
	"github.com/iliyamo/shop-inventory/internal/middleware"
	"github.com/iliyamo/shop-inventory/internal/model"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Used by load balancers and monitoring to verify the service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints and applies the rate
// limiter to the credential-bearing ones.  Unauthenticated operations live
// under /v1/auth; the protected identity endpoint lives under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, rate echo.MiddlewareFunc) {
	g := e.Group("/v1/auth")
	if rate != nil {
		g.Use(rate)
	}
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	// Logout takes a refresh token in the body and needs no JWT.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(model.RoleOwner, model.RoleEmployee))
	auth.GET("/me", a.Me)
}

// RegisterShop registers the catalog, sale and report endpoints.  Every
// route requires a valid access token.  Catalog writes are owner-only; the
// sale and report endpoints accept both roles, matching the original shop
// flow where employees record sales and read reports while only the boss
// maintains stock.  Report routes additionally sit behind the Redis
// response cache when one is configured.
func RegisterShop(e *echo.Echo, p *handler.ProductHandler, s *handler.SaleHandler, r *handler.ReportHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(model.RoleOwner, model.RoleEmployee))

	// Catalog reads for everyone, writes for the owner.
	auth.GET("/products", p.List)
	owner := auth.Group("")
	owner.Use(middleware.RequireRole(model.RoleOwner))
	owner.POST("/products", p.Create)
	owner.PATCH("/products/:id", p.Update)
	owner.POST("/products/:id/restock", p.Restock)

	// Sales.
	auth.POST("/sales", s.Record)
	auth.GET("/sales", s.List)

	// Reports.
	reports := auth.Group("/reports")
	if cache != nil {
		reports.Use(cache)
	}
	reports.GET("/stock", r.Stock)
	reports.GET("/pnl", r.DailyPnL)
	reports.GET("/pnl.csv", r.DailyPnLCSV)
}
