// Package backofficeserver exposes the back-office HTTP API over gin.
package backofficeserver

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers of every API section.
type ApiHandleFunctions struct {
	CatalogAPI   CatalogAPI
	DiscountAPI  DiscountAPI
	OrderAPI     OrderAPI
	AnalyticsAPI AnalyticsAPI
	UserAPI      UserAPI
}

// RouterOptions tunes the middleware stack.
type RouterOptions struct {
	// ServiceName enables otelgin tracing when set.
	ServiceName string
	// AllowedOrigins enables CORS for the listed origins. "*" allows any origin.
	AllowedOrigins []string
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions, opts RouterOptions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions, opts)
}

// NewRouterWithGinEngine adds the middleware and routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions, opts RouterOptions) *gin.Engine {
	if opts.ServiceName != "" {
		router.Use(otelgin.Middleware(opts.ServiceName))
	}
	if len(opts.AllowedOrigins) > 0 {
		router.Use(cors.New(corsConfig(opts.AllowedOrigins)))
	}
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		router.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}
	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", IdempotencyKeyHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}

// DefaultHandleFunc answers routes that have no handler wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// Healthz reports liveness.
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func getRoutes(h ApiHandleFunctions) []Route {
	return []Route{
		{"Healthz", http.MethodGet, "/healthz", Healthz},

		{"ListProducts", http.MethodGet, "/api/products", h.CatalogAPI.ListProducts},
		{"CreateProduct", http.MethodPost, "/api/products", h.CatalogAPI.CreateProduct},
		{"GetProduct", http.MethodGet, "/api/products/:id", h.CatalogAPI.GetProduct},
		{"UpdateProduct", http.MethodPatch, "/api/products/:id", h.CatalogAPI.UpdateProduct},
		{"DeleteProduct", http.MethodDelete, "/api/products/:id", h.CatalogAPI.DeleteProduct},
		{"GetProductTags", http.MethodGet, "/api/products/:id/tags", h.CatalogAPI.GetProductTags},
		{"AddTagToProduct", http.MethodPost, "/api/products/:id/tags", h.CatalogAPI.AddTagToProduct},
		{"RemoveTagFromProduct", http.MethodDelete, "/api/products/:id/tags/:tagId", h.CatalogAPI.RemoveTagFromProduct},

		{"ListCategories", http.MethodGet, "/api/categories", h.CatalogAPI.ListCategories},
		{"CreateCategory", http.MethodPost, "/api/categories", h.CatalogAPI.CreateCategory},
		{"GetCategory", http.MethodGet, "/api/categories/:id", h.CatalogAPI.GetCategory},
		{"UpdateCategory", http.MethodPatch, "/api/categories/:id", h.CatalogAPI.UpdateCategory},
		{"DeleteCategory", http.MethodDelete, "/api/categories/:id", h.CatalogAPI.DeleteCategory},
		{"ListProductsByCategory", http.MethodGet, "/api/categories/:id/products", h.CatalogAPI.ListProductsByCategory},

		{"ListTags", http.MethodGet, "/api/tags", h.CatalogAPI.ListTags},
		{"CreateTag", http.MethodPost, "/api/tags", h.CatalogAPI.CreateTag},
		{"UpdateTag", http.MethodPatch, "/api/tags/:id", h.CatalogAPI.UpdateTag},
		{"DeleteTag", http.MethodDelete, "/api/tags/:id", h.CatalogAPI.DeleteTag},
		{"ListProductsByTag", http.MethodGet, "/api/tags/:id/products", h.CatalogAPI.ListProductsByTag},

		{"ListDiscounts", http.MethodGet, "/api/discounts", h.DiscountAPI.ListDiscounts},
		{"ListActiveDiscounts", http.MethodGet, "/api/discounts/active", h.DiscountAPI.ListActiveDiscounts},
		{"CreateDiscount", http.MethodPost, "/api/discounts", h.DiscountAPI.CreateDiscount},
		{"GetDiscount", http.MethodGet, "/api/discounts/:id", h.DiscountAPI.GetDiscount},
		{"UpdateDiscount", http.MethodPatch, "/api/discounts/:id", h.DiscountAPI.UpdateDiscount},
		{"DeleteDiscount", http.MethodDelete, "/api/discounts/:id", h.DiscountAPI.DeleteDiscount},

		{"ListOrders", http.MethodGet, "/api/orders", h.OrderAPI.ListOrders},
		{"PlaceOrder", http.MethodPost, "/api/orders", h.OrderAPI.PlaceOrder},
		{"RecentOrders", http.MethodGet, "/api/orders/recent", h.OrderAPI.RecentOrders},
		{"GetOrder", http.MethodGet, "/api/orders/:id", h.OrderAPI.GetOrder},
		{"UpdateOrder", http.MethodPatch, "/api/orders/:id", h.OrderAPI.UpdateOrder},
		{"ListOrderItems", http.MethodGet, "/api/orders/:id/items", h.OrderAPI.ListOrderItems},
		{"AddOrderItem", http.MethodPost, "/api/orders/:id/items", h.OrderAPI.AddOrderItem},
		{"QuoteRefund", http.MethodPost, "/api/orders/:id/refund-quote", h.OrderAPI.QuoteRefund},

		{"ListReturns", http.MethodGet, "/api/returns", h.OrderAPI.ListReturns},
		{"CreateReturn", http.MethodPost, "/api/returns", h.OrderAPI.CreateReturn},
		{"GetReturn", http.MethodGet, "/api/returns/:id", h.OrderAPI.GetReturn},
		{"UpdateReturn", http.MethodPatch, "/api/returns/:id", h.OrderAPI.UpdateReturn},

		{"Dashboard", http.MethodGet, "/api/analytics/dashboard", h.AnalyticsAPI.Dashboard},
		{"ProductRevenue", http.MethodGet, "/api/analytics/product-revenue", h.AnalyticsAPI.ProductRevenue},
		{"ExportProductRevenue", http.MethodGet, "/api/analytics/product-revenue/export", h.AnalyticsAPI.ExportProductRevenue},

		{"CreateUser", http.MethodPost, "/api/users", h.UserAPI.CreateUser},
		{"GetCurrentUser", http.MethodGet, "/api/users/me", h.UserAPI.GetCurrentUser},
		{"UpdateCurrentUser", http.MethodPatch, "/api/users/me", h.UserAPI.UpdateCurrentUser},
		{"GetUserByUsername", http.MethodGet, "/api/users/by-username/:username", h.UserAPI.GetUserByUsername},
	}
}
