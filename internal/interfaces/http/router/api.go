package router

import (
	"github.com/blueselfcheckout/backend/internal/interfaces/http/handler"
)

// Handlers are the endpoint handlers mounted under the versioned API
type Handlers struct {
	Orders       *handler.OrderHandler
	Products     *handler.ProductHandler
	ProductTrees *handler.ProductTreeHandler
	Categories   *handler.CategoryHandler
	System       *handler.SystemHandler
}

// RegisterAPI declares every API route on r. Call r.Setup afterwards.
func RegisterAPI(r *Router, h Handlers) {
	sales := NewDomainGroup("sales", "/orders")
	sales.GET("", h.Orders.List)
	sales.POST("", h.Orders.Create)
	sales.GET("/:id", h.Orders.GetByID)
	sales.PUT("/:id", h.Orders.Update)
	sales.DELETE("/:id", h.Orders.Delete)
	r.Register(sales)

	products := NewDomainGroup("catalog", "/products")
	products.GET("/:code", h.Products.GetByCode)
	products.PUT("/:code/materials", h.Products.ReplaceMaterials)
	products.PUT("/:code/accompaniments", h.Products.ReplaceAccompaniments)
	r.Register(products)

	trees := NewDomainGroup("catalog", "/product-trees")
	trees.POST("", h.ProductTrees.Create)
	trees.GET("/:code", h.ProductTrees.GetByCode)
	trees.PUT("/:code", h.ProductTrees.Update)
	r.Register(trees)

	categories := NewDomainGroup("catalog", "/categories")
	slots := categories.Group("slots", "/:code/accompaniments")
	slots.GET("", h.Categories.GetAccompaniments)
	slots.PUT("", h.Categories.ReconcileAccompaniments)
	slots.GET("/next-line-number", h.Categories.NextLineNumber)
	r.Register(categories)

	system := NewDomainGroup("system", "/system")
	system.GET("/info", h.System.GetSystemInfo)
	r.Register(system)
}
