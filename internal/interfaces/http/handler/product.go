package handler

import (
	catalogapp "github.com/blueselfcheckout/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// ProductHandler handles product endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// GetByCode handles GET /products/:code
func (h *ProductHandler) GetByCode(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// ReplaceMaterials handles PUT /products/:code/materials
func (h *ProductHandler) ReplaceMaterials(c *gin.Context) {
	var req catalogapp.ReplaceMaterialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	product, err := h.productService.ReplaceMaterials(c.Request.Context(), c.Param("code"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// ReplaceAccompaniments handles PUT /products/:code/accompaniments
func (h *ProductHandler) ReplaceAccompaniments(c *gin.Context) {
	var req catalogapp.ReplaceAccompanimentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	product, err := h.productService.ReplaceAccompaniments(c.Request.Context(), c.Param("code"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}
