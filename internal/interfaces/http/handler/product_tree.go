package handler

import (
	catalogapp "github.com/blueselfcheckout/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// ProductTreeHandler handles combo composition endpoints
type ProductTreeHandler struct {
	BaseHandler
	treeService *catalogapp.ProductTreeService
}

// NewProductTreeHandler creates a new ProductTreeHandler
func NewProductTreeHandler(treeService *catalogapp.ProductTreeService) *ProductTreeHandler {
	return &ProductTreeHandler{treeService: treeService}
}

// GetByCode handles GET /product-trees/:code
func (h *ProductTreeHandler) GetByCode(c *gin.Context) {
	tree, err := h.treeService.Get(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tree)
}

// Create handles POST /product-trees
func (h *ProductTreeHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductTreeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	tree, err := h.treeService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tree)
}

// Update handles PUT /product-trees/:code
func (h *ProductTreeHandler) Update(c *gin.Context) {
	var req catalogapp.UpdateProductTreeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	tree, err := h.treeService.Update(c.Request.Context(), c.Param("code"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tree)
}
