package handler

import (
	catalogapp "github.com/blueselfcheckout/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// CategoryHandler handles category accompaniment slot endpoints
type CategoryHandler struct {
	BaseHandler
	categoryService *catalogapp.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *catalogapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// GetAccompaniments handles GET /categories/:code/accompaniments
func (h *CategoryHandler) GetAccompaniments(c *gin.Context) {
	slots, err := h.categoryService.GetAccompaniments(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, slots)
}

// ReconcileAccompaniments handles PUT /categories/:code/accompaniments
func (h *CategoryHandler) ReconcileAccompaniments(c *gin.Context) {
	var req catalogapp.ReconcileSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	slots, err := h.categoryService.ReconcileAccompaniments(c.Request.Context(), c.Param("code"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, slots)
}

// NextLineNumber handles GET /categories/:code/accompaniments/next-line-number
func (h *CategoryHandler) NextLineNumber(c *gin.Context) {
	next, err := h.categoryService.NextLineNumber(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, next)
}
