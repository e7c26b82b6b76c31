package handler

import (
	salesapp "github.com/blueselfcheckout/backend/internal/application/sales"
	"github.com/blueselfcheckout/backend/internal/interfaces/http/dto"
	"github.com/blueselfcheckout/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// OrderHandler handles order endpoints
type OrderHandler struct {
	BaseHandler
	orderService *salesapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *salesapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create handles POST /orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req salesapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// List handles GET /orders
func (h *OrderHandler) List(c *gin.Context) {
	var q salesapp.ListOrdersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		if details := middleware.ValidationDetails(err); details != nil {
			h.Error(c, dto.ErrCodeValidation, "Invalid query parameters", details...)
			return
		}
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	page, err := h.orderService.List(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, page)
}

// GetByID handles GET /orders/:id
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Update handles PUT /orders/:id. The header is updated and the submitted
// lines replace the stored ones in a single transaction.
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req salesapp.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.orderService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Delete handles DELETE /orders/:id
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
