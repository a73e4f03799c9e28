package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/server/http/dto"
)

// OrderHandler manages checkout and order submission.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Checkout handles POST /api/checkout. Authentication is optional.
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req dto.ProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		rejectBody(c, err)
		return
	}

	session, err := h.facade.Checkout(c.Request.Context(), req.Products, RequestOrigin(c.Request))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CheckoutResponse{Session: session.ID, URL: session.URL})
}

// AddOrder handles POST /api/orders.
func (h *OrderHandler) AddOrder(c *gin.Context) {
	var req dto.ProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		rejectBody(c, err)
		return
	}

	order, err := h.facade.AddOrder(c.Request.Context(), req.Products)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewOrderResponse(*order))
}
