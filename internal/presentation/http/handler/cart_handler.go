package handler

import (
	"github.com/FRANKLIN09020/smart-billing/internal/application/service"
	"github.com/FRANKLIN09020/smart-billing/internal/presentation/http/dto/request"
	"github.com/FRANKLIN09020/smart-billing/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// CartHandler handles the open bill on the counter. Every endpoint answers
// with the whole cart and its totals.
type CartHandler struct {
	cartService *service.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

func (h *CartHandler) Get(c *gin.Context) {
	response.OK(c, "Cart retrieved successfully", response.NewCartResponse(h.cartService.View(c.Request.Context())))
}

// AddItem adds one unit of a product, merging with an existing line
func (h *CartHandler) AddItem(c *gin.Context) {
	var req request.AddCartItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, view, err := h.cartService.AddItem(c.Request.Context(), req.ProductID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, item.Name+" added to bill", gin.H{
		"item": response.NewLineItemResponse(&item),
		"cart": response.NewCartResponse(view),
	})
}

func (h *CartHandler) SetQuantity(c *gin.Context) {
	id, ok := lineItemIDParam(c)
	if !ok {
		return
	}

	var req request.SetQuantityRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.cartService.SetQuantity(c.Request.Context(), id, *req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quantity updated", response.NewCartResponse(view))
}

func (h *CartHandler) SetPrice(c *gin.Context) {
	id, ok := lineItemIDParam(c)
	if !ok {
		return
	}

	var req request.SetPriceRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.cartService.SetPrice(c.Request.Context(), id, *req.UnitPrice)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Price updated", response.NewCartResponse(view))
}

// RemoveItem deletes a line. Removing an unknown line is not an error.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, ok := lineItemIDParam(c)
	if !ok {
		return
	}

	response.OK(c, "Item removed", response.NewCartResponse(h.cartService.RemoveItem(c.Request.Context(), id)))
}

func (h *CartHandler) Clear(c *gin.Context) {
	response.OK(c, "Cart cleared", response.NewCartResponse(h.cartService.Clear(c.Request.Context())))
}

func (h *CartHandler) SetDiscount(c *gin.Context) {
	var req request.SetDiscountRequest
	if !bindJSON(c, &req) {
		return
	}

	response.OK(c, "Discount updated", response.NewCartResponse(h.cartService.SetDiscount(c.Request.Context(), *req.Percent)))
}

func (h *CartHandler) SetCustomer(c *gin.Context) {
	var req request.SetCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	response.OK(c, "Customer updated", response.NewCartResponse(h.cartService.SetCustomer(c.Request.Context(), req.Name, req.Phone)))
}

func (h *CartHandler) SetPaymentMethod(c *gin.Context) {
	var req request.SetPaymentMethodRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.cartService.SetPaymentMethod(c.Request.Context(), req.PaymentMethod)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment method updated", response.NewCartResponse(view))
}
