package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rl1809/rocketshoes-cart/internal/core/domain"
	"github.com/rl1809/rocketshoes-cart/internal/core/service"
)

type HTTPHandler struct {
	cartService *service.CartService
}

type UpdateAmountHTTPRequest struct {
	Amount *int `json:"amount" binding:"required"`
}

type CartHTTPResponse struct {
	Items []domain.LineItem `json:"items"`
	Count int               `json:"count"`
	Units int               `json:"units"`
	Total float64           `json:"total"`
}

type MutationHTTPResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Items   []domain.LineItem `json:"items"`
}

func NewHTTPHandler(cartService *service.CartService) *HTTPHandler {
	return &HTTPHandler{cartService: cartService}
}

// Register mounts the cart routes on r.
func (h *HTTPHandler) Register(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)

	api := r.Group("/api/cart")
	api.GET("", h.GetCart)
	api.POST("/products/:id", h.AddProduct)
	api.DELETE("/products/:id", h.RemoveProduct)
	api.PATCH("/products/:id", h.UpdateProductAmount)
}

func (h *HTTPHandler) GetCart(c *gin.Context) {
	cart := h.cartService.Cart()
	c.JSON(http.StatusOK, CartHTTPResponse{
		Items: cart.Items(),
		Count: cart.Len(),
		Units: cart.Units(),
		Total: cart.Total(),
	})
}

func (h *HTTPHandler) AddProduct(c *gin.Context) {
	h.mutate(c, service.OpAddProduct, func(ctx context.Context, productID int64) error {
		return h.cartService.AddProduct(ctx, productID)
	})
}

func (h *HTTPHandler) RemoveProduct(c *gin.Context) {
	h.mutate(c, service.OpRemoveProduct, func(ctx context.Context, productID int64) error {
		return h.cartService.RemoveProduct(ctx, productID)
	})
}

func (h *HTTPHandler) UpdateProductAmount(c *gin.Context) {
	var req UpdateAmountHTTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.reject(c, http.StatusBadRequest, "invalid request body")
		return
	}

	h.mutate(c, service.OpUpdateProductAmount, func(ctx context.Context, productID int64) error {
		return h.cartService.UpdateProductAmount(ctx, productID, *req.Amount)
	})
}

func (h *HTTPHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *HTTPHandler) mutate(c *gin.Context, op service.Operation, apply func(context.Context, int64) error) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.reject(c, http.StatusBadRequest, "invalid product id")
		return
	}

	err = apply(c.Request.Context(), productID)
	c.JSON(statusFor(err), MutationHTTPResponse{
		Success: err == nil,
		Message: service.Notification(op, err),
		Items:   h.cartService.Cart().Items(),
	})
}

func (h *HTTPHandler) reject(c *gin.Context, status int, message string) {
	c.JSON(status, MutationHTTPResponse{
		Success: false,
		Message: message,
		Items:   h.cartService.Cart().Items(),
	})
}

func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, service.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrProductNotInCart):
		return http.StatusNotFound
	case errors.Is(err, service.ErrStockExhausted):
		return http.StatusConflict
	case errors.Is(err, service.ErrLookupFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
