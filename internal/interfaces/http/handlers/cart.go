// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/techempire/storefront/internal/domain/cart"
)

// AddToCartRequest represents add to cart request
type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// UpdateCartItemRequest changes a quantity by delta; the entry is removed
// when the result drops to zero
type UpdateCartItemRequest struct {
	Delta int `json:"delta" binding:"required,min=-1000,max=1000"`
}

// CartHandler handles cart endpoints
type CartHandler struct {
	cartService *cart.Service
	sessions    *Sessions
	logger      logrus.FieldLogger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *cart.Service, sessions *Sessions, logger logrus.FieldLogger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		sessions:    sessions,
		logger:      logger,
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID := h.sessions.GetOrCreate(c)
	crt := h.cartService.Get(c.Request.Context(), sessionID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Корзина получена",
		"data":    crt.Summary(),
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	sessionID := h.sessions.GetOrCreate(c)

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(c, err)
		return
	}

	crt, err := h.cartService.AddItem(c.Request.Context(), sessionID, req.ProductID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Товар добавлен в корзину",
		"data":    crt.Summary(),
	})
}

// UpdateCartItem handles PATCH /cart/items/:id
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	sessionID := h.sessions.GetOrCreate(c)

	productID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(c, err)
		return
	}

	crt, err := h.cartService.UpdateQuantity(c.Request.Context(), sessionID, productID, req.Delta)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Количество обновлено",
		"data":    crt.Summary(),
	})
}

// RemoveFromCart handles DELETE /cart/items/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	sessionID := h.sessions.GetOrCreate(c)

	productID, ok := parseID(c, "id")
	if !ok {
		return
	}

	crt, err := h.cartService.RemoveItem(c.Request.Context(), sessionID, productID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Товар удалён из корзины",
		"data":    crt.Summary(),
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	sessionID := h.sessions.GetOrCreate(c)

	if err := h.cartService.Clear(c.Request.Context(), sessionID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Корзина очищена",
	})
}
