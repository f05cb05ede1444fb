// internal/interfaces/http/handlers/admin.go
package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/techempire/storefront/internal/domain/catalog"
	"github.com/techempire/storefront/internal/domain/contact"
	"github.com/techempire/storefront/internal/domain/order"
	"github.com/techempire/storefront/internal/interfaces/http/middleware"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AdminHandler handles back-office endpoints
type AdminHandler struct {
	catalogService *catalog.Service
	orderService   *order.Service
	contactService *contact.Service
	logger         logrus.FieldLogger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	catalogService *catalog.Service,
	orderService *order.Service,
	contactService *contact.Service,
	logger logrus.FieldLogger,
) *AdminHandler {
	return &AdminHandler{
		catalogService: catalogService,
		orderService:   orderService,
		contactService: contactService,
		logger:         logger,
	}
}

// GetProducts handles GET /admin/products
func (h *AdminHandler) GetProducts(c *gin.Context) {
	var query catalog.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondInvalidRequest(c, err)
		return
	}

	products, err := h.catalogService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Товары получены",
		"data":    products,
	})
}

// GetProduct handles GET /admin/products/:id
func (h *AdminHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	product, err := h.catalogService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Товар получен",
		"data":    product,
	})
}

// CreateProduct handles POST /admin/products
func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var req catalog.ProductCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(c, err)
		return
	}

	product, err := h.catalogService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Товар создан",
		"data":    product,
	})
}

// UpdateProduct handles PUT /admin/products/:id
func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req catalog.ProductUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(c, err)
		return
	}

	product, err := h.catalogService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Товар обновлён",
		"data":    product,
	})
}

// DeleteProduct handles DELETE /admin/products/:id
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Товар удалён",
	})
}

// ExportProducts handles GET /admin/products/export
func (h *AdminHandler) ExportProducts(c *gin.Context) {
	products, err := h.catalogService.List(c.Request.Context(), catalog.ListQuery{})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	file, err := catalog.ExportXLSX(products)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		respondError(c, h.logger, fmt.Errorf("failed to write spreadsheet: %w", err))
		return
	}

	filename := fmt.Sprintf("products-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// GetOrders handles GET /admin/orders
func (h *AdminHandler) GetOrders(c *gin.Context) {
	var req order.OrderListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondInvalidRequest(c, err)
		return
	}

	resp, err := h.orderService.List(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Заказы получены",
		"data":    resp,
	})
}

// GetOrder handles GET /admin/orders/:id
func (h *AdminHandler) GetOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	o, err := h.orderService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Заказ получен",
		"data":    o,
	})
}

// UpdateOrderStatus handles PUT /admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req order.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(c, err)
		return
	}
	if !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Неизвестный статус заказа",
		})
		return
	}

	adminID, _ := middleware.GetUserIDFromContext(c)
	o, err := h.orderService.UpdateStatus(c.Request.Context(), id, &req, adminID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Статус заказа изменён: %s", o.Status.Name()),
		"data":    o,
	})
}

// GetContacts handles GET /admin/contacts
func (h *AdminHandler) GetContacts(c *gin.Context) {
	var req contact.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondInvalidRequest(c, err)
		return
	}

	resp, err := h.contactService.List(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Обращения получены",
		"data":    resp,
	})
}
