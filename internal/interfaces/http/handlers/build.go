// internal/interfaces/http/handlers/build.go
package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/techempire/storefront/internal/domain/build"
	"github.com/techempire/storefront/internal/domain/catalog"
	"github.com/techempire/storefront/internal/interfaces/http/middleware"
)

// SelectComponentRequest picks a product for a slot
type SelectComponentRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// BuildHandler handles PC configurator endpoints
type BuildHandler struct {
	buildService *build.Service
	sessions     *Sessions
	logger       logrus.FieldLogger
}

// NewBuildHandler creates a new build handler
func NewBuildHandler(buildService *build.Service, sessions *Sessions, logger logrus.FieldLogger) *BuildHandler {
	return &BuildHandler{
		buildService: buildService,
		sessions:     sessions,
		logger:       logger,
	}
}

// GetBuild handles GET /pc-builder
func (h *BuildHandler) GetBuild(c *gin.Context) {
	sessionID := h.sessions.GetOrCreate(c)
	b := h.buildService.Get(c.Request.Context(), sessionID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Сборка получена",
		"data":    b.View(),
	})
}

// SelectComponent handles PUT /pc-builder/slots/:category
func (h *BuildHandler) SelectComponent(c *gin.Context) {
	sessionID := h.sessions.GetOrCreate(c)

	var req SelectComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(c, err)
		return
	}

	category := catalog.Category(c.Param("category"))
	b, err := h.buildService.Select(c.Request.Context(), sessionID, category, req.ProductID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Компонент выбран",
		"data":    b.View(),
	})
}

// RemoveComponent handles DELETE /pc-builder/slots/:category
func (h *BuildHandler) RemoveComponent(c *gin.Context) {
	sessionID := h.sessions.GetOrCreate(c)

	category := catalog.Category(c.Param("category"))
	b, err := h.buildService.Remove(c.Request.Context(), sessionID, category)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Компонент удалён из сборки",
		"data":    b.View(),
	})
}

// ClearBuild handles DELETE /pc-builder
func (h *BuildHandler) ClearBuild(c *gin.Context) {
	sessionID := h.sessions.GetOrCreate(c)

	if err := h.buildService.Clear(c.Request.Context(), sessionID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Сборка очищена",
	})
}

// AddToCart handles POST /pc-builder/cart
func (h *BuildHandler) AddToCart(c *gin.Context) {
	sessionID := h.sessions.GetOrCreate(c)

	crt, added, err := h.buildService.AddToCart(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("В корзину добавлено компонентов: %d", added),
		"data": gin.H{
			"added": added,
			"cart":  crt.Summary(),
		},
	})
}

// SaveBuild handles POST /pc-builder
func (h *BuildHandler) SaveBuild(c *gin.Context) {
	sessionID := h.sessions.GetOrCreate(c)

	var req build.SaveRequest
	// An empty body saves under the default name
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondInvalidRequest(c, err)
			return
		}
	}

	var userID *uint
	if id, ok := middleware.GetUserIDFromContext(c); ok {
		userID = &id
	}

	saved, err := h.buildService.Save(c.Request.Context(), sessionID, userID, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Сборка сохранена",
		"data":    saved,
	})
}

// GetSavedBuild handles GET /pc-builder/:id
func (h *BuildHandler) GetSavedBuild(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	saved, err := h.buildService.GetSaved(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Сборка получена",
		"data":    saved,
	})
}

// DownloadSheet handles GET /pc-builder/sheet
func (h *BuildHandler) DownloadSheet(c *gin.Context) {
	sessionID := h.sessions.GetOrCreate(c)

	buf, err := h.buildService.Sheet(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=pc-build.pdf")
	c.Header("Content-Length", strconv.Itoa(buf.Len()))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
