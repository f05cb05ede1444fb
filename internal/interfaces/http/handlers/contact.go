// internal/interfaces/http/handlers/contact.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/techempire/storefront/internal/domain/contact"
)

// ContactHandler handles the contact form
type ContactHandler struct {
	contactService *contact.Service
	logger         logrus.FieldLogger
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactService *contact.Service, logger logrus.FieldLogger) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		logger:         logger,
	}
}

// Submit handles POST /contact
func (h *ContactHandler) Submit(c *gin.Context) {
	var req contact.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(c, err)
		return
	}

	submission, err := h.contactService.Submit(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Сообщение отправлено. Мы свяжемся с вами в ближайшее время.",
		"data":    gin.H{"id": submission.ID},
	})
}
