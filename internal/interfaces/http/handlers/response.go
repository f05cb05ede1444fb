// internal/interfaces/http/handlers/response.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/techempire/storefront/internal/domain/build"
	"github.com/techempire/storefront/internal/domain/cart"
	"github.com/techempire/storefront/internal/domain/catalog"
	"github.com/techempire/storefront/internal/domain/contact"
	"github.com/techempire/storefront/internal/domain/order"
	"github.com/techempire/storefront/internal/domain/user"
)

type errorMapping struct {
	target  error
	status  int
	message string
	// details exposes the wrapped error text to the client
	details bool
}

var errorMappings = []errorMapping{
	{catalog.ErrProductNotFound, http.StatusNotFound, "Товар не найден", false},
	{catalog.ErrInvalidProduct, http.StatusBadRequest, "Некорректные данные товара", true},
	{cart.ErrOutOfStock, http.StatusConflict, "Товара нет в наличии", false},
	{cart.ErrEmptyCart, http.StatusBadRequest, "Корзина пуста", false},
	{build.ErrUnknownCategory, http.StatusBadRequest, "Неизвестная категория комплектующих", false},
	{build.ErrCategoryMismatch, http.StatusBadRequest, "Товар не относится к выбранной категории", false},
	{build.ErrEmptyBuild, http.StatusBadRequest, "Сборка пуста", false},
	{build.ErrBuildNotFound, http.StatusNotFound, "Сборка не найдена", false},
	{user.ErrInvalidEmail, http.StatusBadRequest, "Некорректный email", false},
	{user.ErrInvalidCode, http.StatusUnauthorized, "Неверный или просроченный код", false},
	{user.ErrCodeDelivery, http.StatusBadGateway, "Не удалось отправить код, попробуйте позже", false},
	{user.ErrUserNotFound, http.StatusNotFound, "Пользователь не найден", false},
	{order.ErrOrderNotFound, http.StatusNotFound, "Заказ не найден", false},
	{order.ErrInvalidOrder, http.StatusBadRequest, "Некорректные данные заказа", true},
	{order.ErrInvalidTransition, http.StatusConflict, "Недопустимая смена статуса заказа", true},
	{order.ErrProductUnavailable, http.StatusConflict, "Товар больше недоступен", true},
	{contact.ErrMissingFields, http.StatusBadRequest, "Заполните имя, email и сообщение", false},
	{contact.ErrInvalidEmail, http.StatusBadRequest, "Некорректный email", false},
	{cart.ErrPersist, http.StatusServiceUnavailable, "Не удалось сохранить корзину", false},
	{build.ErrPersist, http.StatusServiceUnavailable, "Не удалось сохранить сборку", false},
}

// respondError translates a domain error into a status and a Russian message.
// Unknown errors are logged and reported as 500.
func respondError(c *gin.Context, logger logrus.FieldLogger, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			body := gin.H{"error": m.message}
			if m.details {
				body["details"] = err.Error()
			}
			if m.status >= http.StatusInternalServerError {
				logger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
			}
			c.JSON(m.status, body)
			return
		}
	}

	logger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Внутренняя ошибка сервера",
	})
}

// respondInvalidRequest reports a body that failed to bind
func respondInvalidRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Некорректные данные запроса",
		"details": err.Error(),
	})
}

// parseID reads a positive numeric path parameter
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Некорректный идентификатор",
		})
		return 0, false
	}
	return uint(id), true
}
