// internal/domain/order/service.go
package order

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/techempire/storefront/internal/domain/cart"
	"github.com/techempire/storefront/internal/domain/catalog"
	"github.com/techempire/storefront/internal/pkg/email"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidOrder       = errors.New("invalid order")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrProductUnavailable = errors.New("product is no longer available")
)

// Repository is the order persistence port
type Repository interface {
	// Create stores the order with its items and history in one transaction
	Create(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id uint) (*Order, error)
	List(ctx context.Context, req *OrderListRequest) ([]Order, int64, error)
	// UpdateStatus applies updates and appends history in one transaction
	UpdateStatus(ctx context.Context, id uint, updates map[string]interface{}, history OrderStatusHistory) error
}

// CartLoader loads the cart of a session
type CartLoader interface {
	Get(ctx context.Context, sessionID string) *cart.Cart
}

// ProductLookup resolves catalog products by id
type ProductLookup interface {
	Get(ctx context.Context, id uint) (*catalog.Product, error)
}

// Notifier sends order e-mails
type Notifier interface {
	SendOrderConfirmation(ctx context.Context, data email.OrderConfirmationData) error
}

// InvoiceRenderer produces PDF invoices
type InvoiceRenderer interface {
	GenerateInvoice(o *Order) (*bytes.Buffer, error)
}

// Customer identifies who is checking out
type Customer struct {
	UserID uint
	Email  string
}

// CheckoutRequest represents checkout form data
type CheckoutRequest struct {
	CustomerName    string        `json:"customer_name"`
	Phone           string        `json:"phone"`
	ShippingAddress string        `json:"shipping_address"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
	Notes           string        `json:"notes"`
}

// OrderListRequest represents order list filters
type OrderListRequest struct {
	Page      int         `form:"page"`
	Limit     int         `form:"limit"`
	Status    OrderStatus `form:"status"`
	UserID    uint        `form:"-"`
	SortBy    string      `form:"sort_by"`
	SortOrder string      `form:"sort_order"`
}

// StatusUpdateRequest represents an admin status change
type StatusUpdateRequest struct {
	Status  OrderStatus `json:"status" binding:"required"`
	Comment string      `json:"comment"`
}

// OrderResponse represents paginated orders
type OrderResponse struct {
	Orders     []Order    `json:"orders"`
	Pagination Pagination `json:"pagination"`
}

// Pagination represents pagination info
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// Service handles order business logic
type Service struct {
	repo     Repository
	carts    CartLoader
	products ProductLookup
	notifier Notifier
	invoices InvoiceRenderer
	now      func() time.Time
	logger   logrus.FieldLogger
}

// NewService creates a new order service
func NewService(
	repo Repository,
	carts CartLoader,
	products ProductLookup,
	notifier Notifier,
	invoices InvoiceRenderer,
	logger logrus.FieldLogger,
) *Service {
	return &Service{
		repo:     repo,
		carts:    carts,
		products: products,
		notifier: notifier,
		invoices: invoices,
		now:      time.Now,
		logger:   logger.WithField("component", "order"),
	}
}

// Checkout turns the session's cart into an order and clears the cart
func (s *Service) Checkout(ctx context.Context, customer Customer, sessionID string, req *CheckoutRequest) (*Order, error) {
	c := s.carts.Get(ctx, sessionID)
	if c.IsEmpty() {
		return nil, cart.ErrEmptyCart
	}

	if err := normalizeCheckout(req); err != nil {
		return nil, err
	}

	// Every product must still be on sale
	for _, entry := range c.Entries() {
		p, err := s.products.Get(ctx, entry.ID)
		if err != nil {
			if errors.Is(err, catalog.ErrProductNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrProductUnavailable, entry.Name)
			}
			return nil, err
		}
		if !p.InStock {
			return nil, fmt.Errorf("%w: %s", ErrProductUnavailable, entry.Name)
		}
	}

	now := s.now().UTC()
	order := &Order{
		OrderNumber:     s.generateOrderNumber(now),
		UserID:          customer.UserID,
		Email:           customer.Email,
		CustomerName:    req.CustomerName,
		Phone:           req.Phone,
		Status:          OrderStatusPending,
		TotalAmount:     c.TotalPrice(),
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
	}
	for _, entry := range c.Entries() {
		order.Items = append(order.Items, OrderItem{
			ProductID:    entry.ID,
			ProductName:  entry.Name,
			ProductImage: entry.Image,
			Quantity:     entry.Quantity,
			Price:        entry.Price,
			TotalPrice:   entry.Subtotal(),
		})
	}
	order.AddStatusHistory(OrderStatusPending, "Заказ создан", customer.UserID, now)

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// The order exists now; a stale cart is only logged
	if err := c.Clear(ctx); err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Warn("failed to clear cart after checkout")
	}

	s.logger.WithFields(logrus.Fields{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"user_id":      customer.UserID,
		"total":        order.TotalAmount,
	}).Info("order created")

	s.sendConfirmation(ctx, order)
	return order, nil
}

// ListForUser returns the user's orders, newest first
func (s *Service) ListForUser(ctx context.Context, userID uint, req *OrderListRequest) (*OrderResponse, error) {
	req.UserID = userID
	return s.List(ctx, req)
}

// GetForUser returns one of the user's orders
func (s *Service) GetForUser(ctx context.Context, userID, orderID uint) (*Order, error) {
	o, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

// Invoice renders one of the user's orders as a PDF
func (s *Service) Invoice(ctx context.Context, userID, orderID uint) (*Order, *bytes.Buffer, error) {
	o, err := s.GetForUser(ctx, userID, orderID)
	if err != nil {
		return nil, nil, err
	}

	buf, err := s.invoices.GenerateInvoice(o)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate invoice: %w", err)
	}
	return o, buf, nil
}

// List retrieves orders with filtering and pagination
func (s *Service) List(ctx context.Context, req *OrderListRequest) (*OrderResponse, error) {
	normalizeList(req)

	orders, total, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return &OrderResponse{
		Orders: orders,
		Pagination: Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    req.Page < totalPages,
			HasPrev:    req.Page > 1,
		},
	}, nil
}

// Get retrieves any order by id
func (s *Service) Get(ctx context.Context, orderID uint) (*Order, error) {
	return s.repo.FindByID(ctx, orderID)
}

// UpdateStatus moves an order along the status table
func (s *Service) UpdateStatus(ctx context.Context, orderID uint, req *StatusUpdateRequest, updatedBy uint) (*Order, error) {
	o, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !CanTransition(o.Status, req.Status) {
		return nil, fmt.Errorf("%w: from %s to %s", ErrInvalidTransition, o.Status, req.Status)
	}

	now := s.now().UTC()
	updates := map[string]interface{}{
		"status": req.Status,
	}
	switch req.Status {
	case OrderStatusShipped:
		updates["shipped_at"] = now
	case OrderStatusDelivered:
		updates["delivered_at"] = now
	}

	history := OrderStatusHistory{
		OrderID:   orderID,
		Status:    req.Status,
		Comment:   strings.TrimSpace(req.Comment),
		CreatedBy: updatedBy,
		CreatedAt: now,
	}
	if err := s.repo.UpdateStatus(ctx, orderID, updates, history); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"order_id": orderID,
		"from":     o.Status,
		"to":       req.Status,
		"admin_id": updatedBy,
	}).Info("order status updated")

	return s.repo.FindByID(ctx, orderID)
}

func (s *Service) sendConfirmation(ctx context.Context, o *Order) {
	data := email.OrderConfirmationData{
		UserEmail:       o.Email,
		OrderNumber:     o.OrderNumber,
		OrderDate:       o.CreatedAt.Format("02.01.2006"),
		OrderTotal:      o.GetFormattedTotal(),
		ShippingAddress: o.ShippingAddress,
		PaymentMethod:   o.PaymentMethod.Name(),
	}
	for _, item := range o.Items {
		data.Items = append(data.Items, email.OrderItem{
			Name:     item.ProductName,
			Quantity: item.Quantity,
			Price:    catalog.FormatPrice(item.Price),
			Total:    catalog.FormatPrice(item.TotalPrice),
		})
	}

	if err := s.notifier.SendOrderConfirmation(ctx, data); err != nil {
		s.logger.WithError(err).WithField("order_id", o.ID).Warn("failed to send order confirmation")
	}
}

// generateOrderNumber formats TE-YYYYMMDD-XXXXXXXX
func (s *Service) generateOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("TE-%s-%s", now.Format("20060102"), suffix)
}

func normalizeCheckout(req *CheckoutRequest) error {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.Phone = strings.TrimSpace(req.Phone)
	req.ShippingAddress = strings.TrimSpace(req.ShippingAddress)
	req.Notes = strings.TrimSpace(req.Notes)

	if req.ShippingAddress == "" {
		return fmt.Errorf("%w: shipping address is required", ErrInvalidOrder)
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = PaymentMethodCash
	}
	if !req.PaymentMethod.Valid() {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidOrder, req.PaymentMethod)
	}
	return nil
}

func normalizeList(req *OrderListRequest) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	validSortFields := map[string]bool{
		"created_at":   true,
		"updated_at":   true,
		"total_amount": true,
		"status":       true,
		"order_number": true,
	}
	if !validSortFields[req.SortBy] {
		req.SortBy = "created_at"
	}
	if req.SortOrder != "asc" && req.SortOrder != "desc" {
		req.SortOrder = "desc"
	}
}
