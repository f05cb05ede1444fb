// internal/domain/order/entity.go
package order

import (
	"time"

	"github.com/techempire/storefront/internal/domain/catalog"
	"gorm.io/gorm"
)

// OrderStatus represents the order status
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

var statusNames = map[OrderStatus]string{
	OrderStatusPending:   "Ожидает подтверждения",
	OrderStatusConfirmed: "Подтверждён",
	OrderStatusShipped:   "Отправлен",
	OrderStatusDelivered: "Доставлен",
	OrderStatusCancelled: "Отменён",
}

// Valid reports whether s is a known status
func (s OrderStatus) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

// Name returns the Russian display name
func (s OrderStatus) Name() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return string(s)
}

// PaymentMethod is how the customer pays on delivery
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodCard PaymentMethod = "card"
)

var paymentMethodNames = map[PaymentMethod]string{
	PaymentMethodCash: "Наличными при получении",
	PaymentMethodCard: "Картой при получении",
}

// Valid reports whether m is a known payment method
func (m PaymentMethod) Valid() bool {
	_, ok := paymentMethodNames[m]
	return ok
}

// Name returns the Russian display name
func (m PaymentMethod) Name() string {
	if name, ok := paymentMethodNames[m]; ok {
		return name
	}
	return string(m)
}

// Order represents the order entity. Amounts are in kopecks.
type Order struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	OrderNumber     string         `gorm:"uniqueIndex;not null;size:50" json:"order_number"`
	UserID          uint           `gorm:"not null;index" json:"user_id"`
	Email           string         `gorm:"not null;size:255" json:"email"`
	CustomerName    string         `gorm:"size:255" json:"customer_name"`
	Phone           string         `gorm:"size:30" json:"phone"`
	Status          OrderStatus    `gorm:"not null;size:20;default:'pending';index" json:"status"`
	TotalAmount     int64          `gorm:"not null" json:"total_amount"`
	ShippingAddress string         `gorm:"not null;type:text" json:"shipping_address"`
	PaymentMethod   PaymentMethod  `gorm:"not null;size:20" json:"payment_method"`
	Notes           string         `gorm:"type:text" json:"notes"`
	ShippedAt       *time.Time     `json:"shipped_at"`
	DeliveredAt     *time.Time     `json:"delivered_at"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items         []OrderItem          `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
	StatusHistory []OrderStatusHistory `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"status_history,omitempty"`
}

// OrderItem is a product snapshot taken at checkout
type OrderItem struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	OrderID      uint      `gorm:"not null;index" json:"order_id"`
	ProductID    uint      `gorm:"not null;index" json:"product_id"`
	ProductName  string    `gorm:"not null;size:255" json:"product_name"`
	ProductImage string    `gorm:"type:text" json:"product_image"`
	Quantity     int       `gorm:"not null" json:"quantity"`
	Price        int64     `gorm:"not null" json:"price"`       // Price per unit in kopecks
	TotalPrice   int64     `gorm:"not null" json:"total_price"` // Quantity * Price
	CreatedAt    time.Time `json:"created_at"`
}

// OrderStatusHistory tracks order status changes
type OrderStatusHistory struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	OrderID   uint        `gorm:"not null;index" json:"order_id"`
	Status    OrderStatus `gorm:"not null;size:20" json:"status"`
	Comment   string      `gorm:"type:text" json:"comment"`
	CreatedBy uint        `gorm:"index" json:"created_by"` // User ID who made the change
	CreatedAt time.Time   `json:"created_at"`
}

// TableName overrides
func (Order) TableName() string              { return "orders" }
func (OrderItem) TableName() string          { return "order_items" }
func (OrderStatusHistory) TableName() string { return "order_status_history" }

// GetFormattedTotal returns the total as a ruble string
func (o *Order) GetFormattedTotal() string {
	return catalog.FormatPrice(o.TotalAmount)
}

// ItemCount is the sum of item quantities
func (o *Order) ItemCount() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// CanBeCancelled checks if order can be cancelled
func (o *Order) CanBeCancelled() bool {
	return CanTransition(o.Status, OrderStatusCancelled)
}

// IsCompleted checks if order is completed
func (o *Order) IsCompleted() bool {
	return o.Status == OrderStatusDelivered
}

// AddStatusHistory adds a new status change to history
func (o *Order) AddStatusHistory(status OrderStatus, comment string, createdBy uint, at time.Time) {
	o.StatusHistory = append(o.StatusHistory, OrderStatusHistory{
		OrderID:   o.ID,
		Status:    status,
		Comment:   comment,
		CreatedBy: createdBy,
		CreatedAt: at,
	})
}

var validTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered},
}

// CanTransition reports whether an order may move from one status to another
func CanTransition(from, to OrderStatus) bool {
	for _, status := range validTransitions[from] {
		if status == to {
			return true
		}
	}
	return false
}
