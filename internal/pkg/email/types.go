// internal/pkg/email/types.go
package email

import (
	"time"
)

// EmailType represents the type of email being sent
type EmailType string

const (
	EmailTypeAuthCode            EmailType = "auth_code"
	EmailTypeContactNotification EmailType = "contact_notification"
	EmailTypeOrderConfirmation   EmailType = "order_confirmation"
)

// Email represents an email message
type Email struct {
	To          []string  `json:"to"`
	ReplyTo     string    `json:"reply_to,omitempty"`
	Subject     string    `json:"subject"`
	HTMLContent string    `json:"html_content"`
	Type        EmailType `json:"type"`
}

// EmailTemplateData contains common data for all email templates
type EmailTemplateData struct {
	SiteName string `json:"site_name"`
	SiteURL  string `json:"site_url"`
	Year     int    `json:"year"`
}

// AuthCodeData contains data for the sign-in code email
type AuthCodeData struct {
	EmailTemplateData
	Code          string `json:"code"`
	ExpiryMinutes int    `json:"expiry_minutes"`
}

// ContactNotificationData contains data for the support mailbox notification
type ContactNotificationData struct {
	EmailTemplateData
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// OrderConfirmationData contains data for order confirmation email
type OrderConfirmationData struct {
	EmailTemplateData
	UserEmail       string      `json:"user_email"`
	OrderNumber     string      `json:"order_number"`
	OrderDate       string      `json:"order_date"`
	OrderTotal      string      `json:"order_total"`
	Items           []OrderItem `json:"items"`
	ShippingAddress string      `json:"shipping_address"`
	PaymentMethod   string      `json:"payment_method"`
}

// OrderItem represents an item in the order
type OrderItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
	Total    string `json:"total"`
}

// GetBaseTemplateData returns common template data
func GetBaseTemplateData(siteName, siteURL string) EmailTemplateData {
	return EmailTemplateData{
		SiteName: siteName,
		SiteURL:  siteURL,
		Year:     time.Now().Year(),
	}
}
