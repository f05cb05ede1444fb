// internal/pkg/email/service.go
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/sirupsen/logrus"
	"github.com/techempire/storefront/internal/config"
)

// EmailService handles all email operations
type EmailService struct {
	config    *config.Config
	logger    logrus.FieldLogger
	templates map[string]*template.Template
	transport func(email *Email) error
}

// NewEmailService creates a new email service. Without an SMTP host, or in
// development, messages are written to the log instead of being sent.
func NewEmailService(cfg *config.Config, logger logrus.FieldLogger) (*EmailService, error) {
	service := &EmailService{
		config:    cfg,
		logger:    logger.WithField("component", "email"),
		templates: make(map[string]*template.Template),
	}

	for name, body := range builtinTemplates {
		tmpl, err := template.New(name).Parse(body)
		if err != nil {
			return nil, fmt.Errorf("failed to parse email template %s: %w", name, err)
		}
		service.templates[name] = tmpl
	}

	if cfg.IsDevelopment() || cfg.Email.SMTPHost == "" {
		service.transport = service.logEmail
	} else {
		service.transport = service.sendSMTPEmail
	}

	return service, nil
}

// SendEmail sends an email using the configured transport
func (s *EmailService) SendEmail(ctx context.Context, email *Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(email.To) == 0 {
		return fmt.Errorf("email has no recipients")
	}
	return s.transport(email)
}

// SendAuthCode sends a sign-in code
func (s *EmailService) SendAuthCode(ctx context.Context, to, code string, expiryMinutes int) error {
	data := AuthCodeData{
		EmailTemplateData: s.baseData(),
		Code:              code,
		ExpiryMinutes:     expiryMinutes,
	}

	htmlContent, err := s.renderTemplate("auth_code", data)
	if err != nil {
		return fmt.Errorf("failed to render auth code template: %w", err)
	}

	return s.SendEmail(ctx, &Email{
		To:          []string{to},
		Subject:     fmt.Sprintf("Код авторизации %s", s.config.App.Name),
		HTMLContent: htmlContent,
		Type:        EmailTypeAuthCode,
	})
}

// SendContactNotification forwards a contact form submission to support
func (s *EmailService) SendContactNotification(ctx context.Context, data ContactNotificationData) error {
	data.EmailTemplateData = s.baseData()

	htmlContent, err := s.renderTemplate("contact_notification", data)
	if err != nil {
		return fmt.Errorf("failed to render contact notification template: %w", err)
	}

	subject := "Новое обращение с сайта"
	if data.Subject != "" {
		subject = fmt.Sprintf("%s: %s", subject, data.Subject)
	}

	return s.SendEmail(ctx, &Email{
		To:          []string{s.config.Email.SupportEmail},
		ReplyTo:     data.Email,
		Subject:     subject,
		HTMLContent: htmlContent,
		Type:        EmailTypeContactNotification,
	})
}

// SendOrderConfirmation sends order confirmation email
func (s *EmailService) SendOrderConfirmation(ctx context.Context, data OrderConfirmationData) error {
	data.EmailTemplateData = s.baseData()

	htmlContent, err := s.renderTemplate("order_confirmation", data)
	if err != nil {
		return fmt.Errorf("failed to render order confirmation template: %w", err)
	}

	return s.SendEmail(ctx, &Email{
		To:          []string{data.UserEmail},
		Subject:     fmt.Sprintf("Заказ %s оформлен", data.OrderNumber),
		HTMLContent: htmlContent,
		Type:        EmailTypeOrderConfirmation,
	})
}

func (s *EmailService) baseData() EmailTemplateData {
	return GetBaseTemplateData(s.config.App.Name, s.config.App.BaseURL)
}

// renderTemplate renders an email template with data
func (s *EmailService) renderTemplate(templateName string, data interface{}) (string, error) {
	tmpl, exists := s.templates[templateName]
	if !exists {
		return "", fmt.Errorf("template %s not found", templateName)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}

	return buf.String(), nil
}

func (s *EmailService) logEmail(email *Email) error {
	s.logger.WithFields(logrus.Fields{
		"to":      email.To,
		"subject": email.Subject,
		"type":    email.Type,
	}).Info("email not sent, logging instead")
	s.logger.Debug(email.HTMLContent)
	return nil
}

const layoutHead = `<!DOCTYPE html>
<html lang="ru">
<head>
    <meta charset="UTF-8">
    <title>{{.SiteName}}</title>
</head>
<body style="font-family: Arial, sans-serif; margin: 0; padding: 20px; background-color: #f4f4f4;">
    <div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 20px; border-radius: 8px;">
        <h1 style="color: #2563eb;">{{.SiteName}}</h1>
`

const layoutFoot = `
        <hr>
        <p style="font-size: 12px; color: #666;">© {{.Year}} {{.SiteName}}. <a href="{{.SiteURL}}">{{.SiteURL}}</a></p>
    </div>
</body>
</html>`

var builtinTemplates = map[string]string{
	"auth_code": layoutHead + `
        <p>Ваш код для входа:</p>
        <p style="font-size: 32px; font-weight: bold; letter-spacing: 6px;">{{.Code}}</p>
        <p>Код действителен {{.ExpiryMinutes}} минут.</p>
        <p>Если вы не запрашивали код, просто проигнорируйте это письмо.</p>
` + layoutFoot,

	"contact_notification": layoutHead + `
        <h2>Новое обращение</h2>
        <p><strong>Имя:</strong> {{.Name}}</p>
        <p><strong>Email:</strong> {{.Email}}</p>
        {{if .Subject}}<p><strong>Тема:</strong> {{.Subject}}</p>{{end}}
        <p><strong>Сообщение:</strong></p>
        <p style="white-space: pre-wrap;">{{.Message}}</p>
` + layoutFoot,

	"order_confirmation": layoutHead + `
        <h2>Спасибо за заказ!</h2>
        <p>Заказ <strong>{{.OrderNumber}}</strong> от {{.OrderDate}} принят в обработку.</p>
        <table style="width: 100%; border-collapse: collapse;">
            <tr><th align="left">Товар</th><th align="right">Кол-во</th><th align="right">Сумма</th></tr>
            {{range .Items}}
            <tr><td>{{.Name}}</td><td align="right">{{.Quantity}}</td><td align="right">{{.Total}}</td></tr>
            {{end}}
        </table>
        <p><strong>Итого:</strong> {{.OrderTotal}}</p>
        {{if .ShippingAddress}}<p><strong>Адрес доставки:</strong> {{.ShippingAddress}}</p>{{end}}
        {{if .PaymentMethod}}<p><strong>Способ оплаты:</strong> {{.PaymentMethod}}</p>{{end}}
` + layoutFoot,
}
