package email

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techempire/storefront/internal/config"
	"github.com/techempire/storefront/internal/pkg/logger"
)

func newTestService(t *testing.T) (*EmailService, *[]*Email) {
	t.Helper()
	cfg := &config.Config{
		App: config.AppConfig{Name: "TechEmpire", BaseURL: "https://techempire.ru", Environment: "production"},
		Email: config.EmailConfig{
			FromEmail:    "noreply@techempire.ru",
			FromName:     "TechEmpire",
			SupportEmail: "support@techempire.ru",
			SMTPHost:     "smtp.example.com",
			SMTPPort:     587,
		},
	}

	svc, err := NewEmailService(cfg, logger.Discard())
	require.NoError(t, err)

	var sent []*Email
	svc.transport = func(e *Email) error {
		sent = append(sent, e)
		return nil
	}
	return svc, &sent
}

func TestSendAuthCode(t *testing.T) {
	svc, sent := newTestService(t)

	require.NoError(t, svc.SendAuthCode(context.Background(), "ivan@example.ru", "042137", 10))

	require.Len(t, *sent, 1)
	e := (*sent)[0]
	assert.Equal(t, []string{"ivan@example.ru"}, e.To)
	assert.Equal(t, "Код авторизации TechEmpire", e.Subject)
	assert.Equal(t, EmailTypeAuthCode, e.Type)
	assert.Contains(t, e.HTMLContent, "042137")
	assert.Contains(t, e.HTMLContent, "10 минут")
}

func TestSendContactNotificationEscapesInput(t *testing.T) {
	svc, sent := newTestService(t)

	err := svc.SendContactNotification(context.Background(), ContactNotificationData{
		Name:    "Пётр",
		Email:   "petr@example.ru",
		Subject: "Сборка",
		Message: "<script>alert(1)</script>",
	})
	require.NoError(t, err)

	require.Len(t, *sent, 1)
	e := (*sent)[0]
	assert.Equal(t, []string{"support@techempire.ru"}, e.To)
	assert.Equal(t, "petr@example.ru", e.ReplyTo)
	assert.Equal(t, "Новое обращение с сайта: Сборка", e.Subject)
	assert.NotContains(t, e.HTMLContent, "<script>")
	assert.Contains(t, e.HTMLContent, "Пётр")
}

func TestSendEmailValidation(t *testing.T) {
	svc, _ := newTestService(t)

	assert.Error(t, svc.SendEmail(context.Background(), &Email{Subject: "x"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, svc.SendEmail(ctx, &Email{To: []string{"a@b.ru"}}), context.Canceled)
}

func TestBuildMessage(t *testing.T) {
	svc, _ := newTestService(t)

	msg := string(svc.buildMessage(&Email{
		To:          []string{"a@b.ru", "c@d.ru"},
		ReplyTo:     "e@f.ru",
		Subject:     "Заказ",
		HTMLContent: "<p>hi</p>",
	}))

	assert.True(t, strings.HasPrefix(msg, "From: TechEmpire <noreply@techempire.ru>\r\n"))
	assert.Contains(t, msg, "To: a@b.ru, c@d.ru\r\n")
	assert.Contains(t, msg, "Subject: =?utf-8?q?")
	assert.Contains(t, msg, "Reply-To: e@f.ru\r\n")
	assert.True(t, strings.HasSuffix(msg, "\r\n\r\n<p>hi</p>"))
}

func TestDevelopmentLogsInsteadOfSending(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Name: "TechEmpire", Environment: "development"}}
	svc, err := NewEmailService(cfg, logger.Discard())
	require.NoError(t, err)

	assert.NoError(t, svc.SendAuthCode(context.Background(), "a@b.ru", "123456", 10))
}
