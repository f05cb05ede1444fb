// cmd/mailcheck/main.go sends one test message through the configured
// mail transport.
package main

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/techempire/storefront/internal/config"
	"github.com/techempire/storefront/internal/pkg/email"
	"github.com/techempire/storefront/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}
	log := logger.New(cfg)

	to := cfg.Email.SupportEmail
	if len(os.Args) > 1 {
		to = os.Args[1]
	}
	if to == "" {
		log.Fatal("usage: mailcheck <recipient>")
	}

	emailService, err := email.NewEmailService(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialise email service")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// A dummy code exercises the same template and transport as real sign-ins
	if err := emailService.SendAuthCode(ctx, to, "000000", 10); err != nil {
		log.WithError(err).Fatal("send failed")
	}

	log.WithFields(logrus.Fields{
		"to":   to,
		"host": cfg.Email.SMTPHost,
	}).Info("test email sent")
}
