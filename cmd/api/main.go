// cmd/api/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/techempire/storefront/internal/config"
	"github.com/techempire/storefront/internal/domain/build"
	"github.com/techempire/storefront/internal/domain/cart"
	"github.com/techempire/storefront/internal/domain/catalog"
	"github.com/techempire/storefront/internal/domain/contact"
	"github.com/techempire/storefront/internal/domain/order"
	"github.com/techempire/storefront/internal/domain/user"
	"github.com/techempire/storefront/internal/infrastructure/database/postgres"
	"github.com/techempire/storefront/internal/infrastructure/database/redis"
	"github.com/techempire/storefront/internal/interfaces/http"
	"github.com/techempire/storefront/internal/interfaces/http/handlers"
	"github.com/techempire/storefront/internal/interfaces/http/routes"
	"github.com/techempire/storefront/internal/pkg/auth"
	"github.com/techempire/storefront/internal/pkg/email"
	"github.com/techempire/storefront/internal/pkg/logger"
	"github.com/techempire/storefront/internal/pkg/pdf"
)

// codePurgeInterval is how often spent and expired sign-in codes are deleted
const codePurgeInterval = time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	log := logger.New(cfg)
	log.WithFields(logrus.Fields{
		"app":         cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	}).Info("starting")

	db, err := postgres.NewConnection(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	redisClient, err := redis.NewConnection(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to Redis")
	}
	defer redisClient.Close()

	migration := postgres.NewMigration(db.GetDB(), log)
	if err := migration.RunAutoMigrations(); err != nil {
		log.WithError(err).Fatal("database migration failed")
	}
	if err := migration.CreateIndexes(); err != nil {
		log.WithError(err).Warn("index creation failed")
	}
	if cfg.IsDevelopment() {
		if err := migration.SeedInitialData(); err != nil {
			log.WithError(err).Warn("data seeding failed")
		}
	}

	mailer, err := email.NewEmailService(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialise email service")
	}
	pdfService := pdf.NewService(cfg)
	jwtManager := auth.NewJWTManager(cfg)

	// Repositories
	productRepo := catalog.NewGormRepository(db.GetDB())
	userRepo := user.NewGormRepository(db.GetDB())
	orderRepo := order.NewGormRepository(db.GetDB())
	contactRepo := contact.NewGormRepository(db.GetDB())
	buildRepo := build.NewGormRepository(db.GetDB())

	// Services
	rdb := redisClient.GetClient()
	catalogService := catalog.NewService(productRepo, log)
	cartService := cart.NewService(catalogService, redis.CartStores(rdb, cfg.Session.CartTTL), log)
	buildService := build.NewService(catalogService, redis.BuildStores(rdb, cfg.Session.BuildTTL), cartService, buildRepo, pdfService, log)
	userService := user.NewService(userRepo, auth.NewCodeManager(cfg), jwtManager, mailer, cfg, log)
	orderService := order.NewService(orderRepo, cartService, catalogService, mailer, pdfService, log)
	contactService := contact.NewService(contactRepo, mailer, log)

	sessions := handlers.NewSessions(cfg)
	server := http.NewServer(cfg, http.Dependencies{
		Handlers: &routes.Handlers{
			Product: handlers.NewProductHandler(catalogService, log),
			Cart:    handlers.NewCartHandler(cartService, sessions, log),
			Build:   handlers.NewBuildHandler(buildService, sessions, log),
			Contact: handlers.NewContactHandler(contactService, log),
			Auth:    handlers.NewAuthHandler(userService, log),
			Order:   handlers.NewOrderHandler(orderService, sessions, log),
			Admin:   handlers.NewAdminHandler(catalogService, orderService, contactService, log),
		},
		Tokens:      jwtManager,
		RateLimiter: redis.NewRateLimiter(rdb, cfg.Security.RateLimitPerMinute, time.Minute),
		Checks: map[string]http.HealthChecker{
			"database": db,
			"redis":    redisClient,
		},
	}, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go purgeCodes(ctx, userRepo, log)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("failed to start HTTP server")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		log.WithError(err).Error("failed to shutdown HTTP server gracefully")
	}

	log.Info("server shutdown completed")
}

func purgeCodes(ctx context.Context, repo *user.GormRepository, log logrus.FieldLogger) {
	ticker := time.NewTicker(codePurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.PurgeExpiredCodes(ctx, time.Now().UTC())
			if err != nil {
				log.WithError(err).Warn("failed to purge auth codes")
				continue
			}
			if n > 0 {
				log.WithField("deleted", n).Info("purged auth codes")
			}
		}
	}
}
