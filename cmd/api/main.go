package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"storefront/internal/client"
	"storefront/internal/config"
	"storefront/internal/repository"
	"storefront/internal/server"
	"storefront/internal/service"
	"storefront/internal/store"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to parse config")
	}

	logger := newLogger(&cfg.Log)

	redisClient, err := client.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to order store")
	}
	defer redisClient.Close()

	catalogDB, err := client.InitCatalogDB(cfg.Catalog.DBPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open catalog database")
	}

	stripeClient := client.NewStripeClient(&cfg.Stripe)

	orderRepo := repository.NewOrderRepository(store.NewRedisKV(redisClient), logger)
	productRepo := repository.NewProductRepository(catalogDB)
	webhookEventRepo := repository.NewWebhookEventRepository(catalogDB)

	if err := productRepo.SeedDefaults(context.Background()); err != nil {
		logger.WithError(err).Fatal("Failed to seed product catalog")
	}

	orderService := service.NewOrderService(orderRepo)
	checkoutService := service.NewCheckoutService(
		stripeClient,
		orderService,
		orderRepo,
		webhookEventRepo,
		cfg.BaseURL,
		cfg.CheckoutCurrency,
		logger,
	)
	adminService := service.NewAdminService(cfg.Admin.Password, orderService)

	srv := server.NewServer(orderService, checkoutService, adminService, productRepo, logger)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	logger.WithField("addr", serverAddr).Info("Starting HTTP server")
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	logger.Info("Signal received, starting graceful shutdown...")

	_, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(); err != nil {
		logger.WithError(err).Fatal("HTTP server shutdown error")
	}
}

func newLogger(logCfg *config.Log) *logrus.Logger {
	logger := logrus.New()

	if logCfg.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(logCfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}
