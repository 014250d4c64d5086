package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"fashion-cart/internal/client"
	"fashion-cart/internal/config"
	"fashion-cart/internal/logger"
	"fashion-cart/internal/metrics"
	"fashion-cart/internal/notification"
	"fashion-cart/internal/repository"
	"fashion-cart/internal/server"
	"fashion-cart/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log, cfg.Environment.Name)
	ctx := context.Background()

	db, err := client.InitDBClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("init database")
	}

	cache, err := client.NewCache(ctx, &cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("init cache")
	}
	images, err := client.NewImageStore(&cfg.Cloudinary)
	if err != nil {
		log.Fatal().Err(err).Msg("init image store")
	}
	events := client.NewEventPublisher(&cfg.Kafka)
	defer events.Close()

	paypalClient := client.NewPaypalClient(&cfg.Paypal)
	braintreeClient := client.NewBraintreeClient(&cfg.BrainTree)
	mailer := client.NewMailer(&cfg.SMTP)

	if !cfg.SMTP.Enabled() {
		log.Warn().Msg("SMTP not configured, order emails are disabled")
	}
	if !cfg.Cloudinary.Enabled() {
		log.Warn().Msg("Cloudinary not configured, image uploads are disabled")
	}

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	addressRepo := repository.NewAddressRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	bannerRepo := repository.NewBannerRepository(db)
	webhookEventRepo := repository.NewWebhookEventRepository(db)

	m := metrics.New()
	tokens := service.NewTokenManager(&cfg.JWT)
	notifier := notification.NewNotifier(mailer, cfg.SMTP.AdminEmail, log)

	services := server.Services{
		Tokens:  tokens,
		Auth:    service.NewAuthService(userRepo, tokens),
		Product: service.NewProductService(productRepo, images, cache, log),
		Cart:    service.NewCartService(cartRepo, productRepo, log),
		Address: service.NewAddressService(db, addressRepo),
		Coupon:  service.NewCouponService(couponRepo),
		Order: service.NewOrderService(
			db,
			orderRepo,
			productRepo,
			couponRepo,
			cartRepo,
			addressRepo,
			userRepo,
			braintreeClient,
			notifier,
			events,
			cache,
			m,
			log,
		),
		Paypal: service.NewPaypalService(
			db,
			paypalClient, cfg.Paypal.Environment,
			productRepo,
			orderRepo,
			webhookEventRepo,
			m,
			log,
		),
		Review:   service.NewReviewService(db, reviewRepo, productRepo, userRepo, cache, log),
		Settings: service.NewSettingsService(bannerRepo, productRepo, images, cache, log),
	}

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	// Init HTTP server
	srv := server.NewServer(cfg, log, m, services)

	log.Info().Str("addr", serverAddr).Msg("Starting HTTP server")
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info().Msg("Signal received, starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}
}
