package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"storefront-backend/internal/client"
	"storefront-backend/internal/config"
	"storefront-backend/internal/repository"
	"storefront-backend/internal/server"
	"storefront-backend/internal/service"
	"storefront-backend/internal/telemetry"
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

	telemetry.InitLogger(cfg.Log)

	db := client.InitMysqlClient(cfg.DatabaseURL)
	stripeClient := client.NewStripeClient(&cfg.Stripe)

	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	webhookEventRepo := repository.NewWebhookEventRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	productRepo := repository.NewProductRepository(db)
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)

	checkoutService := service.NewCheckoutService(db, stripeClient, orderRepo, paymentRepo, webhookEventRepo)
	orderService := service.NewOrderService(db, orderRepo, paymentRepo)
	couponService := service.NewCouponService(couponRepo)
	productService := service.NewProductService(productRepo)
	userService := service.NewUserService(cfg.Auth, userRepo, roleRepo)
	roleService := service.NewRoleService(roleRepo)

	srv := server.NewServer(
		cfg.Auth,
		roleRepo,
		checkoutService,
		orderService,
		couponService,
		productService,
		userService,
		roleService,
	)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	slog.Info("starting HTTP server", "addr", serverAddr, "environment", cfg.Environment.Name)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	slog.Info("signal received, starting graceful shutdown")

	if err := srv.Shutdown(); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
		os.Exit(1)
	}
}
