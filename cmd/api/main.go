package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eco-electric-api/internal/client"
	"eco-electric-api/internal/config"
	"eco-electric-api/internal/repository"
	"eco-electric-api/internal/server"
	"eco-electric-api/internal/service"
	"eco-electric-api/internal/token"

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

	db := client.InitSqliteClient(cfg.DatabasePath)
	stripeClient := client.NewStripeClient(&cfg.Stripe)
	issuer := token.NewIssuer(cfg.Token.Secret, cfg.Token.TTL)

	orderRepo := repository.NewOrderRepository(db)
	userRepo := repository.NewUserRepository(db)
	toolRepo := repository.NewToolRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	orderService := service.NewOrderService(orderRepo)
	userService := service.NewUserService(userRepo, issuer)
	paymentService := service.NewPaymentService(stripeClient, cfg.Stripe.Currency)
	catalogService := service.NewCatalogService(toolRepo, reviewRepo)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	// Init HTTP server
	srv := server.NewServer(orderService, userService, paymentService, catalogService, issuer, userRepo)

	log.Println("Starting HTTP server on", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Println("Signal received, starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("HTTP server shutdown error")
	}
}
