package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/config"
	"storefront/internal/repositories"
	"storefront/internal/server"
	"storefront/internal/services"
	"storefront/pkg/rabbitmq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// --- Catalog ---
	productRepo, err := repositories.NewProductRepository(cfg.CatalogDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to initialize %s catalog: %v", cfg.CatalogDriver, err)
	}
	if err := repositories.SeedProducts(productRepo, repositories.SampleProducts()); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	// --- Order events (optional) ---
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		publisher = mqClient

		if err := mqClient.ConsumeOrderEvents(rabbitmq.LogOrderEvent); err != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", err)
		}
	} else {
		log.Println("RABBITMQ_URL not set, order events disabled")
	}

	// --- Services ---
	productService := services.NewProductService(productRepo)
	sessions := services.NewSessionManager(services.SessionConfig{
		JWTSecret:       cfg.JWTSecret,
		TTL:             cfg.SessionTTL,
		CleanupInterval: cfg.CleanupInterval,
		DefaultMaxPrice: cfg.DefaultMaxPrice,
	}, repositories.NewMemoryUserRepository(), publisher)
	defer sessions.Close()

	app := server.New(server.Dependencies{
		Products:        productService,
		Sessions:        sessions,
		DefaultMaxPrice: cfg.DefaultMaxPrice,
		EventsEnabled:   publisher != nil,
		RequestLogging:  true,
	})

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
