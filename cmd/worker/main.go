package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"trackd/internal/infrastructure/config"
	"trackd/internal/infrastructure/database"
	"trackd/internal/infrastructure/repository"
	"trackd/internal/infrastructure/webhook"
	"trackd/internal/shared/logger"
)

func main() {
	// Parse environment from command line or env variable
	env := "development"
	if len(os.Args) > 1 {
		env = os.Args[1]
	}
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger()
	log.Infow("starting webhook delivery worker", "environment", env)

	if err := database.Init(&cfg.Database); err != nil {
		log.Errorw("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	deliveryRepo := repository.NewWebhookDeliveryRepository(database.Get())
	subscriptionRepo := repository.NewWebhookSubscriptionRepository(database.Get())

	deliverer := webhook.NewDeliverer(deliveryRepo, subscriptionRepo, cfg.Webhook, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Infow("received shutdown signal", "signal", sig.String())
		cancel()
	}()

	deliverer.Start(ctx)

	log.Infow("webhook delivery worker stopped")
}
