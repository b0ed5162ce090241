package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hoai-tn/pre-loved--services/internal/inventory/repository"
	"github.com/hoai-tn/pre-loved--services/internal/inventory/service"
	inventoryHttp "github.com/hoai-tn/pre-loved--services/internal/inventory/transport/http"
	inventoryKafka "github.com/hoai-tn/pre-loved--services/internal/inventory/transport/kafka"
	"github.com/hoai-tn/pre-loved--services/pkg/config"
	"github.com/hoai-tn/pre-loved--services/pkg/db"
	"github.com/hoai-tn/pre-loved--services/pkg/mylogger"
	"github.com/hoai-tn/pre-loved--services/pkg/telemetry"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env loaded: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad("./config/inventory/local.yaml")

	tp, err := telemetry.InitTracer(ctx, "inventory-service")
	if err != nil {
		log.Fatalf("failed to init tracer: %v", err)
	}

	pool, err := db.NewPostgresDB(cfg.Postgres.URL)
	if err != nil {
		log.Fatalf("failed to create pool: %v", err)
	}

	logger, err := config.NewLogger(config.LoggerConfig{
		Level: "info",
		Env:   cfg.Env,
	})
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	inventoryRepo := repository.NewInventoryRepository(pool, logger)
	inventoryService := service.NewInventoryService(pool, logger, inventoryRepo)
	inventoryHandler := inventoryHttp.NewInventoryHandler(inventoryService, logger)

	app := fiber.New(fiber.Config{
		ReadTimeout: cfg.HTTP.Timeout,
	})
	inventoryHttp.SetupRoutes(app, inventoryHandler)

	go func() {
		log.Printf("inventory HTTP server listening on %s 🔥", cfg.HTTP.Port)
		if err := app.Listen(cfg.HTTP.Port); err != nil {
			log.Fatalf("error serving HTTP: %v", err)
		}
	}()

	consumer := inventoryKafka.NewConsumer(inventoryService, logger)
	consumer.Start(ctx, cfg.Kafka.Brokers)

	<-ctx.Done()

	shutdownCtx, exit := context.WithTimeout(context.Background(), time.Second*5)
	defer exit()

	mylogger.Info(
		shutdownCtx,
		logger,
		"Shutting down inventory server",
	)

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		mylogger.Warn(
			shutdownCtx,
			logger,
			"Failed to shut down HTTP server",
			zap.Error(err),
		)
	}

	if err := tp.Shutdown(shutdownCtx); err != nil {
		mylogger.Warn(
			shutdownCtx,
			logger,
			"Failed to shut down telemetry",
			zap.Error(err),
		)
	}

	pool.Close()
}
