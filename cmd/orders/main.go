package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hoai-tn/pre-loved--services/internal/orders/client"
	"github.com/hoai-tn/pre-loved--services/internal/orders/repository"
	"github.com/hoai-tn/pre-loved--services/internal/orders/service"
	orderHttp "github.com/hoai-tn/pre-loved--services/internal/orders/transport/http"
	"github.com/hoai-tn/pre-loved--services/pkg/config"
	"github.com/hoai-tn/pre-loved--services/pkg/db"
	pkgKafka "github.com/hoai-tn/pre-loved--services/pkg/kafka"
	"github.com/hoai-tn/pre-loved--services/pkg/mylogger"
	outboxRepository "github.com/hoai-tn/pre-loved--services/pkg/outbox/repository"
	"github.com/hoai-tn/pre-loved--services/pkg/outbox/worker"
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

	cfg := config.MustLoad("./config/orders/local.yaml")

	tp, err := telemetry.InitTracer(ctx, "orders-service")
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

	orderRepo := repository.NewOrderRepository(pool, logger)
	outboxRepo := outboxRepository.NewOutboxRepository(pool, logger)

	inventoryClient := client.NewInventoryClient(cfg.Services.InventoryURL, cfg.Checkout.OracleTimeout)
	productClient := client.NewProductClient(cfg.Services.ProductURL, cfg.Checkout.OracleTimeout)

	orderService := service.NewOrderService(
		pool,
		logger,
		orderRepo,
		outboxRepo,
		inventoryClient,
		productClient,
		cfg.Checkout.MaxConcurrency,
	)
	orderHandler := orderHttp.NewOrderHandler(orderService, logger)

	kafkaProducer, err := pkgKafka.NewProducer(cfg.Kafka.Brokers)
	if err != nil {
		log.Fatalf("error creating kafka producer: %v", err)
	}

	outboxProcessor := worker.NewOutboxProcessor(pool, outboxRepo, kafkaProducer, logger)

	go outboxProcessor.Start(ctx)

	app := fiber.New(fiber.Config{
		ReadTimeout: cfg.HTTP.Timeout,
	})
	orderHttp.SetupRoutes(app, orderHandler)

	go func() {
		log.Printf("orders HTTP server listening on %s 🔥", cfg.HTTP.Port)
		if err := app.Listen(cfg.HTTP.Port); err != nil {
			log.Fatalf("error serving HTTP: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, exit := context.WithTimeout(context.Background(), time.Second*5)
	defer exit()

	mylogger.Info(
		shutdownCtx,
		logger,
		"Shutting down orders server",
	)

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		mylogger.Warn(
			shutdownCtx,
			logger,
			"Failed to shut down HTTP server",
			zap.Error(err),
		)
	}

	if err := kafkaProducer.Close(); err != nil {
		mylogger.Warn(
			shutdownCtx,
			logger,
			"Failed to close kafka producer",
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
