package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/hoai-tn/pre-loved--services/internal/rewards/repository"
	"github.com/hoai-tn/pre-loved--services/internal/rewards/service"
	rewardsKafka "github.com/hoai-tn/pre-loved--services/internal/rewards/transport/kafka"
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

	cfg := config.MustLoad("./config/rewards/local.yaml")

	tp, err := telemetry.InitTracer(ctx, "rewards-service")
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

	rewardRepo := repository.NewRewardRepository(logger)
	rewardService := service.NewRewardService(pool, logger, rewardRepo)

	consumer := rewardsKafka.NewConsumer(rewardService, logger)
	consumer.Start(ctx, cfg.Kafka.Brokers)

	<-ctx.Done()

	shutdownCtx, exit := context.WithTimeout(context.Background(), time.Second*5)
	defer exit()

	mylogger.Info(
		shutdownCtx,
		logger,
		"Shutting down rewards consumer",
	)

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
