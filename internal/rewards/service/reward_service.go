package service

import (
	"context"

	"github.com/hoai-tn/pre-loved--services/internal/rewards/domain"
	"github.com/hoai-tn/pre-loved--services/internal/rewards/repository"
	"github.com/hoai-tn/pre-loved--services/pkg/dedup"
	generalDomain "github.com/hoai-tn/pre-loved--services/pkg/domain"
	"github.com/hoai-tn/pre-loved--services/pkg/mylogger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type RewardService interface {
	HandleOrderCreated(ctx context.Context, event *generalDomain.OrderCreatedEvent) error
}

type rewardService struct {
	pool       *pgxpool.Pool
	logger     *zap.Logger
	rewardRepo repository.RewardRepository
	tracer     trace.Tracer
}

func NewRewardService(pool *pgxpool.Pool, logger *zap.Logger, rewardRepo repository.RewardRepository) RewardService {
	return &rewardService{
		pool:       pool,
		logger:     logger,
		rewardRepo: rewardRepo,
		tracer:     otel.Tracer("reward_service"),
	}
}

// HandleOrderCreated accrues loyalty points for the order's user. Accrual and
// the idempotency record commit in one transaction, so redeliveries never
// credit the same order twice.
func (s *rewardService) HandleOrderCreated(ctx context.Context, event *generalDomain.OrderCreatedEvent) error {
	ctx, span := s.tracer.Start(ctx, "RewardService.HandleOrderCreated")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("order_id", event.Order.ID),
		attribute.Int64("event_id", event.EventID),
	)

	return dedup.ProcessWithDeduplication(ctx, s.pool, s.logger, event.EventID, func(tx pgx.Tx) error {
		reward := &domain.Reward{
			UserID:  event.Order.UserID,
			OrderID: event.Order.ID,
			Points:  domain.PointsForTotal(event.Order.Total),
		}

		if err := s.rewardRepo.CreateReward(ctx, tx, reward); err != nil {
			return err
		}

		balance, err := s.rewardRepo.GetPointsBalance(ctx, tx, reward.UserID)
		if err != nil {
			return err
		}

		mylogger.Info(
			ctx,
			s.logger,
			"Reward points accrued",
			zap.Int64("order_id", reward.OrderID),
			zap.Int64("user_id", reward.UserID),
			zap.Int64("points", reward.Points),
			zap.Int64("balance", balance),
		)

		return nil
	})
}
