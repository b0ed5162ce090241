package repository

import (
	"context"
	"fmt"

	"github.com/hoai-tn/pre-loved--services/internal/rewards/domain"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type RewardRepository interface {
	CreateReward(ctx context.Context, tx pgx.Tx, reward *domain.Reward) error
	GetPointsBalance(ctx context.Context, tx pgx.Tx, userID int64) (int64, error)
}

type rewardRepo struct {
	logger *zap.Logger
	tracer trace.Tracer
}

func NewRewardRepository(logger *zap.Logger) RewardRepository {
	return &rewardRepo{
		logger: logger,
		tracer: otel.Tracer("reward_repository"),
	}
}

func (r *rewardRepo) CreateReward(ctx context.Context, tx pgx.Tx, reward *domain.Reward) error {
	ctx, span := r.tracer.Start(ctx, "RewardRepository.CreateReward")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("user_id", reward.UserID),
		attribute.Int64("points", reward.Points),
	)

	query := `
		INSERT INTO rewards (user_id, order_id, points, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`

	err := tx.QueryRow(
		ctx,
		query,
		reward.UserID,
		reward.OrderID,
		reward.Points,
	).Scan(&reward.ID, &reward.CreatedAt)
	if err != nil {
		span.RecordError(err)

		return fmt.Errorf("failed to insert reward: %w", err)
	}

	return nil
}

func (r *rewardRepo) GetPointsBalance(ctx context.Context, tx pgx.Tx, userID int64) (int64, error) {
	ctx, span := r.tracer.Start(ctx, "RewardRepository.GetPointsBalance")
	defer span.End()

	query := `SELECT COALESCE(SUM(points), 0) FROM rewards WHERE user_id = $1`

	var balance int64
	if err := tx.QueryRow(ctx, query, userID).Scan(&balance); err != nil {
		span.RecordError(err)

		return 0, fmt.Errorf("failed to sum reward points: %w", err)
	}

	return balance, nil
}
