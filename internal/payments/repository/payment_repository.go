package repository

import (
	"context"
	"fmt"

	"github.com/hoai-tn/pre-loved--services/internal/payments/domain"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type PaymentRepository interface {
	CreatePayment(ctx context.Context, tx pgx.Tx, payment *domain.Payment) error
}

type paymentRepo struct {
	logger *zap.Logger
	tracer trace.Tracer
}

func NewPaymentRepository(logger *zap.Logger) PaymentRepository {
	return &paymentRepo{
		logger: logger,
		tracer: otel.Tracer("payment_repository"),
	}
}

func (r *paymentRepo) CreatePayment(ctx context.Context, tx pgx.Tx, payment *domain.Payment) error {
	ctx, span := r.tracer.Start(ctx, "PaymentRepository.CreatePayment")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("order_id", payment.OrderID),
		attribute.Int64("amount", payment.Amount),
	)

	query := `
		INSERT INTO payments (order_id, user_id, amount, status, transaction_id, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err := tx.QueryRow(
		ctx,
		query,
		payment.OrderID,
		payment.UserID,
		payment.Amount,
		string(payment.Status),
		payment.TransactionID,
	).Scan(&payment.ID, &payment.CreatedAt)
	if err != nil {
		span.RecordError(err)

		return fmt.Errorf("failed to insert payment: %w", err)
	}

	return nil
}
