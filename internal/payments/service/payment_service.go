package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/hoai-tn/pre-loved--services/internal/payments/domain"
	"github.com/hoai-tn/pre-loved--services/internal/payments/repository"
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

type PaymentService interface {
	HandleOrderCreated(ctx context.Context, event *generalDomain.OrderCreatedEvent) error
}

type paymentService struct {
	pool        *pgxpool.Pool
	logger      *zap.Logger
	paymentRepo repository.PaymentRepository
	tracer      trace.Tracer
}

func NewPaymentService(pool *pgxpool.Pool, logger *zap.Logger, paymentRepo repository.PaymentRepository) PaymentService {
	return &paymentService{
		pool:        pool,
		logger:      logger,
		paymentRepo: paymentRepo,
		tracer:      otel.Tracer("payment_service"),
	}
}

// HandleOrderCreated captures the payment for a committed order. The
// capture runs inside a deduplication transaction keyed on the event id, so
// a redelivered event never charges twice.
func (s *paymentService) HandleOrderCreated(ctx context.Context, event *generalDomain.OrderCreatedEvent) error {
	ctx, span := s.tracer.Start(ctx, "PaymentService.HandleOrderCreated")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("order_id", event.Order.ID),
		attribute.Int64("event_id", event.EventID),
	)

	return dedup.ProcessWithDeduplication(ctx, s.pool, s.logger, event.EventID, func(tx pgx.Tx) error {
		payment := &domain.Payment{
			OrderID:       event.Order.ID,
			UserID:        event.Order.UserID,
			Amount:        event.Order.Total,
			Status:        domain.PaymentStatusCaptured,
			TransactionID: uuid.New().String(),
		}

		if err := s.paymentRepo.CreatePayment(ctx, tx, payment); err != nil {
			return err
		}

		mylogger.Info(
			ctx,
			s.logger,
			"Payment captured",
			zap.Int64("order_id", event.Order.ID),
			zap.Int64("payment_id", payment.ID),
			zap.Int64("amount", payment.Amount),
			zap.String("transaction_id", payment.TransactionID),
		)

		return nil
	})
}
