package service

import (
	"context"
	"errors"

	"github.com/hoai-tn/pre-loved--services/internal/inventory/domain"
	"github.com/hoai-tn/pre-loved--services/internal/inventory/repository"
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

type InventoryService interface {
	CheckStock(ctx context.Context, productID int64, quantity int32) (*domain.StockCheckResult, error)
	CreateInventory(ctx context.Context, inv *domain.Inventory) error
	HandleOrderCreated(ctx context.Context, event *generalDomain.OrderCreatedEvent) error
}

type inventoryService struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
	repo   repository.InventoryRepository
	tracer trace.Tracer
}

func NewInventoryService(pool *pgxpool.Pool, logger *zap.Logger, repo repository.InventoryRepository) InventoryService {
	return &inventoryService{
		pool:   pool,
		logger: logger,
		repo:   repo,
		tracer: otel.Tracer("inventory_service"),
	}
}

// CheckStock is the stock oracle: a transient availability read with no
// reservation. An unknown product answers available=false instead of
// failing the call.
func (s *inventoryService) CheckStock(ctx context.Context, productID int64, quantity int32) (*domain.StockCheckResult, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.CheckStock")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("product_id", productID),
		attribute.Int("quantity", int(quantity)),
	)

	inv, err := s.repo.FindByProductID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrInventoryNotFound) {
			return &domain.StockCheckResult{
				ProductID:         productID,
				SKU:               "",
				Available:         false,
				AvailableStock:    0,
				RequestedQuantity: quantity,
			}, nil
		}

		return nil, err
	}

	return &domain.StockCheckResult{
		ProductID:         productID,
		SKU:               inv.SKU,
		Available:         inv.AvailableStock >= int64(quantity),
		AvailableStock:    inv.AvailableStock,
		RequestedQuantity: quantity,
	}, nil
}

func (s *inventoryService) CreateInventory(ctx context.Context, inv *domain.Inventory) error {
	ctx, span := s.tracer.Start(ctx, "InventoryService.CreateInventory")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("product_id", inv.ProductID),
	)

	return s.repo.Create(ctx, inv)
}

// HandleOrderCreated decrements stock for every item of a committed order.
// Delivery is at-least-once, so the whole effect runs inside a
// deduplication transaction keyed on the event id; a redelivered event is
// acknowledged without decrementing again.
func (s *inventoryService) HandleOrderCreated(ctx context.Context, event *generalDomain.OrderCreatedEvent) error {
	ctx, span := s.tracer.Start(ctx, "InventoryService.HandleOrderCreated")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("order_id", event.Order.ID),
		attribute.Int64("event_id", event.EventID),
	)

	return dedup.ProcessWithDeduplication(ctx, s.pool, s.logger, event.EventID, func(tx pgx.Tx) error {
		for _, item := range event.OrderItems {
			remaining, err := s.repo.DecreaseStock(ctx, tx, item.ProductID, item.Quantity)
			if err != nil {
				if errors.Is(err, repository.ErrInventoryNotFound) {
					mylogger.Warn(
						ctx,
						s.logger,
						"No inventory record for ordered product, skipping",
						zap.Int64("order_id", event.Order.ID),
						zap.Int64("product_id", item.ProductID),
					)

					continue
				}

				return err
			}

			if remaining == 0 {
				mylogger.Warn(
					ctx,
					s.logger,
					"Stock exhausted after decrement",
					zap.Int64("order_id", event.Order.ID),
					zap.Int64("product_id", item.ProductID),
				)
			}
		}

		mylogger.Info(
			ctx,
			s.logger,
			"Stock decremented for order",
			zap.Int64("order_id", event.Order.ID),
			zap.Int("items", len(event.OrderItems)),
		)

		return nil
	})
}
