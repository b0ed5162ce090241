package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hoai-tn/pre-loved--services/internal/orders/domain"
	"github.com/hoai-tn/pre-loved--services/internal/orders/repository"
	generalDomain "github.com/hoai-tn/pre-loved--services/pkg/domain"
	"github.com/hoai-tn/pre-loved--services/pkg/mylogger"
	outboxDomain "github.com/hoai-tn/pre-loved--services/pkg/outbox/domain"
	"github.com/hoai-tn/pre-loved--services/pkg/outbox/worker"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// InventoryClient answers stock availability for one product/quantity pair.
// The check is a transient read, not a reservation.
type InventoryClient interface {
	CheckStock(ctx context.Context, productID int64, quantity int32) (*domain.StockCheckResult, error)
}

// ProductClient looks up the authoritative unit price for one product.
type ProductClient interface {
	GetPrice(ctx context.Context, productID int64) (*domain.ProductPrice, error)
}

type OrderService interface {
	PlaceOrder(ctx context.Context, userID int64, items []domain.OrderItemRequest) (*domain.Order, error)
	GetOrdersByUser(ctx context.Context, userID int64) ([]domain.Order, error)
}

type orderService struct {
	pool           *pgxpool.Pool
	logger         *zap.Logger
	orderRepo      repository.OrderRepository
	outboxRepo     worker.OutboxRepository
	inventory      InventoryClient
	products       ProductClient
	maxConcurrency int
	tracer         trace.Tracer
}

func NewOrderService(
	pool *pgxpool.Pool,
	logger *zap.Logger,
	orderRepo repository.OrderRepository,
	outboxRepo worker.OutboxRepository,
	inventory InventoryClient,
	products ProductClient,
	maxConcurrency int,
) OrderService {
	if maxConcurrency <= 0 {
		maxConcurrency = 8
	}

	return &orderService{
		pool:           pool,
		logger:         logger,
		orderRepo:      orderRepo,
		outboxRepo:     outboxRepo,
		inventory:      inventory,
		products:       products,
		maxConcurrency: maxConcurrency,
		tracer:         otel.Tracer("order_service"),
	}
}

// PlaceOrder runs the whole placement flow: stock checks, price lookups,
// transactional persistence and the OrderCreated outbox write. Any failed
// phase aborts the call with nothing persisted and nothing published; the
// service never retries a leg on its own.
func (s *orderService) PlaceOrder(ctx context.Context, userID int64, items []domain.OrderItemRequest) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.PlaceOrder")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("user_id", userID),
		attribute.Int("items_count", len(items)),
	)

	if err := validateItems(userID, items); err != nil {
		return nil, err
	}

	if _, err := s.checkStock(ctx, items); err != nil {
		mylogger.Warn(
			ctx,
			s.logger,
			"Stock check rejected order",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)

		return nil, err
	}

	priced, err := s.priceItems(ctx, items)
	if err != nil {
		mylogger.Warn(
			ctx,
			s.logger,
			"Price lookup rejected order",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)

		return nil, err
	}

	order := &domain.Order{
		UserID: userID,
		Status: domain.OrderStatusPending,
		Items:  make([]domain.OrderItem, 0, len(priced)),
	}
	for _, p := range priced {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: p.ProductID,
			Quantity:  p.Quantity,
			Price:     p.LineTotal,
		})
	}
	order.CalculateTotal()

	// The transaction opens only after every oracle call has completed, so
	// no lock is held across a network round-trip.
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		shutdownCtx := context.WithoutCancel(ctx)
		err := tx.Rollback(shutdownCtx)

		if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			mylogger.Warn(
				shutdownCtx,
				s.logger,
				"Error rolling back transaction",
				zap.Error(err),
			)
		}
	}()

	if err := s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		mylogger.Error(
			ctx,
			s.logger,
			"Failed to create order",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)

		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err := s.emitOrderCreated(ctx, tx, order); err != nil {
		mylogger.Error(
			ctx,
			s.logger,
			"Failed to save outbox event",
			zap.Int64("order_id", order.ID),
			zap.Error(err),
		)

		return nil, fmt.Errorf("failed to save outbox event: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		mylogger.Error(
			ctx,
			s.logger,
			"Failed to commit transaction",
			zap.Error(err),
		)

		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return order, nil
}

func (s *orderService) GetOrdersByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetOrdersByUser")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("user_id", userID),
	)

	return s.orderRepo.GetOrdersByUser(ctx, userID)
}

func validateItems(userID int64, items []domain.OrderItemRequest) error {
	if userID <= 0 {
		return fmt.Errorf("%w: user id must be positive", domain.ErrValidation)
	}

	if len(items) == 0 {
		return fmt.Errorf("%w: order has no items", domain.ErrValidation)
	}

	seen := make(map[int64]struct{}, len(items))
	for _, item := range items {
		if item.ProductID <= 0 {
			return fmt.Errorf("%w: product id must be positive", domain.ErrValidation)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: quantity must be positive", domain.ErrValidation)
		}
		if _, dup := seen[item.ProductID]; dup {
			return fmt.Errorf("%w: duplicate product %d", domain.ErrValidation, item.ProductID)
		}
		seen[item.ProductID] = struct{}{}
	}

	return nil
}

// checkStock fans out one availability check per item with bounded
// concurrency and correlates results back to items by product id, never by
// arrival order. A single failed leg aborts the whole batch.
func (s *orderService) checkStock(ctx context.Context, items []domain.OrderItemRequest) ([]domain.StockCheckResult, error) {
	results := make([]domain.StockCheckResult, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrency)

	for i, item := range items {
		g.Go(func() error {
			res, err := s.inventory.CheckStock(gctx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}

			results[i] = *res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	byProduct := make(map[int64]domain.StockCheckResult, len(results))
	for _, res := range results {
		byProduct[res.ProductID] = res
	}

	var unavailable []int64
	for _, item := range items {
		res, ok := byProduct[item.ProductID]
		if !ok || !res.Available {
			unavailable = append(unavailable, item.ProductID)
		}
	}

	if len(unavailable) > 0 {
		return nil, &domain.StockUnavailableError{ProductIDs: unavailable}
	}

	return results, nil
}

// priceItems fans out one unit-price lookup per item and joins the answers
// back to the requests by product id.
func (s *orderService) priceItems(ctx context.Context, items []domain.OrderItemRequest) ([]domain.PricedItem, error) {
	prices := make([]domain.ProductPrice, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrency)

	for i, item := range items {
		g.Go(func() error {
			price, err := s.products.GetPrice(gctx, item.ProductID)
			if err != nil {
				return err
			}

			prices[i] = *price
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	priceMap := make(map[int64]int64, len(prices))
	for _, p := range prices {
		priceMap[p.ProductID] = p.Price
	}

	priced := make([]domain.PricedItem, 0, len(items))
	for _, item := range items {
		unitPrice, ok := priceMap[item.ProductID]
		if !ok {
			return nil, &domain.PriceNotFoundError{ProductID: item.ProductID}
		}

		priced = append(priced, domain.PricedItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice,
			LineTotal: unitPrice * int64(item.Quantity),
		})
	}

	return priced, nil
}

// emitOrderCreated saves the OrderCreated envelope into the outbox within
// the order transaction. The event therefore exists if and only if the
// order committed, and exactly one outbox row exists per order.
func (s *orderService) emitOrderCreated(ctx context.Context, tx pgx.Tx, order *domain.Order) error {
	event := buildOrderCreatedEvent(order)

	payloadBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	envelope := generalDomain.EventEnvelope{
		Event:   generalDomain.EventOrderCreated,
		Payload: payloadBytes,
	}

	envelopeBytes, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal event envelope: %w", err)
	}

	outboxEvent := &outboxDomain.OutboxEvent{
		AggregateType: "Order",
		AggregateID:   fmt.Sprintf("%d", order.ID),
		EventType:     generalDomain.EventOrderCreated,
		Payload:       envelopeBytes,
		Topic:         generalDomain.TopicOrderEvents,
	}

	return s.outboxRepo.SaveOutboxEvent(ctx, tx, outboxEvent)
}

func buildOrderCreatedEvent(order *domain.Order) *generalDomain.OrderCreatedEvent {
	eventItems := make([]generalDomain.OrderCreatedItem, 0, len(order.Items))
	for _, item := range order.Items {
		eventItems = append(eventItems, generalDomain.OrderCreatedItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	return &generalDomain.OrderCreatedEvent{
		Order: generalDomain.OrderSnapshot{
			ID:        order.ID,
			UserID:    order.UserID,
			Status:    string(order.Status),
			Total:     order.Total,
			CreatedAt: order.CreatedAt,
			UpdatedAt: order.UpdatedAt,
		},
		OrderItems: eventItems,
	}
}
