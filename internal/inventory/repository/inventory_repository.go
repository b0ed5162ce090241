package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hoai-tn/pre-loved--services/internal/inventory/domain"
	"github.com/hoai-tn/pre-loved--services/pkg/mylogger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const uniqueViolation = "23505"

type InventoryRepository interface {
	Create(ctx context.Context, inv *domain.Inventory) error
	FindByProductID(ctx context.Context, productID int64) (*domain.Inventory, error)
	DecreaseStock(ctx context.Context, tx pgx.Tx, productID int64, quantity int32) (int64, error)
}

type inventoryRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
	tracer trace.Tracer
}

func NewInventoryRepository(pool *pgxpool.Pool, logger *zap.Logger) InventoryRepository {
	return &inventoryRepo{
		pool:   pool,
		logger: logger,
		tracer: otel.Tracer("inventory_repository"),
	}
}

func (r *inventoryRepo) Create(ctx context.Context, inv *domain.Inventory) error {
	ctx, span := r.tracer.Start(ctx, "InventoryRepository.Create")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("product_id", inv.ProductID),
		attribute.String("sku", inv.SKU),
	)

	query := `
		INSERT INTO inventory (product_id, sku, available_stock, reserved_stock, minimum_stock, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, TRUE, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(
		ctx,
		query,
		inv.ProductID,
		inv.SKU,
		inv.AvailableStock,
		inv.ReservedStock,
		inv.MinimumStock,
	).Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		var pgError *pgconn.PgError
		if errors.As(err, &pgError) && pgError.Code == uniqueViolation {
			return ErrInventoryExists
		}

		span.RecordError(err)

		mylogger.Error(
			ctx,
			r.logger,
			"Failed to insert inventory",
			zap.Int64("product_id", inv.ProductID),
			zap.Error(err),
		)

		return err
	}

	inv.IsActive = true
	return nil
}

func (r *inventoryRepo) FindByProductID(ctx context.Context, productID int64) (*domain.Inventory, error) {
	ctx, span := r.tracer.Start(ctx, "InventoryRepository.FindByProductID")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("product_id", productID),
	)

	query := `
		SELECT id, product_id, sku, available_stock, reserved_stock, minimum_stock, is_active, created_at, updated_at
		FROM inventory
		WHERE product_id = $1 AND is_active = TRUE
	`

	var inv domain.Inventory
	err := r.pool.QueryRow(ctx, query, productID).Scan(
		&inv.ID,
		&inv.ProductID,
		&inv.SKU,
		&inv.AvailableStock,
		&inv.ReservedStock,
		&inv.MinimumStock,
		&inv.IsActive,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInventoryNotFound
		}

		span.RecordError(err)

		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}

	return &inv, nil
}

// DecreaseStock decrements available stock for a product inside the
// caller's transaction, clamping at zero, and returns the remaining stock.
// The stock check at order time was a transient read, so an oversell in the
// race window is possible; the clamp keeps the row sane.
func (r *inventoryRepo) DecreaseStock(ctx context.Context, tx pgx.Tx, productID int64, quantity int32) (int64, error) {
	ctx, span := r.tracer.Start(ctx, "InventoryRepository.DecreaseStock")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("product_id", productID),
		attribute.Int("quantity", int(quantity)),
	)

	query := `
		UPDATE inventory
		SET available_stock = GREATEST(available_stock - $2, 0),
			updated_at = NOW()
		WHERE product_id = $1 AND is_active = TRUE
		RETURNING available_stock
	`

	var remaining int64
	err := tx.QueryRow(ctx, query, productID, int64(quantity)).Scan(&remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrInventoryNotFound
		}

		span.RecordError(err)

		return 0, fmt.Errorf("failed to decrease stock: %w", err)
	}

	return remaining, nil
}
