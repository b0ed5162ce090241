package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/hoai-tn/pre-loved--services/internal/orders/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubInventoryClient struct {
	stock map[int64]int64
	errs  map[int64]error
}

func (c *stubInventoryClient) CheckStock(_ context.Context, productID int64, quantity int32) (*domain.StockCheckResult, error) {
	if err, ok := c.errs[productID]; ok {
		return nil, err
	}

	available, ok := c.stock[productID]
	return &domain.StockCheckResult{
		ProductID:         productID,
		SKU:               fmt.Sprintf("SKU-%d", productID),
		Available:         ok && available >= int64(quantity),
		AvailableStock:    available,
		RequestedQuantity: quantity,
	}, nil
}

type stubProductClient struct {
	prices map[int64]int64
	errs   map[int64]error
}

func (c *stubProductClient) GetPrice(_ context.Context, productID int64) (*domain.ProductPrice, error) {
	if err, ok := c.errs[productID]; ok {
		return nil, err
	}

	price, ok := c.prices[productID]
	if !ok {
		return nil, &domain.PriceNotFoundError{ProductID: productID}
	}

	return &domain.ProductPrice{ProductID: productID, Price: price}, nil
}

func newTestService(inventory InventoryClient, products ProductClient) *orderService {
	svc := NewOrderService(nil, zap.NewNop(), nil, nil, inventory, products, 4)
	return svc.(*orderService)
}

func TestPlaceOrderValidation(t *testing.T) {
	svc := newTestService(
		&stubInventoryClient{stock: map[int64]int64{1: 10}},
		&stubProductClient{prices: map[int64]int64{1: 100}},
	)

	cases := []struct {
		name   string
		userID int64
		items  []domain.OrderItemRequest
	}{
		{
			name:   "non-positive user id",
			userID: 0,
			items:  []domain.OrderItemRequest{{ProductID: 1, Quantity: 1}},
		},
		{
			name:   "empty items",
			userID: 42,
			items:  nil,
		},
		{
			name:   "non-positive product id",
			userID: 42,
			items:  []domain.OrderItemRequest{{ProductID: 0, Quantity: 1}},
		},
		{
			name:   "non-positive quantity",
			userID: 42,
			items:  []domain.OrderItemRequest{{ProductID: 1, Quantity: 0}},
		},
		{
			name:   "duplicate product",
			userID: 42,
			items: []domain.OrderItemRequest{
				{ProductID: 1, Quantity: 1},
				{ProductID: 1, Quantity: 2},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order, err := svc.PlaceOrder(context.Background(), tc.userID, tc.items)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrValidation))
			assert.Nil(t, order)
		})
	}
}

func TestPlaceOrderStockUnavailable(t *testing.T) {
	svc := newTestService(
		&stubInventoryClient{stock: map[int64]int64{1: 0, 2: 50}},
		&stubProductClient{prices: map[int64]int64{1: 100, 2: 250}},
	)

	order, err := svc.PlaceOrder(context.Background(), 42, []domain.OrderItemRequest{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	})

	require.Error(t, err)
	assert.Nil(t, order)
	assert.True(t, errors.Is(err, domain.ErrStockUnavailable))

	var stockErr *domain.StockUnavailableError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, []int64{1}, stockErr.ProductIDs)
}

func TestPlaceOrderReportsAllUnavailableProducts(t *testing.T) {
	svc := newTestService(
		&stubInventoryClient{stock: map[int64]int64{1: 1, 2: 0, 3: 0}},
		&stubProductClient{prices: map[int64]int64{1: 100, 2: 250, 3: 75}},
	)

	_, err := svc.PlaceOrder(context.Background(), 42, []domain.OrderItemRequest{
		{ProductID: 1, Quantity: 1},
		{ProductID: 2, Quantity: 1},
		{ProductID: 3, Quantity: 1},
	})

	var stockErr *domain.StockUnavailableError
	require.True(t, errors.As(err, &stockErr))
	assert.ElementsMatch(t, []int64{2, 3}, stockErr.ProductIDs)
}

func TestPlaceOrderOracleFailureAbortsBatch(t *testing.T) {
	svc := newTestService(
		&stubInventoryClient{
			stock: map[int64]int64{1: 10},
			errs:  map[int64]error{2: fmt.Errorf("inventory oracle: %w", domain.ErrServiceUnavailable)},
		},
		&stubProductClient{prices: map[int64]int64{1: 100, 2: 250}},
	)

	order, err := svc.PlaceOrder(context.Background(), 42, []domain.OrderItemRequest{
		{ProductID: 1, Quantity: 1},
		{ProductID: 2, Quantity: 1},
	})

	require.Error(t, err)
	assert.Nil(t, order)
	assert.True(t, errors.Is(err, domain.ErrServiceUnavailable))
}

func TestPriceItemsComputesLineTotals(t *testing.T) {
	svc := newTestService(
		&stubInventoryClient{stock: map[int64]int64{1: 10, 2: 10}},
		&stubProductClient{prices: map[int64]int64{1: 100, 2: 250}},
	)

	priced, err := svc.priceItems(context.Background(), []domain.OrderItemRequest{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	})
	require.NoError(t, err)
	require.Len(t, priced, 2)

	assert.Equal(t, int64(200), priced[0].LineTotal)
	assert.Equal(t, int64(100), priced[0].UnitPrice)
	assert.Equal(t, int64(250), priced[1].LineTotal)

	order := &domain.Order{}
	for _, p := range priced {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: p.ProductID,
			Quantity:  p.Quantity,
			Price:     p.LineTotal,
		})
	}
	order.CalculateTotal()

	assert.Equal(t, int64(450), order.Total)
}

func TestPriceItemsPriceNotFound(t *testing.T) {
	svc := newTestService(
		&stubInventoryClient{stock: map[int64]int64{1: 10}},
		&stubProductClient{prices: map[int64]int64{}},
	)

	_, err := svc.priceItems(context.Background(), []domain.OrderItemRequest{
		{ProductID: 7, Quantity: 1},
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPriceNotFound))

	var notFound *domain.PriceNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, int64(7), notFound.ProductID)
}

func TestCheckStockCorrelatesByProductID(t *testing.T) {
	svc := newTestService(
		&stubInventoryClient{stock: map[int64]int64{5: 10, 9: 3, 11: 7}},
		&stubProductClient{},
	)

	items := []domain.OrderItemRequest{
		{ProductID: 11, Quantity: 1},
		{ProductID: 5, Quantity: 2},
		{ProductID: 9, Quantity: 3},
	}

	results, err := svc.checkStock(context.Background(), items)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, item := range items {
		assert.Equal(t, item.ProductID, results[i].ProductID)
		assert.Equal(t, item.Quantity, results[i].RequestedQuantity)
		assert.True(t, results[i].Available)
	}
}

func TestBuildOrderCreatedEvent(t *testing.T) {
	order := &domain.Order{
		ID:     77,
		UserID: 42,
		Status: domain.OrderStatusPending,
		Total:  450,
		Items: []domain.OrderItem{
			{ProductID: 1, Quantity: 2, Price: 200},
			{ProductID: 2, Quantity: 1, Price: 250},
		},
	}

	event := buildOrderCreatedEvent(order)

	assert.Equal(t, int64(77), event.Order.ID)
	assert.Equal(t, int64(42), event.Order.UserID)
	assert.Equal(t, "pending", event.Order.Status)
	assert.Equal(t, int64(450), event.Order.Total)
	require.Len(t, event.OrderItems, 2)
	assert.Equal(t, int64(200), event.OrderItems[0].Price)
	assert.Equal(t, int32(1), event.OrderItems[1].Quantity)

	// event_id is stamped by the outbox worker at publish time, never here.
	assert.Zero(t, event.EventID)
}
