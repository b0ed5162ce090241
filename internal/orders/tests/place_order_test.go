package tests

import (
	"errors"
	"fmt"
	"time"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/hoai-tn/pre-loved--services/internal/orders/domain"
)

func (s *IntegrationTestSuite) TestPlaceOrder_Success() {
	s.Oracles.setStock(1, 10)
	s.Oracles.setStock(2, 5)
	s.Oracles.setPrice(1, 100)
	s.Oracles.setPrice(2, 250)

	order, err := s.OrderService.PlaceOrder(s.Ctx, 42, []domain.OrderItemRequest{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	})

	s.Require().NoError(err)
	s.Require().NotNil(order)
	s.Require().NotZero(order.ID)

	s.Equal(int64(450), order.Total)
	s.Equal(domain.OrderStatusPending, order.Status)
	s.Require().Len(order.Items, 2)
	s.Equal(int64(200), order.Items[0].Price)
	s.Equal(int64(250), order.Items[1].Price)

	var dbTotal int64
	var dbStatus string
	err = s.DbPool.QueryRow(s.Ctx, "SELECT total, status FROM orders WHERE id=$1", order.ID).
		Scan(&dbTotal, &dbStatus)
	s.Require().NoError(err)
	s.Equal(int64(450), dbTotal)
	s.Equal("pending", dbStatus)

	s.Equal(2, s.CountRows("order_items"))

	outboxQuery := `
		SELECT id
		FROM outbox
		WHERE aggregate_id = $1;
	`

	var outboxId int64
	err = s.DbPool.QueryRow(s.Ctx, outboxQuery, fmt.Sprintf("%d", order.ID)).
		Scan(&outboxId)
	s.Require().NoError(err)
	s.Require().NotZero(outboxId)

	query := `
		SELECT published_at
		FROM outbox
		WHERE aggregate_id = $1
	`

	s.Require().Eventually(func() bool {
		var publishedAt *time.Time
		err := s.DbPool.QueryRow(s.Ctx, query, fmt.Sprintf("%d", order.ID)).
			Scan(&publishedAt)

		if err != nil || publishedAt == nil {
			return false
		}

		return true
	}, 5*time.Second, 100*time.Millisecond, "outbox event must be published within 5 seconds")
}

func (s *IntegrationTestSuite) TestPlaceOrder_StockUnavailable_NothingPersisted() {
	s.Oracles.setStock(1, 0)
	s.Oracles.setStock(2, 5)
	s.Oracles.setPrice(1, 100)
	s.Oracles.setPrice(2, 250)

	order, err := s.OrderService.PlaceOrder(s.Ctx, 42, []domain.OrderItemRequest{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	})

	s.Require().Error(err)
	s.Nil(order)
	s.True(errors.Is(err, domain.ErrStockUnavailable))

	var stockErr *domain.StockUnavailableError
	s.Require().True(errors.As(err, &stockErr))
	s.Equal([]int64{1}, stockErr.ProductIDs)

	s.Zero(s.CountRows("orders"))
	s.Zero(s.CountRows("order_items"))
	s.Zero(s.CountRows("outbox"))
}

func (s *IntegrationTestSuite) TestPlaceOrder_PriceNotFound_NothingPersisted() {
	s.Oracles.setStock(1, 10)
	// no price for product 1

	order, err := s.OrderService.PlaceOrder(s.Ctx, 42, []domain.OrderItemRequest{
		{ProductID: 1, Quantity: 1},
	})

	s.Require().Error(err)
	s.Nil(order)
	s.True(errors.Is(err, domain.ErrPriceNotFound))

	s.Zero(s.CountRows("orders"))
	s.Zero(s.CountRows("outbox"))
}

func (s *IntegrationTestSuite) TestPlaceOrder_OracleDown_NothingPersisted() {
	s.inventoryServer.Close()
	defer func() {
		// restore a live server for subsequent tests
		s.inventoryServer = newInventoryServer(s.Oracles)
	}()

	s.Oracles.setPrice(1, 100)

	order, err := s.OrderService.PlaceOrder(s.Ctx, 42, []domain.OrderItemRequest{
		{ProductID: 1, Quantity: 1},
	})

	s.Require().Error(err)
	s.Nil(order)
	s.True(errors.Is(err, domain.ErrServiceUnavailable))

	s.Zero(s.CountRows("orders"))
	s.Zero(s.CountRows("outbox"))
}

func (s *IntegrationTestSuite) TestGetOrdersByUser() {
	s.Oracles.setStock(1, 10)
	s.Oracles.setPrice(1, 100)

	placed, err := s.OrderService.PlaceOrder(s.Ctx, 77, []domain.OrderItemRequest{
		{ProductID: 1, Quantity: 3},
	})
	s.Require().NoError(err)

	orders, err := s.OrderService.GetOrdersByUser(s.Ctx, 77)
	s.Require().NoError(err)
	s.Require().Len(orders, 1)

	s.Equal(placed.ID, orders[0].ID)
	s.Equal(int64(300), orders[0].Total)
	s.Require().Len(orders[0].Items, 1)
	s.Equal(int64(1), orders[0].Items[0].ProductID)

	none, err := s.OrderService.GetOrdersByUser(s.Ctx, 12345)
	s.Require().NoError(err)
	s.Empty(none)
}
