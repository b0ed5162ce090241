package tests

import (
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	generalDomain "github.com/hoai-tn/pre-loved--services/pkg/domain"
)

func orderCreatedEvent(eventID, orderID int64, items ...generalDomain.OrderCreatedItem) *generalDomain.OrderCreatedEvent {
	return &generalDomain.OrderCreatedEvent{
		EventID: eventID,
		Order: generalDomain.OrderSnapshot{
			ID:     orderID,
			UserID: 42,
			Status: "pending",
		},
		OrderItems: items,
	}
}

func (s *IntegrationTestSuite) TestHandleOrderCreated_DecrementsStock() {
	s.seedInventory(1, "SKU-1", 10)
	s.seedInventory(2, "SKU-2", 5)

	event := orderCreatedEvent(100, 7,
		generalDomain.OrderCreatedItem{ProductID: 1, Quantity: 2, Price: 200},
		generalDomain.OrderCreatedItem{ProductID: 2, Quantity: 1, Price: 250},
	)

	err := s.InventoryService.HandleOrderCreated(s.Ctx, event)
	s.Require().NoError(err)

	s.Equal(int64(8), s.currentStock(1))
	s.Equal(int64(4), s.currentStock(2))
}

func (s *IntegrationTestSuite) TestHandleOrderCreated_RedeliveryIsIdempotent() {
	s.seedInventory(1, "SKU-1", 10)

	event := orderCreatedEvent(200, 8,
		generalDomain.OrderCreatedItem{ProductID: 1, Quantity: 3, Price: 300},
	)

	s.Require().NoError(s.InventoryService.HandleOrderCreated(s.Ctx, event))
	s.Equal(int64(7), s.currentStock(1))

	// redelivery with the same event id must not decrement again
	s.Require().NoError(s.InventoryService.HandleOrderCreated(s.Ctx, event))
	s.Equal(int64(7), s.currentStock(1))

	s.Equal(1, s.CountRows("processed_events"))
}

func (s *IntegrationTestSuite) TestHandleOrderCreated_ClampsAtZero() {
	s.seedInventory(1, "SKU-1", 2)

	event := orderCreatedEvent(300, 9,
		generalDomain.OrderCreatedItem{ProductID: 1, Quantity: 5, Price: 500},
	)

	s.Require().NoError(s.InventoryService.HandleOrderCreated(s.Ctx, event))
	s.Equal(int64(0), s.currentStock(1))
}

func (s *IntegrationTestSuite) TestHandleOrderCreated_UnknownProductIsSkipped() {
	s.seedInventory(1, "SKU-1", 10)

	event := orderCreatedEvent(400, 10,
		generalDomain.OrderCreatedItem{ProductID: 1, Quantity: 1, Price: 100},
		generalDomain.OrderCreatedItem{ProductID: 99, Quantity: 1, Price: 100},
	)

	s.Require().NoError(s.InventoryService.HandleOrderCreated(s.Ctx, event))
	s.Equal(int64(9), s.currentStock(1))
}

func (s *IntegrationTestSuite) TestCheckStock_ReadsCurrentInventory() {
	s.seedInventory(1, "SKU-1", 4)

	result, err := s.InventoryService.CheckStock(s.Ctx, 1, 4)
	s.Require().NoError(err)
	s.True(result.Available)
	s.Equal("SKU-1", result.SKU)

	result, err = s.InventoryService.CheckStock(s.Ctx, 1, 5)
	s.Require().NoError(err)
	s.False(result.Available)
}
