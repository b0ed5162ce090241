package tests

import (
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	generalDomain "github.com/hoai-tn/pre-loved--services/pkg/domain"
)

func (s *IntegrationTestSuite) TestHandleOrderCreated_CapturesPayment() {
	event := &generalDomain.OrderCreatedEvent{
		EventID: 100,
		Order: generalDomain.OrderSnapshot{
			ID:     7,
			UserID: 42,
			Status: "pending",
			Total:  450,
		},
	}

	s.Require().NoError(s.PaymentService.HandleOrderCreated(s.Ctx, event))

	var amount int64
	var status string
	var transactionID string
	err := s.DbPool.QueryRow(s.Ctx, "SELECT amount, status, transaction_id FROM payments WHERE order_id=$1", int64(7)).
		Scan(&amount, &status, &transactionID)
	s.Require().NoError(err)

	s.Equal(int64(450), amount)
	s.Equal("captured", status)
	s.NotEmpty(transactionID)
}

func (s *IntegrationTestSuite) TestHandleOrderCreated_RedeliveryChargesOnce() {
	event := &generalDomain.OrderCreatedEvent{
		EventID: 200,
		Order: generalDomain.OrderSnapshot{
			ID:     8,
			UserID: 42,
			Total:  1000,
		},
	}

	s.Require().NoError(s.PaymentService.HandleOrderCreated(s.Ctx, event))
	s.Require().NoError(s.PaymentService.HandleOrderCreated(s.Ctx, event))

	s.Equal(1, s.CountRows("payments"))
	s.Equal(1, s.CountRows("processed_events"))
}
