package tests

import (
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	generalDomain "github.com/hoai-tn/pre-loved--services/pkg/domain"
)

func (s *IntegrationTestSuite) TestHandleOrderCreated_AccruesPoints() {
	event := &generalDomain.OrderCreatedEvent{
		EventID: 100,
		Order: generalDomain.OrderSnapshot{
			ID:     7,
			UserID: 42,
			Status: "pending",
			Total:  450,
		},
	}

	s.Require().NoError(s.RewardService.HandleOrderCreated(s.Ctx, event))

	var points int64
	err := s.DbPool.QueryRow(s.Ctx, "SELECT points FROM rewards WHERE order_id=$1 AND user_id=$2", int64(7), int64(42)).
		Scan(&points)
	s.Require().NoError(err)

	s.Equal(int64(4), points)
}

func (s *IntegrationTestSuite) TestHandleOrderCreated_RedeliveryAccruesOnce() {
	event := &generalDomain.OrderCreatedEvent{
		EventID: 200,
		Order: generalDomain.OrderSnapshot{
			ID:     8,
			UserID: 42,
			Total:  1000,
		},
	}

	s.Require().NoError(s.RewardService.HandleOrderCreated(s.Ctx, event))
	s.Require().NoError(s.RewardService.HandleOrderCreated(s.Ctx, event))

	s.Equal(1, s.CountRows("rewards"))
	s.Equal(1, s.CountRows("processed_events"))

	var balance int64
	err := s.DbPool.QueryRow(s.Ctx, "SELECT COALESCE(SUM(points), 0) FROM rewards WHERE user_id=$1", int64(42)).
		Scan(&balance)
	s.Require().NoError(err)

	s.Equal(int64(10), balance)
}

func (s *IntegrationTestSuite) TestHandleOrderCreated_SubUnitTotalAccruesZero() {
	event := &generalDomain.OrderCreatedEvent{
		EventID: 300,
		Order: generalDomain.OrderSnapshot{
			ID:     9,
			UserID: 43,
			Total:  99,
		},
	}

	s.Require().NoError(s.RewardService.HandleOrderCreated(s.Ctx, event))

	s.Equal(1, s.CountRows("rewards"))

	var points int64
	err := s.DbPool.QueryRow(s.Ctx, "SELECT points FROM rewards WHERE order_id=$1", int64(9)).
		Scan(&points)
	s.Require().NoError(err)
	s.Zero(points)
}
