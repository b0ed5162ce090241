package tests

import (
	"testing"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/hoai-tn/pre-loved--services/internal/payments/repository"
	"github.com/hoai-tn/pre-loved--services/internal/payments/service"
	"github.com/hoai-tn/pre-loved--services/pkg/testsuite"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type IntegrationTestSuite struct {
	testsuite.BaseSuite

	PaymentService service.PaymentService
}

func (s *IntegrationTestSuite) SetupSuite() {
	s.BaseSuite.SetupInfrastructure("../../../migrations/payments")
}

func (s *IntegrationTestSuite) TearDownSuite() {
	s.BaseSuite.TearDownInfrastructure()
}

func (s *IntegrationTestSuite) SetupTest() {
	s.BaseSuite.TruncateTable("payments")
	s.BaseSuite.TruncateTable("processed_events")

	logger := zap.NewNop()
	paymentRepo := repository.NewPaymentRepository(logger)
	s.PaymentService = service.NewPaymentService(s.DbPool, logger, paymentRepo)
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}
