package tests

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/hoai-tn/pre-loved--services/internal/orders/client"
	"github.com/hoai-tn/pre-loved--services/internal/orders/domain"
	"github.com/hoai-tn/pre-loved--services/internal/orders/repository"
	"github.com/hoai-tn/pre-loved--services/internal/orders/service"
	pkgKafka "github.com/hoai-tn/pre-loved--services/pkg/kafka"
	outboxRepository "github.com/hoai-tn/pre-loved--services/pkg/outbox/repository"
	"github.com/hoai-tn/pre-loved--services/pkg/outbox/worker"
	"github.com/hoai-tn/pre-loved--services/pkg/testsuite"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

// fakeOracles serves the inventory and product oracle endpoints from
// in-memory maps, standing in for the real downstream services.
type fakeOracles struct {
	mu     sync.Mutex
	stock  map[int64]int64
	prices map[int64]int64
}

func (f *fakeOracles) setStock(productID, available int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stock[productID] = available
}

func (f *fakeOracles) setPrice(productID, price int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prices[productID] = price
}

func (f *fakeOracles) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stock = map[int64]int64{}
	f.prices = map[int64]int64{}
}

func (f *fakeOracles) inventoryHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ProductID int64 `json:"product_id"`
			Quantity  int32 `json:"quantity"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		f.mu.Lock()
		available, ok := f.stock[req.ProductID]
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(domain.StockCheckResult{
			ProductID:         req.ProductID,
			SKU:               "SKU-TEST",
			Available:         ok && available >= int64(req.Quantity),
			AvailableStock:    available,
			RequestedQuantity: req.Quantity,
		})
	})
}

func (f *fakeOracles) productHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var productID int64
		if _, err := fmt.Sscanf(r.URL.Path, "/internal/products/%d/price", &productID); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		f.mu.Lock()
		price, ok := f.prices[productID]
		f.mu.Unlock()

		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(domain.ProductPrice{ProductID: productID, Price: price})
	})
}

func newInventoryServer(oracles *fakeOracles) *httptest.Server {
	return httptest.NewServer(oracles.inventoryHandler())
}

type IntegrationTestSuite struct {
	testsuite.BaseSuite

	OrderService    service.OrderService
	Oracles         *fakeOracles
	inventoryServer *httptest.Server
	productServer   *httptest.Server
	workerCancel    context.CancelFunc
}

func (s *IntegrationTestSuite) SetupSuite() {
	s.BaseSuite.SetupInfrastructure("../../../migrations/orders")

	s.Oracles = &fakeOracles{stock: map[int64]int64{}, prices: map[int64]int64{}}
	s.inventoryServer = newInventoryServer(s.Oracles)
	s.productServer = httptest.NewServer(s.Oracles.productHandler())
}

func (s *IntegrationTestSuite) TearDownSuite() {
	s.inventoryServer.Close()
	s.productServer.Close()
	s.BaseSuite.TearDownInfrastructure()
}

func (s *IntegrationTestSuite) SetupTest() {
	s.BaseSuite.TruncateTable("orders")
	s.BaseSuite.TruncateTable("order_items")
	s.BaseSuite.TruncateTable("outbox")
	s.Oracles.reset()

	logger := zap.NewNop()
	orderRepo := repository.NewOrderRepository(s.DbPool, logger)
	outboxRepo := outboxRepository.NewOutboxRepository(s.DbPool, logger)

	inventoryClient := client.NewInventoryClient(s.inventoryServer.URL, 2*time.Second)
	productClient := client.NewProductClient(s.productServer.URL, 2*time.Second)

	s.OrderService = service.NewOrderService(
		s.DbPool,
		logger,
		orderRepo,
		outboxRepo,
		inventoryClient,
		productClient,
		4,
	)

	producer, err := pkgKafka.NewProducer(s.KafkaBrokers)
	s.Require().NoError(err, "failed to create kafka producer")

	processor := worker.NewOutboxProcessor(s.DbPool, outboxRepo, producer, logger)

	workerCtx, cancel := context.WithCancel(s.Ctx)
	s.workerCancel = cancel

	go processor.Start(workerCtx)
}

func (s *IntegrationTestSuite) TearDownTest() {
	if s.workerCancel != nil {
		s.workerCancel()
	}
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}
