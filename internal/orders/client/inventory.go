package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hoai-tn/pre-loved--services/internal/orders/domain"
	"github.com/hoai-tn/pre-loved--services/internal/orders/service"
	"github.com/hoai-tn/pre-loved--services/pkg/utils"
	"github.com/sony/gobreaker"
)

type stockCheckRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int32 `json:"quantity"`
}

// InventoryHTTPClient is the stock oracle client: one bounded-timeout
// request/response call per product, no implicit retry. Transport failures
// and timeouts surface as ErrServiceUnavailable and abort the whole order.
type InventoryHTTPClient struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

func NewInventoryClient(baseURL string, timeout time.Duration) service.InventoryClient {
	return &InventoryHTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name: "inventory-client",
		}),
	}
}

func (c *InventoryHTTPClient) CheckStock(ctx context.Context, productID int64, quantity int32) (*domain.StockCheckResult, error) {
	result, err := utils.ExecuteWithBreaker(c.breaker, func() (*domain.StockCheckResult, error) {
		body, err := json.Marshal(stockCheckRequest{
			ProductID: productID,
			Quantity:  quantity,
		})
		if err != nil {
			return nil, err
		}

		url := c.baseURL + "/internal/stock/check"
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil, err
			}

			return nil, fmt.Errorf("%w: stock check for product %d: %v", domain.ErrServiceUnavailable, productID, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%w: stock check for product %d returned status %d", domain.ErrServiceUnavailable, productID, resp.StatusCode)
		}

		var result domain.StockCheckResult
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return nil, fmt.Errorf("%w: decoding stock check response: %v", domain.ErrServiceUnavailable, err)
		}

		return &result, nil
	})
	if err != nil {
		return nil, mapBreakerErr(err)
	}

	return result, nil
}
