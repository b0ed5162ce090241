package client

import (
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

// ProductHTTPClient is the price oracle client. A 404 means the product no
// longer exists and surfaces as PriceNotFound; any other failure is
// ErrServiceUnavailable.
type ProductHTTPClient struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

func NewProductClient(baseURL string, timeout time.Duration) service.ProductClient {
	return &ProductHTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name: "product-client",
			// Unknown products are a business answer, not an oracle
			// failure; they must not trip the breaker.
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, domain.ErrPriceNotFound)
			},
		}),
	}
}

func (c *ProductHTTPClient) GetPrice(ctx context.Context, productID int64) (*domain.ProductPrice, error) {
	price, err := utils.ExecuteWithBreaker(c.breaker, func() (*domain.ProductPrice, error) {
		url := fmt.Sprintf("%s/internal/products/%d/price", c.baseURL, productID)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil, err
			}

			return nil, fmt.Errorf("%w: price lookup for product %d: %v", domain.ErrServiceUnavailable, productID, err)
		}
		defer resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusOK:
		case http.StatusNotFound:
			return nil, &domain.PriceNotFoundError{ProductID: productID}
		default:
			return nil, fmt.Errorf("%w: price lookup for product %d returned status %d", domain.ErrServiceUnavailable, productID, resp.StatusCode)
		}

		var price domain.ProductPrice
		if err := json.NewDecoder(resp.Body).Decode(&price); err != nil {
			return nil, fmt.Errorf("%w: decoding price response: %v", domain.ErrServiceUnavailable, err)
		}

		return &price, nil
	})
	if err != nil {
		return nil, mapBreakerErr(err)
	}

	return price, nil
}
