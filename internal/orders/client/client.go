package client

import (
	"errors"
	"fmt"

	"github.com/hoai-tn/pre-loved--services/internal/orders/domain"
	"github.com/sony/gobreaker"
)

// mapBreakerErr turns an open-breaker rejection into the same category as a
// transport failure, so callers see one ServiceUnavailable condition.
func mapBreakerErr(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}

	return err
}
