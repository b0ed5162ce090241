package service

import (
	"context"
	"errors"
	"testing"

	"github.com/hoai-tn/pre-loved--services/internal/product/domain"
	"github.com/hoai-tn/pre-loved--services/internal/product/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubProductRepo struct {
	products map[int64]*domain.Product
}

func (r *stubProductRepo) Create(_ context.Context, product *domain.Product) (int64, error) {
	return product.ID, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id int64) (*domain.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}

	return product, nil
}

func TestGetPrice(t *testing.T) {
	svc := NewProductService(&stubProductRepo{
		products: map[int64]*domain.Product{
			1: {ID: 1, Name: "vintage jacket", Price: 250},
		},
	}, zap.NewNop())

	price, err := svc.GetPrice(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int64(1), price.ProductID)
	assert.Equal(t, int64(250), price.Price)
}

func TestGetPriceUnknownProduct(t *testing.T) {
	svc := NewProductService(&stubProductRepo{}, zap.NewNop())

	_, err := svc.GetPrice(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrProductNotFound))
}
