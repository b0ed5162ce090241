package service

import (
	"context"

	"github.com/hoai-tn/pre-loved--services/internal/product/domain"
	"github.com/hoai-tn/pre-loved--services/internal/product/repository"
	"go.uber.org/zap"
)

type ProductService interface {
	Create(ctx context.Context, product *domain.Product) (int64, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	GetPrice(ctx context.Context, id int64) (*domain.ProductPrice, error)
}

type productService struct {
	productRepo repository.ProductRepository
	logger      *zap.Logger
}

func NewProductService(productRepo repository.ProductRepository, logger *zap.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger,
	}
}

func (s *productService) Create(ctx context.Context, product *domain.Product) (int64, error) {
	return s.productRepo.Create(ctx, product)
}

func (s *productService) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

// GetPrice is the price oracle: the authoritative unit price at decision
// time. A missing product propagates ErrProductNotFound.
func (s *productService) GetPrice(ctx context.Context, id int64) (*domain.ProductPrice, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &domain.ProductPrice{
		ProductID: product.ID,
		Price:     product.Price,
	}, nil
}
