package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hoai-tn/pre-loved--services/internal/product/domain"
	"github.com/redis/go-redis/v9"
)

// cachedProductService is a read-through cache decorator over the product
// service. Only reads are cached; a create invalidates nothing because ids
// are new.
type cachedProductService struct {
	next        ProductService
	redisClient *redis.Client
	cacheTTL    time.Duration
}

func NewCachedProductService(next ProductService, redisClient *redis.Client) ProductService {
	return &cachedProductService{
		next:        next,
		redisClient: redisClient,
		cacheTTL:    time.Minute * 10,
	}
}

func (s *cachedProductService) Create(ctx context.Context, product *domain.Product) (int64, error) {
	return s.next.Create(ctx, product)
}

func (s *cachedProductService) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	key := fmt.Sprintf("product:%d", id)

	val, err := s.redisClient.Get(ctx, key).Result()
	if err == nil {
		var product domain.Product
		if err := json.Unmarshal([]byte(val), &product); err == nil {
			return &product, nil
		}
	}

	product, err := s.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(product); err == nil {
		s.redisClient.Set(ctx, key, data, s.cacheTTL)
	}

	return product, nil
}

func (s *cachedProductService) GetPrice(ctx context.Context, id int64) (*domain.ProductPrice, error) {
	product, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &domain.ProductPrice{
		ProductID: product.ID,
		Price:     product.Price,
	}, nil
}
