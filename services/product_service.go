package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"shoppit/models"
)

const (
	productListCacheKey   = "products:all"
	productCacheKeyPrefix = "products:slug:"
	productCacheTTL       = 5 * time.Minute
)

type ProductStore interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.DetailedProduct, error)
	Create(ctx context.Context, product *models.Product) error
}

// ProductService serves the catalog. cache may be nil, in which case every
// read goes to the database.
type ProductService struct {
	products ProductStore
	cache    *redis.Client
}

func NewProductService(products ProductStore, cache *redis.Client) *ProductService {
	return &ProductService{products: products, cache: cache}
}

func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, productListCacheKey).Bytes(); err == nil {
			var products []models.Product
			if json.Unmarshal(cached, &products) == nil {
				return products, nil
			}
		}
	}

	products, err := s.products.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, productListCacheKey, products)
	return products, nil
}

func (s *ProductService) GetProductDetail(ctx context.Context, slug string) (*models.DetailedProduct, error) {
	key := productCacheKeyPrefix + slug

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key).Bytes(); err == nil {
			var detailed models.DetailedProduct
			if json.Unmarshal(cached, &detailed) == nil {
				return &detailed, nil
			}
		}
	}

	detailed, err := s.products.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	s.cacheSet(ctx, key, detailed)
	return detailed, nil
}

// ImportProducts bulk-creates catalog entries, reporting a per-item result
// instead of failing the whole batch on one bad record.
func (s *ProductService) ImportProducts(ctx context.Context, items []models.ImportProductRequest) []models.ImportResult {
	results := make([]models.ImportResult, 0, len(items))

	for _, item := range items {
		if err := s.importOne(ctx, item); err != nil {
			results = append(results, models.ImportResult{Name: item.Title, Error: err.Error()})
			continue
		}
		results = append(results, models.ImportResult{Name: item.Title, Status: "imported"})
	}

	s.invalidate(ctx)
	return results
}

func (s *ProductService) importOne(ctx context.Context, item models.ImportProductRequest) error {
	price, err := decimal.NewFromString(item.Price)
	if err != nil {
		return errors.New("price must be a decimal number")
	}
	if !models.ValidCategory(item.Category) {
		return errors.New("unknown category: " + item.Category)
	}

	product := &models.Product{
		Name:               item.Title,
		Thumbnail:          item.Thumbnail,
		Description:        item.Description,
		Price:              price,
		Category:           item.Category,
		Brand:              item.Brand,
		Stock:              item.Stock,
		Rating:             item.Rating,
		DiscountPercentage: item.DiscountPercentage,
	}
	return s.products.Create(ctx, product)
}

func (s *ProductService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, productCacheTTL).Err(); err != nil {
		log.Printf("cache set %s failed: %v", key, err)
	}
}

func (s *ProductService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, productListCacheKey).Err(); err != nil {
		log.Printf("cache invalidation failed: %v", err)
	}
}
