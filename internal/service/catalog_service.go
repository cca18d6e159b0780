package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"miwalavie-store/internal/core/cache"
	"miwalavie-store/internal/domain"
	"miwalavie-store/pkg/utils"
)

const catalogCacheKey = "catalog:products"

// CatalogService 商品目录读写；公开列表走 redis 读穿缓存（可选）
type CatalogService struct {
	products domain.ProductRepository
	cache    *cache.Cache
	cacheTTL time.Duration
}

func NewCatalogService(products domain.ProductRepository) *CatalogService {
	return &CatalogService{products: products}
}

func (s *CatalogService) WithCache(c *cache.Cache, ttl time.Duration) *CatalogService {
	s.cache = c
	s.cacheTTL = ttl
	return s
}

func (s *CatalogService) List(ctx context.Context) ([]domain.Product, error) {
	if s.cache == nil {
		ps, err := s.products.List()
		return ps, persistence(err)
	}
	out, err := cache.GetOrLoadJSON[[]domain.Product](s.cache, ctx, catalogCacheKey, s.cacheTTL,
		func(context.Context) (*[]domain.Product, error) {
			ps, e := s.products.List()
			if e != nil {
				return nil, e
			}
			return &ps, nil
		})
	if err != nil {
		return nil, persistence(err)
	}
	if out == nil {
		return nil, nil
	}
	return *out, nil
}

// Resolve 只返回仍存在的商品；被删的 id 静默丢弃
func (s *CatalogService) Resolve(ids []string) (map[string]domain.Product, error) {
	m, err := s.products.FindByIDs(ids)
	return m, persistence(err)
}

// ParsePrice 表单价格 → 整数奈拉。允许千分位逗号和小数写法，负数拒绝
func ParsePrice(raw string) (int64, error) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if raw == "" {
		return 0, Invalid("Price must be a number.")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, Invalid("Price must be a number.")
	}
	v := int64(f)
	if v < 0 {
		return 0, Invalid("Price must be a number.")
	}
	return v, nil
}

// CreateProduct 字段齐全才落库；imagePath 由 transport 层保存文件后传入
func (s *CatalogService) CreateProduct(ctx context.Context, name, description string, priceNGN int64, imagePath string) (*domain.Product, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" || description == "" || imagePath == "" {
		return nil, Invalid("Name, description, price, and an image are required.")
	}
	if priceNGN < 0 {
		return nil, Invalid("Price must be a number.")
	}
	p := &domain.Product{
		ID:          utils.NewID(),
		Name:        name,
		Description: description,
		PriceNGN:    priceNGN,
		ImagePath:   imagePath,
	}
	if err := s.products.Create(p); err != nil {
		return nil, persistence(err)
	}
	s.invalidate(ctx)
	return p, nil
}

// DeleteProduct 幂等；不存在时给 NotFound 提示而非失败
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	ok, err := s.products.Delete(id)
	if err != nil {
		return persistence(err)
	}
	if !ok {
		return NotFound("Product not found.")
	}
	s.invalidate(ctx)
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, catalogCacheKey)
	}
}
