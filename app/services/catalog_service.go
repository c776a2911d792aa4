package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shashiranjanraj/storefront/app/cart"
	"github.com/shashiranjanraj/storefront/app/catalog"
	"github.com/shashiranjanraj/storefront/pkg/event"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
	"github.com/shashiranjanraj/storefront/pkg/orm"
)

// CatalogCacheKey holds the raw catalog snapshot in the ORM cache.
const CatalogCacheKey = "catalog:products"

func init() {
	event.Listen(event.CatalogChanged, forgetCatalog)
}

// forgetCatalog drops the cached snapshot so the next read hits the store.
func forgetCatalog(ctx context.Context, _ any) {
	if err := orm.Forget(ctx, CatalogCacheKey); err != nil {
		logger.WithCtx(ctx).Warn("catalog cache not cleared", "error", err)
	}
}

// ProductStore is the read side of the catalog tables.
type ProductStore interface {
	FindProductsWithVariants(ctx context.Context) ([]catalog.RawProduct, error)
}

// CatalogService loads the catalog once per call and derives every
// catalog-backed response from that snapshot.
type CatalogService struct {
	store      ProductStore
	normalizer *catalog.Normalizer
	cacheTTL   time.Duration
}

// NewCatalogService returns a service over store. A positive cacheTTL
// caches raw store results through orm.CacheStore.
func NewCatalogService(store ProductStore, cacheTTL time.Duration) *CatalogService {
	return &CatalogService{
		store:      store,
		normalizer: catalog.NewNormalizer(),
		cacheTTL:   cacheTTL,
	}
}

// WithNormalizer swaps the normalizer, mainly to pin its clock.
func (s *CatalogService) WithNormalizer(n *catalog.Normalizer) *CatalogService {
	s.normalizer = n
	return s
}

// Products returns the full normalized catalog. Any store failure is
// returned as is; callers must not serve partial data.
func (s *CatalogService) Products(ctx context.Context) ([]catalog.Product, error) {
	raws, err := orm.Remember(ctx, CatalogCacheKey, s.cacheTTL, s.store.FindProductsWithVariants)
	if err != nil {
		metrics.CatalogFailures.Inc()
		return nil, fmt.Errorf("services: load catalog: %w", err)
	}

	products := s.normalizer.NormalizeAll(raws)
	metrics.CatalogProducts.Add(float64(len(products)))
	return products, nil
}

// Variants returns each product's id and variant tree.
func (s *CatalogService) Variants(ctx context.Context) ([]catalog.ProductVariants, error) {
	products, err := s.Products(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.VariantsOf(products), nil
}

// StarterCart assembles the bootstrap cart from the head of the catalog.
func (s *CatalogService) StarterCart(ctx context.Context) ([]cart.LineItem, error) {
	products, err := s.Products(ctx)
	if err != nil {
		return nil, err
	}
	return cart.Assemble(products), nil
}
