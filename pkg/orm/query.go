// Package orm wraps *gorm.DB with a small chainable query builder that
// records query latency and supports cached and paginated reads.
package orm

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/pkg/metrics"
)

// Cacher is the cache surface Query.Cache and Remember need.
// internal/kernel installs cache.Store{} at startup.
type Cacher interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

type noCache struct{}

func (noCache) Get(context.Context, string, interface{}) bool { return false }

func (noCache) Set(context.Context, string, interface{}, time.Duration) error { return nil }

// CacheStore backs every cached read. Defaults to a store that always misses.
var CacheStore Cacher = noCache{}

// Forget removes keys from CacheStore when the store supports deletion.
func Forget(ctx context.Context, keys ...string) error {
	if d, ok := CacheStore.(interface {
		Del(ctx context.Context, keys ...string) error
	}); ok {
		return d.Del(ctx, keys...)
	}
	return nil
}

// Pagination is the metadata returned alongside one page of rows.
type Pagination struct {
	Total       int64 `json:"total"`
	PerPage     int   `json:"per_page"`
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
}

type Query struct {
	db *gorm.DB
}

// New starts a query bound to ctx.
func New(ctx context.Context, db *gorm.DB) *Query {
	return &Query{db: db.WithContext(ctx)}
}

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query interface{}, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

func (q *Query) Order(value interface{}) *Query {
	return &Query{db: q.db.Order(value)}
}

func (q *Query) Preload(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Preload(query, args...)}
}

func (q *Query) Get(dest interface{}) error {
	defer metrics.ObserveDBQuery("select", time.Now())
	return q.db.Find(dest).Error
}

func (q *Query) First(dest interface{}) error {
	defer metrics.ObserveDBQuery("select", time.Now())
	return q.db.First(dest).Error
}

func (q *Query) Count() (int64, error) {
	defer metrics.ObserveDBQuery("count", time.Now())
	var n int64
	err := q.db.Count(&n).Error
	return n, err
}

// Paginate loads page (1-based) of perPage rows into dest.
func (q *Query) Paginate(page, perPage int, dest interface{}) (Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 15
	}

	total, err := q.Count()
	if err != nil {
		return Pagination{}, fmt.Errorf("orm: paginate count: %w", err)
	}

	defer metrics.ObserveDBQuery("select", time.Now())
	if err := q.db.Offset((page - 1) * perPage).Limit(perPage).Find(dest).Error; err != nil {
		return Pagination{}, fmt.Errorf("orm: paginate: %w", err)
	}

	last := int((total + int64(perPage) - 1) / int64(perPage))
	if last < 1 {
		last = 1
	}
	return Pagination{Total: total, PerPage: perPage, CurrentPage: page, LastPage: last}, nil
}

// Remember returns the cached value under key, or calls load and caches its
// result for ttl. A non-positive ttl bypasses the cache entirely.
func Remember[T any](ctx context.Context, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	if ttl <= 0 {
		return load(ctx)
	}

	var cached T
	if CacheStore.Get(ctx, key, &cached) {
		return cached, nil
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}
	_ = CacheStore.Set(ctx, key, v, ttl)
	return v, nil
}
