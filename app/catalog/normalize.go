package catalog

import (
	"time"

	"github.com/shashiranjanraj/storefront/pkg/collection"
)

// Normalizer fills defaults on raw store records. Now supplies the
// timestamp used when a record has none; nil means time.Now.
type Normalizer struct {
	Now func() time.Time
}

func NewNormalizer() *Normalizer {
	return &Normalizer{Now: time.Now}
}

func (n *Normalizer) now() time.Time {
	if n == nil || n.Now == nil {
		return time.Now()
	}
	return n.Now()
}

// Normalize converts one raw product.
func (n *Normalizer) Normalize(raw RawProduct) Product {
	return normalize(raw, n.now())
}

// NormalizeAll converts raws in order. Missing timestamps across the batch
// share one clock reading.
func (n *Normalizer) NormalizeAll(raws []RawProduct) []Product {
	now := n.now()
	return collection.Map(raws, func(r RawProduct) Product { return normalize(r, now) })
}

func normalize(raw RawProduct, now time.Time) Product {
	variants := collection.Map(raw.Variants, normalizeGroup)

	p := Product{
		ID:            string(raw.ID),
		Name:          raw.Name,
		Description:   raw.Description,
		Price:         raw.Price,
		OriginalPrice: raw.OriginalPrice,
		Image:         primaryImage(raw),
		Category:      deref(raw.Category),
		IsNew:         deref(raw.IsNew),
		IsOnSale:      deref(raw.IsOnSale),
		Stock:         max(deref(raw.Stock), 0),
		CreatedAt:     timeOr(raw.CreatedAt, now),
		UpdatedAt:     timeOr(raw.UpdatedAt, now),
		Variants:      variants,
	}
	return p
}

func normalizeGroup(g RawVariantGroup) VariantGroup {
	return VariantGroup{
		Name: g.Name,
		Options: collection.Map(g.Options, func(o RawOption) Option {
			return Option{ID: string(o.ID), Name: o.Name, Image: nonEmpty(o.Image)}
		}),
	}
}

// primaryImage picks the product image, then the first option of the first
// variant group, then "".
func primaryImage(raw RawProduct) string {
	if img := nonEmpty(raw.Image); img != nil {
		return *img
	}
	if len(raw.Variants) > 0 && len(raw.Variants[0].Options) > 0 {
		if img := nonEmpty(raw.Variants[0].Options[0].Image); img != nil {
			return *img
		}
	}
	return ""
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

func timeOr(t *time.Time, fallback time.Time) time.Time {
	if t == nil || t.IsZero() {
		return fallback
	}
	return *t
}
