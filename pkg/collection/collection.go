// Package collection provides generic, functional-style helpers for slices.
//
// Usage:
//
//	ids := collection.Map(products, func(p catalog.Product) string { return p.ID })
//	inStock := collection.Filter(products, func(p catalog.Product) bool { return p.Stock > 0 })
//	types := collection.KeyBy(rows, func(t models.VariantType) string { return t.Name })
package collection

// Map transforms each element of slice s using fn. A nil s yields an empty,
// non-nil slice so the result always encodes as a JSON array.
func Map[T, R any](s []T, fn func(T) R) []R {
	out := make([]R, len(s))
	for i, v := range s {
		out[i] = fn(v)
	}
	return out
}

// Filter returns elements of s for which fn returns true.
func Filter[T any](s []T, fn func(T) bool) []T {
	out := make([]T, 0, len(s))
	for _, v := range s {
		if fn(v) {
			out = append(out, v)
		}
	}
	return out
}

// Take returns the first n elements (all of s when n >= len(s)).
func Take[T any](s []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if n >= len(s) {
		return s
	}
	return s[:n]
}

// KeyBy turns s into a map using the key produced by fn.
// If two elements produce the same key, the last one wins.
func KeyBy[T any, K comparable](s []T, fn func(T) K) map[K]T {
	out := make(map[K]T, len(s))
	for _, v := range s {
		out[fn(v)] = v
	}
	return out
}
