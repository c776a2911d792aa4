// Package resource shapes models into API payloads.
//
//	func userResource(u models.User) resource.Map {
//	    return resource.Map{"id": u.ID, "name": u.Name, "email": u.Email}
//	}
//
//	resource.New(userResource, user).Respond(w)
//	resource.CollectionOf(userResource, users).WithPagination(p).Respond(w)
package resource

import (
	"encoding/json"
	"net/http"

	"github.com/shashiranjanraj/storefront/pkg/orm"
)

// Map is a convenient alias for the output of a Transformer.
type Map = map[string]interface{}

// Transformer converts one model into a Map.
type Transformer[T any] func(T) Map

// Resource wraps a single model with its transformer.
type Resource[T any] struct {
	transform Transformer[T]
	data      T
	meta      Map
}

func New[T any](t Transformer[T], data T) *Resource[T] {
	return &Resource[T]{transform: t, data: data}
}

// WithMeta attaches additional metadata to the response envelope.
func (r *Resource[T]) WithMeta(meta Map) *Resource[T] {
	r.meta = meta
	return r
}

// MarshalJSON lets a Resource be nested inside other payloads.
func (r *Resource[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.transform(r.data))
}

// Respond writes {"data": ..., "meta": ...} with status 200.
func (r *Resource[T]) Respond(w http.ResponseWriter) {
	out := Map{"data": r.transform(r.data)}
	if r.meta != nil {
		out["meta"] = r.meta
	}
	writeJSON(w, http.StatusOK, out)
}

// Collection wraps a slice of models with a transformer.
type Collection[T any] struct {
	transform  Transformer[T]
	items      []T
	pagination *orm.Pagination
	meta       Map
}

func CollectionOf[T any](t Transformer[T], items []T) *Collection[T] {
	return &Collection[T]{transform: t, items: items}
}

func (c *Collection[T]) WithPagination(p orm.Pagination) *Collection[T] {
	c.pagination = &p
	return c
}

func (c *Collection[T]) WithMeta(meta Map) *Collection[T] {
	c.meta = meta
	return c
}

// Respond writes {"data": [...], "pagination": ..., "meta": ...} with status 200.
func (c *Collection[T]) Respond(w http.ResponseWriter) {
	data := make([]Map, len(c.items))
	for i, item := range c.items {
		data[i] = c.transform(item)
	}

	out := Map{"data": data}
	if c.pagination != nil {
		out["pagination"] = c.pagination
	}
	if c.meta != nil {
		out["meta"] = c.meta
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
