package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestGroupPrefixAndNamedRoutes(t *testing.T) {
	r := New()
	api := r.Group("/api/")
	api.Get("/products", "products.index", ok)
	api.Get("products/variants", "products.variants", ok)
	api.Group("admin").Get("/users/{id}", "admin.users.show", ok)

	path, found := r.Path("products.variants")
	require.True(t, found)
	assert.Equal(t, "/api/products/variants", path)

	url, err := r.URL("admin.users.show", map[string]string{"id": "7"})
	require.NoError(t, err)
	assert.Equal(t, "/api/admin/users/7", url)

	_, err = r.URL("admin.users.show", nil)
	assert.Error(t, err)
	_, err = r.URL("missing", nil)
	assert.Error(t, err)

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGroupMiddlewareOrder(t *testing.T) {
	var trail []string
	mw := func(tag string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				trail = append(trail, tag)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := New()
	g := r.Group("/g", mw("group"))
	g.Post("/x", "", func(w http.ResponseWriter, _ *http.Request) {
		trail = append(trail, "handler")
		w.WriteHeader(http.StatusNoContent)
	}, mw("route"))

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/g/x", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"group", "route", "handler"}, trail)
}

func TestRoutesSorted(t *testing.T) {
	r := New()
	r.Post("/b", "b.store", ok)
	r.Get("/b", "b.index", ok)
	r.Get("/a", "a.index", ok)
	r.Get("/unnamed", "", ok)

	assert.Equal(t, []RouteInfo{
		{Name: "a.index", Method: http.MethodGet, Path: "/a"},
		{Name: "b.index", Method: http.MethodGet, Path: "/b"},
		{Name: "b.store", Method: http.MethodPost, Path: "/b"},
	}, r.Routes())
}
