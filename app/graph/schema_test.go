package graph

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/app/cart"
	"github.com/shashiranjanraj/storefront/app/catalog"
	gql "github.com/shashiranjanraj/storefront/pkg/graphql"
)

type stubReader struct {
	products []catalog.Product
	err      error
}

func (s stubReader) Products(context.Context) ([]catalog.Product, error) {
	return s.products, s.err
}

func (s stubReader) StarterCart(ctx context.Context) ([]cart.LineItem, error) {
	products, err := s.Products(ctx)
	if err != nil {
		return nil, err
	}
	return cart.Assemble(products), nil
}

func fixture() []catalog.Product {
	desc := "Soft cotton"
	red := "/img/red.png"
	orig := decimal.RequireFromString("25")
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	return []catalog.Product{
		{
			ID: "1", Name: "Tee", Description: &desc,
			Price: decimal.RequireFromString("19.99"), OriginalPrice: &orig,
			Image: "/img/red.png", Category: "shirts", IsNew: true, Stock: 4,
			CreatedAt: at, UpdatedAt: at,
			Variants: []catalog.VariantGroup{{
				Name: "Color",
				Options: []catalog.Option{
					{ID: "10", Name: "Red", Image: &red},
					{ID: "11", Name: "Blue"},
				},
			}},
		},
		{
			ID: "2", Name: "Mug", Price: decimal.RequireFromString("8"),
			CreatedAt: at, UpdatedAt: at, Variants: []catalog.VariantGroup{},
		},
	}
}

func do(t *testing.T, reader CatalogReader, query string) *httptest.ResponseRecorder {
	t.Helper()
	schema, err := NewSchema(reader)
	require.NoError(t, err)

	body := `{"query":` + strings.ReplaceAll(`"`+query+`"`, "\n", " ") + `}`
	w := httptest.NewRecorder()
	gql.Handler(schema)(w, httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body)))
	return w
}

func TestProductsQuery(t *testing.T) {
	w := do(t, stubReader{products: fixture()},
		`{ products { id name description price originalPrice image category stock createdAt variants { name options { id name image } } } }`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"products":[
		{"id":"1","name":"Tee","description":"Soft cotton","price":19.99,"originalPrice":25,
		 "image":"/img/red.png","category":"shirts","stock":4,"createdAt":"2024-01-02T03:04:05Z",
		 "variants":[{"name":"Color","options":[
			{"id":"10","name":"Red","image":"/img/red.png"},
			{"id":"11","name":"Blue","image":null}]}]},
		{"id":"2","name":"Mug","description":null,"price":8,"originalPrice":null,
		 "image":"","category":"","stock":0,"createdAt":"2024-01-02T03:04:05Z","variants":[]}
	]}}`, w.Body.String())
}

func TestProductByID(t *testing.T) {
	w := do(t, stubReader{products: fixture()}, `{ product(id: \"2\") { name isNew isOnSale } missing: product(id: \"9\") { name } }`)

	assert.JSONEq(t, `{"data":{"product":{"name":"Mug","isNew":false,"isOnSale":false},"missing":null}}`, w.Body.String())
}

func TestCartQuery(t *testing.T) {
	w := do(t, stubReader{products: fixture()}, `{ cart { id quantity price } }`)

	assert.JSONEq(t, `{"data":{"cart":[{"id":"1","quantity":2,"price":19.99},{"id":"2","quantity":1,"price":8}]}}`, w.Body.String())
}

func TestCartTotalQuery(t *testing.T) {
	w := do(t, stubReader{products: fixture()}, `{ cartTotal }`)
	assert.JSONEq(t, `{"data":{"cartTotal":47.98}}`, w.Body.String())

	w = do(t, stubReader{}, `{ cartTotal }`)
	assert.JSONEq(t, `{"data":{"cartTotal":0}}`, w.Body.String())
}

func TestStoreFailureSurfacesAsGraphQLError(t *testing.T) {
	cause := errors.New("services: load catalog: dial tcp 10.0.0.5:5432: connection refused")

	for _, query := range []string{`{ cartTotal }`, `{ products { id } }`, `{ product(id: \"1\") { id } }`, `{ cart { id } }`} {
		w := do(t, stubReader{err: cause}, query)

		assert.Equal(t, http.StatusOK, w.Code, query)
		assert.Contains(t, w.Body.String(), `"errors"`, query)
		assert.Contains(t, w.Body.String(), `Failed to load products`, query)
		assert.NotContains(t, w.Body.String(), "10.0.0.5", query)
		assert.NotContains(t, w.Body.String(), "connection refused", query)
	}
}
