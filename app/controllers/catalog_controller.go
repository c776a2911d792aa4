package controllers

import (
	"context"
	"net/http"

	"github.com/shashiranjanraj/storefront/app/cart"
	"github.com/shashiranjanraj/storefront/app/catalog"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/response"
)

// CatalogProvider is implemented by services.CatalogService.
type CatalogProvider interface {
	Products(ctx context.Context) ([]catalog.Product, error)
	Variants(ctx context.Context) ([]catalog.ProductVariants, error)
	StarterCart(ctx context.Context) ([]cart.LineItem, error)
}

const catalogFailureMessage = "Failed to load products"

// catalogFailure logs the cause and answers with the generic 500. The
// client never sees partial data or the underlying error.
func catalogFailure(w http.ResponseWriter, r *http.Request, op string, err error) {
	logger.WithCtx(r.Context()).Error("catalog request failed", "op", op, "error", err)
	response.Error(w, http.StatusInternalServerError, catalogFailureMessage)
}

type ProductController struct {
	catalog CatalogProvider
}

func NewProductController(catalog CatalogProvider) *ProductController {
	return &ProductController{catalog: catalog}
}

// Index handles GET /api/products.
func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	products, err := c.catalog.Products(r.Context())
	if err != nil {
		catalogFailure(w, r, "products.index", err)
		return
	}
	response.JSON(w, http.StatusOK, products)
}

// Variants handles GET /api/products/variants.
func (c *ProductController) Variants(w http.ResponseWriter, r *http.Request) {
	variants, err := c.catalog.Variants(r.Context())
	if err != nil {
		catalogFailure(w, r, "products.variants", err)
		return
	}
	response.JSON(w, http.StatusOK, variants)
}

type CartController struct {
	catalog CatalogProvider
}

func NewCartController(catalog CatalogProvider) *CartController {
	return &CartController{catalog: catalog}
}

// Show handles GET /api/cart with the starter cart.
func (c *CartController) Show(w http.ResponseWriter, r *http.Request) {
	items, err := c.catalog.StarterCart(r.Context())
	if err != nil {
		catalogFailure(w, r, "cart.show", err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}
