// Package graph exposes the catalog over GraphQL. It reads through the same
// CatalogService as the REST endpoints, so both always agree.
package graph

import (
	"context"
	"errors"

	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/storefront/app/cart"
	"github.com/shashiranjanraj/storefront/app/catalog"
	gql "github.com/shashiranjanraj/storefront/pkg/graphql"
	"github.com/shashiranjanraj/storefront/pkg/logger"
)

// ErrCatalogUnavailable is the only error a client sees when the store fails.
var ErrCatalogUnavailable = errors.New("Failed to load products")

func catalogFailure(ctx context.Context, field string, err error) error {
	logger.WithCtx(ctx).Error("graphql catalog resolve failed", "field", field, "error", err)
	return ErrCatalogUnavailable
}

// CatalogReader is the part of services.CatalogService the schema needs.
type CatalogReader interface {
	Products(ctx context.Context) ([]catalog.Product, error)
	StarterCart(ctx context.Context) ([]cart.LineItem, error)
}

var optionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "VariantOption",
	Fields: graphql.Fields{
		"id":   &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"name": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"image": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return deref(p.Source.(catalog.Option).Image), nil
			},
		},
	},
})

var groupType = graphql.NewObject(graphql.ObjectConfig{
	Name: "VariantGroup",
	Fields: graphql.Fields{
		"name":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"options": &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(optionType)))},
	},
})

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":   &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"name": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"description": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return deref(p.Source.(catalog.Product).Description), nil
			},
		},
		"price": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Float),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(catalog.Product).Price.InexactFloat64(), nil
			},
		},
		"originalPrice": &graphql.Field{
			Type: graphql.Float,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if op := p.Source.(catalog.Product).OriginalPrice; op != nil {
					return op.InexactFloat64(), nil
				}
				return nil, nil
			},
		},
		"image":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"category":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"isNew":     &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"isOnSale":  &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"stock":     &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		"updatedAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		"variants":  &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(groupType)))},
	},
})

var lineItemType = graphql.NewObject(graphql.ObjectConfig{
	Name: "CartLineItem",
	Fields: graphql.Fields{
		"id":   &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"name": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"description": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return deref(p.Source.(cart.LineItem).Description), nil
			},
		},
		"price": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Float),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(cart.LineItem).Price.InexactFloat64(), nil
			},
		},
		"image":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"category": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"quantity": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
	},
})

// NewSchema builds the catalog schema:
//
//	products: [Product!]!
//	product(id: ID!): Product
//	cart: [CartLineItem!]!
//	cartTotal: Float!
func NewSchema(reader CatalogReader) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(productType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					products, err := reader.Products(p.Context)
					if err != nil {
						return nil, catalogFailure(p.Context, "products", err)
					}
					return products, nil
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					products, err := reader.Products(p.Context)
					if err != nil {
						return nil, catalogFailure(p.Context, "product", err)
					}
					id, _ := p.Args["id"].(string)
					for _, prod := range products {
						if prod.ID == id {
							return prod, nil
						}
					}
					return nil, nil
				},
			},
			"cart": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(lineItemType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					items, err := reader.StarterCart(p.Context)
					if err != nil {
						return nil, catalogFailure(p.Context, "cart", err)
					}
					return items, nil
				},
			},
			"cartTotal": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Float),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					items, err := reader.StarterCart(p.Context)
					if err != nil {
						return nil, catalogFailure(p.Context, "cartTotal", err)
					}
					return cart.Total(items).InexactFloat64(), nil
				},
			},
		},
	})
	return gql.NewSchema(query)
}

func deref(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
