package seeders

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/placeholder"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/pkg/collection"
	"github.com/shashiranjanraj/storefront/pkg/event"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/storage"
)

type demoOption struct {
	name  string
	image string
}

type demoGroup struct {
	variantType string
	options     []demoOption
}

type demoProduct struct {
	name          string
	description   string
	price         string
	originalPrice string
	image         string
	category      string
	isNew         bool
	isOnSale      bool
	stock         int
	groups        []demoGroup
}

var demoCatalog = []demoProduct{
	{
		name:        "Classic Cotton Tee",
		description: "Heavyweight cotton tee with a relaxed fit.",
		price:       "19.99", originalPrice: "24.99",
		category: "Apparel", isOnSale: true, stock: 120,
		groups: []demoGroup{
			{variantType: "Color", options: []demoOption{{name: "Black"}, {name: "White"}, {name: "Navy"}}},
			{variantType: "Size", options: []demoOption{{name: "S"}, {name: "M"}, {name: "L"}, {name: "XL"}}},
		},
	},
	{
		name:        "Everyday Canvas Tote",
		description: "Sturdy canvas tote with an inside pocket.",
		price:       "14.50",
		category:    "Accessories", isNew: true, stock: 60,
		groups: []demoGroup{
			{variantType: "Color", options: []demoOption{{name: "Natural"}, {name: "Olive"}}},
		},
	},
	{
		name:        "Stoneware Mug",
		description: "Hand-glazed 350 ml mug.",
		price:       "12.00",
		category:    "Home", stock: 45,
		groups: []demoGroup{
			{variantType: "Material", options: []demoOption{{name: "Matte"}, {name: "Gloss"}}},
		},
	},
	{
		name:     "Merino Beanie",
		price:    "29.00",
		category: "Apparel", isNew: true, stock: 0,
	},
}

// SeedCatalog inserts the demo catalog when the products table is empty.
// Products without artwork, and their colour options, get generated
// placeholders on the default storage disk.
func SeedCatalog(ctx context.Context, db *gorm.DB) error {
	products := repositories.NewProductRepository(db)
	n, err := products.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		logger.WithCtx(ctx).Info("catalog already seeded, skipping", "products", n)
		return nil
	}

	types, err := repositories.NewVariantTypeRepository(db).ByName(ctx)
	if err != nil {
		return err
	}
	art, err := placeholder.NewGenerator(storage.Default()).EnsureAll(ctx, placeholderNames(demoCatalog), placeholderWorkers)
	if err != nil {
		return err
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := repositories.NewProductRepository(tx)
		for _, demo := range demoCatalog {
			p, err := buildProduct(demo, types, art)
			if err != nil {
				return err
			}
			if err := repo.Create(ctx, p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.WithCtx(ctx).Info("catalog seeded", "products", len(demoCatalog))
	event.Fire(ctx, event.CatalogChanged, len(demoCatalog))
	return nil
}

const placeholderWorkers = 4

// placeholderNames lists the artwork the demo catalog is missing: products
// without an image and colour options without a swatch.
func placeholderNames(catalog []demoProduct) []string {
	var names []string
	for _, demo := range catalog {
		if demo.image == "" {
			names = append(names, demo.name)
		}
		for _, g := range demo.groups {
			if g.variantType != "Color" {
				continue
			}
			bare := collection.Filter(g.options, func(o demoOption) bool { return o.image == "" })
			for _, o := range bare {
				names = append(names, demo.name+" "+o.name)
			}
		}
	}
	return names
}

func buildProduct(demo demoProduct, types map[string]models.VariantType, art map[string]string) (*models.Product, error) {
	price, err := decimal.NewFromString(demo.price)
	if err != nil {
		return nil, fmt.Errorf("seeders: %s price: %w", demo.name, err)
	}

	image := demo.image
	if image == "" {
		image = art[demo.name]
	}

	p := &models.Product{
		Name:     demo.name,
		Price:    price,
		Image:    &image,
		Category: optional(demo.category),
		IsNew:    &demo.isNew,
		IsOnSale: &demo.isOnSale,
		Stock:    &demo.stock,
	}
	p.Description = optional(demo.description)
	if demo.originalPrice != "" {
		orig, err := decimal.NewFromString(demo.originalPrice)
		if err != nil {
			return nil, fmt.Errorf("seeders: %s original price: %w", demo.name, err)
		}
		p.OriginalPrice = decimal.NewNullDecimal(orig)
	}

	for gi, g := range demo.groups {
		vt, ok := types[g.variantType]
		if !ok {
			return nil, fmt.Errorf("seeders: variant type %q is not seeded", g.variantType)
		}
		variant := models.ProductVariant{VariantTypeID: vt.ID, Position: gi}
		for oi, o := range g.options {
			img := o.image
			if img == "" && g.variantType == "Color" {
				img = art[demo.name+" "+o.name]
			}
			variant.Options = append(variant.Options, models.VariantOption{
				Name:     o.name,
				Image:    optional(img),
				Position: oi,
			})
		}
		p.Variants = append(p.Variants, variant)
	}
	return p, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
