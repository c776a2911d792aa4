package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/migration"
)

func init() {
	migration.Register("20260101000001_create_catalog_tables", &CreateCatalogTables{})
}

// CreateCatalogTables creates products, variant types, product variants and
// variant options. Down drops them children first.
type CreateCatalogTables struct{}

func (m *CreateCatalogTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.VariantType{},
		&models.Product{},
		&models.ProductVariant{},
		&models.VariantOption{},
	)
}

func (m *CreateCatalogTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(
		&models.VariantOption{},
		&models.ProductVariant{},
		&models.Product{},
		&models.VariantType{},
	)
}
