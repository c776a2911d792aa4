package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/collection"
	"github.com/shashiranjanraj/storefront/pkg/orm"
)

type VariantTypeRepository struct {
	db *gorm.DB
}

func NewVariantTypeRepository(db *gorm.DB) *VariantTypeRepository {
	return &VariantTypeRepository{db: db}
}

// Upsert inserts the names that do not exist yet. Existing rows are left
// untouched.
func (r *VariantTypeRepository) Upsert(ctx context.Context, names ...string) error {
	if len(names) == 0 {
		return nil
	}
	rows := collection.Map(names, func(n string) models.VariantType { return models.VariantType{Name: n} })

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&rows).Error
	if err != nil {
		return fmt.Errorf("repositories: upsert variant types: %w", err)
	}
	return nil
}

// ByName returns every variant type keyed by name.
func (r *VariantTypeRepository) ByName(ctx context.Context) (map[string]models.VariantType, error) {
	var rows []models.VariantType
	if err := orm.New(ctx, r.db).Model(&models.VariantType{}).Order("id ASC").Get(&rows); err != nil {
		return nil, fmt.Errorf("repositories: list variant types: %w", err)
	}
	return collection.KeyBy(rows, func(t models.VariantType) string { return t.Name }), nil
}
