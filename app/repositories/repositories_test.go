package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/catalog"
	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/testkit"
)

func ptr[T any](v T) *T { return &v }

func openDB(t *testing.T) *gorm.DB {
	return testkit.OpenDB(t,
		&models.User{},
		&models.Product{},
		&models.VariantType{},
		&models.ProductVariant{},
		&models.VariantOption{},
	)
}

func TestFindProductsWithVariantsOrdering(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)

	types := NewVariantTypeRepository(db)
	require.NoError(t, types.Upsert(ctx, "Color", "Size"))
	byName, err := types.ByName(ctx)
	require.NoError(t, err)

	products := NewProductRepository(db)
	tee := &models.Product{
		Name:          "Tee",
		Price:         decimal.RequireFromString("19.99"),
		OriginalPrice: decimal.NewNullDecimal(decimal.RequireFromString("24.99")),
		Category:      ptr("Tops"),
		Stock:         ptr(5),
		Variants: []models.ProductVariant{
			{VariantTypeID: byName["Size"].ID, Position: 2, Options: []models.VariantOption{
				{Name: "L", Position: 1}, {Name: "S", Position: 0},
			}},
			{VariantTypeID: byName["Color"].ID, Position: 1, Options: []models.VariantOption{
				{Name: "Red", Image: ptr("red.png"), Position: 0},
			}},
		},
	}
	mug := &models.Product{Name: "Mug", Price: decimal.NewFromInt(8)}
	gone := &models.Product{Name: "Gone", Price: decimal.NewFromInt(1)}
	for _, p := range []*models.Product{tee, mug, gone} {
		require.NoError(t, products.Create(ctx, p))
	}
	require.NoError(t, db.Delete(gone).Error)

	raws, err := products.FindProductsWithVariants(ctx)
	require.NoError(t, err)
	require.Len(t, raws, 2)

	first := raws[0]
	assert.Equal(t, "Tee", first.Name)
	assert.Equal(t, catalog.IDFromUint(tee.ID), first.ID)
	assert.True(t, first.Price.Equal(decimal.RequireFromString("19.99")))
	require.NotNil(t, first.OriginalPrice)
	assert.True(t, first.OriginalPrice.Equal(decimal.RequireFromString("24.99")))
	assert.Equal(t, "Tops", *first.Category)
	assert.Nil(t, first.Image)
	assert.Nil(t, first.IsNew)
	require.NotNil(t, first.CreatedAt)

	require.Len(t, first.Variants, 2)
	assert.Equal(t, "Color", first.Variants[0].Name)
	assert.Equal(t, "Size", first.Variants[1].Name)
	require.Len(t, first.Variants[1].Options, 2)
	assert.Equal(t, "S", first.Variants[1].Options[0].Name)
	assert.Equal(t, "L", first.Variants[1].Options[1].Name)
	assert.Equal(t, "red.png", *first.Variants[0].Options[0].Image)

	assert.Equal(t, "Mug", raws[1].Name)
	assert.Nil(t, raws[1].OriginalPrice)
	assert.Empty(t, raws[1].Variants)

	n, err := products.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestFindProductsWithVariantsHonoursContext(t *testing.T) {
	db := openDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProductRepository(db).FindProductsWithVariants(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestVariantTypeUpsertIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	repo := NewVariantTypeRepository(db)

	require.NoError(t, repo.Upsert(ctx, "Color", "Size", "Material"))
	before, err := repo.ByName(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.Upsert(ctx, "Color", "Size", "Material", "Finish"))
	after, err := repo.ByName(ctx)
	require.NoError(t, err)

	assert.Len(t, after, 4)
	assert.Equal(t, before["Color"].ID, after["Color"].ID)
	assert.NoError(t, repo.Upsert(ctx))
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	repo := NewUserRepository(db)

	_, err := repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	joined := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		u := &models.User{Name: email, Email: email, Password: "hash", Role: models.RoleUser}
		if i == 0 {
			u.JoinDate = &joined
		}
		require.NoError(t, repo.Create(ctx, u))
	}

	dup := &models.User{Name: "dup", Email: "a@example.com", Password: "hash", Role: models.RoleUser}
	assert.Error(t, repo.Create(ctx, dup))

	u, err := repo.FindByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	byID, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", byID.Email)
	require.NotNil(t, byID.JoinDate)
	assert.True(t, joined.Equal(*byID.JoinDate))

	_, err = repo.FindByID(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)

	page, p, err := repo.Paginate(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), p.Total)
	assert.Equal(t, 2, p.LastPage)
	require.Len(t, page, 1)
	assert.Equal(t, "c@example.com", page[0].Email)
}
