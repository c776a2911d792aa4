package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/migration"
	"github.com/shashiranjanraj/storefront/pkg/testkit"
)

func TestMigrateAndRollback(t *testing.T) {
	db := testkit.OpenDB(t)
	runner := migration.New(db)

	ran, err := runner.Run()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"20260101000000_create_users_table",
		"20260101000001_create_catalog_tables",
	}, ran)

	m := db.Migrator()
	for _, table := range []interface{}{&models.User{}, &models.Product{}, &models.VariantType{}, &models.ProductVariant{}, &models.VariantOption{}} {
		assert.True(t, m.HasTable(table), "%T", table)
	}

	again, err := runner.Run()
	require.NoError(t, err)
	assert.Empty(t, again)

	undone, err := runner.Rollback()
	require.NoError(t, err)
	assert.Len(t, undone, 2)
	assert.False(t, m.HasTable(&models.Product{}))
	assert.False(t, m.HasTable(&models.User{}))

	status, err := runner.Status()
	require.NoError(t, err)
	for _, s := range status {
		assert.False(t, s.Ran, s.Name)
	}
}
