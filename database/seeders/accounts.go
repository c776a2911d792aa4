package seeders

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/config"
)

func provisioning(db *gorm.DB) *services.ProvisioningService {
	return services.NewProvisioningService(
		repositories.NewUserRepository(db),
		repositories.NewVariantTypeRepository(db),
	)
}

// SeedAccounts provisions the administrator and the demo shopper from
// ADMIN_* and DEMO_USER_* config.
func SeedAccounts(ctx context.Context, db *gorm.DB) error {
	svc := provisioning(db)
	specs := []services.AccountSpec{
		{
			Email:    config.AdminEmail(),
			Password: config.AdminPassword(),
			Name:     config.AdminName(),
			Role:     models.RoleAdmin,
		},
		{
			Email:    config.DemoUserEmail(),
			Password: config.DemoUserPassword(),
			Name:     config.DemoUserName(),
			Role:     models.RoleUser,
		},
	}
	for _, spec := range specs {
		if _, err := svc.EnsureAccount(ctx, spec); err != nil {
			return err
		}
	}
	return nil
}

// SeedVariantTypes upserts the default variant taxonomy.
func SeedVariantTypes(ctx context.Context, db *gorm.DB) error {
	return provisioning(db).EnsureVariantTypes(ctx, services.DefaultVariantTypes...)
}
