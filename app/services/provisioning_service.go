package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/logger"
)

// DefaultVariantTypes is the taxonomy seeded on every install.
var DefaultVariantTypes = []string{"Color", "Size", "Material"}

// AccountStore is what provisioning needs from the users table.
type AccountStore interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
	Create(ctx context.Context, user *models.User) error
}

// VariantTypeStore upserts variant types by name.
type VariantTypeStore interface {
	Upsert(ctx context.Context, names ...string) error
}

// AccountSpec describes a singleton account to provision.
type AccountSpec struct {
	Email    string
	Password string
	Name     string
	Role     string
	Phone    *string
	Address  *string
}

func (a AccountSpec) validate() error {
	switch {
	case strings.TrimSpace(a.Email) == "":
		return errors.New("email is required")
	case a.Password == "":
		return errors.New("password is required")
	case a.Role != models.RoleUser && a.Role != models.RoleAdmin:
		return fmt.Errorf("unknown role %q", a.Role)
	}
	return nil
}

// ProvisioningService creates setup data idempotently: running any of its
// operations twice leaves the database as after the first run.
type ProvisioningService struct {
	accounts AccountStore
	types    VariantTypeStore
	now      func() time.Time
}

func NewProvisioningService(accounts AccountStore, types VariantTypeStore) *ProvisioningService {
	return &ProvisioningService{accounts: accounts, types: types, now: time.Now}
}

// EnsureAccount creates the account unless one with the same email exists.
// created reports whether a row was inserted.
func (s *ProvisioningService) EnsureAccount(ctx context.Context, spec AccountSpec) (created bool, err error) {
	if err := spec.validate(); err != nil {
		return false, fmt.Errorf("services: ensure account: %w", err)
	}
	email := strings.ToLower(strings.TrimSpace(spec.Email))
	log := logger.WithCtx(ctx).With("email", email, "role", spec.Role)

	exists, err := s.exists(ctx, email)
	if err != nil {
		return false, err
	}
	if exists {
		log.Info("account already exists, skipping")
		return false, nil
	}

	hash, err := auth.HashPassword(spec.Password)
	if err != nil {
		return false, fmt.Errorf("services: ensure account %s: %w", email, err)
	}

	joined := s.now()
	user := &models.User{
		Name:     spec.Name,
		Email:    email,
		Password: hash,
		Role:     spec.Role,
		Phone:    spec.Phone,
		Address:  spec.Address,
		JoinDate: &joined,
	}
	if err := s.accounts.Create(ctx, user); err != nil {
		// a concurrent run may have inserted it after our lookup
		if again, lookupErr := s.exists(ctx, email); lookupErr == nil && again {
			log.Info("account created concurrently, skipping")
			return false, nil
		}
		return false, fmt.Errorf("services: ensure account %s: %w", email, err)
	}

	log.Info("account created", "id", user.ID)
	return true, nil
}

func (s *ProvisioningService) exists(ctx context.Context, email string) (bool, error) {
	_, err := s.accounts.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, repositories.ErrNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("services: lookup account %s: %w", email, err)
	}
}

// EnsureVariantTypes inserts the missing names; existing rows are untouched.
func (s *ProvisioningService) EnsureVariantTypes(ctx context.Context, names ...string) error {
	if err := s.types.Upsert(ctx, names...); err != nil {
		return fmt.Errorf("services: ensure variant types: %w", err)
	}
	logger.WithCtx(ctx).Info("variant types ensured", "names", names)
	return nil
}
