package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/orm"
)

// ErrInvalidCredentials is returned for an unknown email or a wrong password.
var ErrInvalidCredentials = errors.New("services: invalid credentials")

// checkPassword is swapped in tests to observe comparisons.
var checkPassword = auth.CheckPassword

// missingUserHash is compared against on unknown emails so that path costs
// the same bcrypt work as a wrong password.
var missingUserHash = sync.OnceValue(func() string {
	h, _ := auth.HashPassword("storefront: no such account")
	return h
})

type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService(users *repositories.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Login checks the password and issues a signed token for the account.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, models.User, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, repositories.ErrNotFound) {
		checkPassword(missingUserHash(), password)
		return "", models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", models.User{}, fmt.Errorf("services: login: %w", err)
	}

	if !checkPassword(user.Password, password) {
		return "", models.User{}, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", models.User{}, err
	}
	return token, user, nil
}

// Profile returns the account behind a token.
func (s *AuthService) Profile(ctx context.Context, userID uint) (models.User, error) {
	return s.users.FindByID(ctx, userID)
}

// Users lists accounts page by page for the admin area.
func (s *AuthService) Users(ctx context.Context, page, perPage int) ([]models.User, orm.Pagination, error) {
	return s.users.Paginate(ctx, page, perPage)
}
