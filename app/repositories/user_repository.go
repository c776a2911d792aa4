package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/orm"
)

// UserRepository handles database operations for User.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail looks up a user by their email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := orm.New(ctx, r.db).Model(&models.User{}).Where("email = ?", email).First(&user)
	return user, notFound(err)
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	err := orm.New(ctx, r.db).Model(&models.User{}).Where("id = ?", id).First(&user)
	return user, notFound(err)
}

// Create persists a new user record.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("repositories: create user %s: %w", user.Email, err)
	}
	return nil
}

// Paginate returns one page of users ordered by ID.
func (r *UserRepository) Paginate(ctx context.Context, page, perPage int) ([]models.User, orm.Pagination, error) {
	var users []models.User
	p, err := orm.New(ctx, r.db).Model(&models.User{}).Order("id ASC").Paginate(page, perPage, &users)
	if err != nil {
		return nil, p, fmt.Errorf("repositories: paginate users: %w", err)
	}
	return users, p, nil
}
