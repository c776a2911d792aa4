package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a catalog entry. Optional columns are pointers so the
// normalizer can tell "absent" from a zero value.
type Product struct {
	gorm.Model
	Name          string              `gorm:"size:255;not null;index"`
	Description   *string             `gorm:"type:text"`
	Price         decimal.Decimal     `gorm:"type:numeric(12,2);not null;default:0"`
	OriginalPrice decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	Image         *string             `gorm:"size:1024"`
	Category      *string             `gorm:"size:100;index"`
	IsNew         *bool
	IsOnSale      *bool
	Stock         *int

	Variants []ProductVariant `gorm:"constraint:OnDelete:CASCADE"`
}

// VariantType is a named axis of variation such as "Color". Unique by name.
type VariantType struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null;uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProductVariant groups one product's options along one variant type.
type ProductVariant struct {
	ID            uint `gorm:"primaryKey"`
	ProductID     uint `gorm:"not null;index"`
	VariantTypeID uint `gorm:"not null;index"`
	VariantType   VariantType
	Position      int `gorm:"not null;default:0"`

	Options []VariantOption `gorm:"constraint:OnDelete:CASCADE"`
}

type VariantOption struct {
	ID               uint    `gorm:"primaryKey"`
	ProductVariantID uint    `gorm:"not null;index"`
	Name             string  `gorm:"size:255;not null"`
	Image            *string `gorm:"size:1024"`
	Position         int     `gorm:"not null;default:0"`
}
