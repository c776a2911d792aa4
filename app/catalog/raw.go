package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// RawID is a store identifier. It decodes from either a JSON number or a
// JSON string, so normalized output can be fed back through Normalize.
type RawID string

// IDFromUint formats a primary key as a RawID.
func IDFromUint(id uint) RawID {
	return RawID(strconv.FormatUint(uint64(id), 10))
}

func (id *RawID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("catalog: id: %w", err)
		}
		*id = RawID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("catalog: id: %w", err)
	}
	*id = RawID(n.String())
	return nil
}

// RawProduct is one product as the store returns it, with its variant tree.
// Every pointer or slice field may be absent.
type RawProduct struct {
	ID            RawID             `json:"id"`
	Name          string            `json:"name"`
	Description   *string           `json:"description,omitempty"`
	Price         decimal.Decimal   `json:"price"`
	OriginalPrice *decimal.Decimal  `json:"originalPrice,omitempty"`
	Image         *string           `json:"image,omitempty"`
	Category      *string           `json:"category,omitempty"`
	IsNew         *bool             `json:"isNew,omitempty"`
	IsOnSale      *bool             `json:"isOnSale,omitempty"`
	Stock         *int              `json:"stock,omitempty"`
	CreatedAt     *time.Time        `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time        `json:"updatedAt,omitempty"`
	Variants      []RawVariantGroup `json:"variants,omitempty"`
}

type RawVariantGroup struct {
	Name    string      `json:"name"`
	Options []RawOption `json:"options,omitempty"`
}

type RawOption struct {
	ID    RawID   `json:"id"`
	Name  string  `json:"name"`
	Image *string `json:"image,omitempty"`
}
