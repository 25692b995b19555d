package model

import (
	"time"

	"github.com/google/uuid"
)

// CartLineModel is the GORM-specific struct for the 'cart_lines' table. Each
// (user, product) pair owns at most one line; the unique index backs the
// upsert used when quantities merge.
type CartLineModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product;index"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product"`
	QuantityKg float64   `gorm:"type:decimal(10,1);not null"`
	UnitPrice  float64   `gorm:"type:decimal(12,2);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (CartLineModel) TableName() string {
	return "cart_lines"
}
