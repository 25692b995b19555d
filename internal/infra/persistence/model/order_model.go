package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OrderModel is the GORM-specific struct for the 'orders' table. Line items
// are stored as a JSONB snapshot: they are immutable once written and never
// queried individually.
type OrderModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Reference string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`

	CustomerName    string `gorm:"type:varchar(255);not null"`
	CustomerPhone   string `gorm:"type:varchar(32)"`
	CustomerCommune string `gorm:"type:varchar(100);not null"`

	Items datatypes.JSON `gorm:"type:jsonb;not null"`
	Total int64          `gorm:"not null"`

	AdminStatus    string `gorm:"type:varchar(32);not null;index"`
	CustomerStatus string `gorm:"type:varchar(32);not null"`
	PenaltyActive  bool   `gorm:"not null;default:false"`

	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}
