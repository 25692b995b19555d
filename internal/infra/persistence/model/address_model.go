package model

import (
	"time"

	"github.com/google/uuid"
)

// LocalAddressModel is the GORM-specific struct for the 'local_addresses'
// table, the read-only directory mapping communes to pickup addresses.
type LocalAddressModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Commune   string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	Address   string    `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (LocalAddressModel) TableName() string {
	return "local_addresses"
}
