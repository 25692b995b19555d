package model

import (
	"time"

	"github.com/google/uuid"
)

// CustomerProfileModel is the GORM-specific struct for the 'customer_profiles'
// table. The primary key is the auth provider's user id, so the row is keyed
// one-to-one with the external identity.
type CustomerProfileModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Phone     string    `gorm:"type:varchar(32)"`
	Commune   string    `gorm:"type:varchar(100);not null"`
	FCMToken  string    `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CustomerProfileModel) TableName() string {
	return "customer_profiles"
}
