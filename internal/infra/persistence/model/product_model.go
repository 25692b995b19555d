// Package model holds the GORM-specific structs mapped to database tables.
package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductModel is the GORM-specific struct for the 'products' table.
// Prices are stored in F CFA per kilogram, stock in kilograms.
type ProductModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Price       float64   `gorm:"type:decimal(12,2);not null"`
	Stock       float64   `gorm:"type:decimal(10,1);not null;default:0"`
	Active      bool      `gorm:"not null;default:true;index"`
	Category    string    `gorm:"type:varchar(100)"`
	Description string    `gorm:"type:text"`
	ImageURL    string    `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
