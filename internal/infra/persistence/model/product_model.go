package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductModel mirrors the 'produits' table.
type ProductModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Price       float64   `gorm:"not null"`
	Description string    `gorm:"type:text"`
	Category    string    `gorm:"type:varchar(50);not null;index"`
	ImagePath   string    `gorm:"type:varchar(255)"`
	OrderCount  int       `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "produits"
}
