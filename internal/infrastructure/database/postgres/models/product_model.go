package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductModel represents the database model for Product
type ProductModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string    `gorm:"type:text;not null"`
	Price     string    `gorm:"type:varchar(50);not null"`
	Weight    string    `gorm:"type:varchar(50);not null;default:''"`
	Image     *string   `gorm:"type:text"`
	Category  string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (ProductModel) TableName() string {
	return "products"
}
