package models

import (
	"time"

	"github.com/google/uuid"
)

// AddressModel represents the database model for Address
type AddressModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Country    string    `gorm:"type:varchar(100);not null"`
	City       string    `gorm:"type:varchar(100);not null"`
	StreetLine string    `gorm:"type:varchar(200);not null"`
	PostalCode *string   `gorm:"type:varchar(20)"`
	Name       string    `gorm:"type:varchar(100);not null;default:''"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`

	// Relations
	User *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (AddressModel) TableName() string {
	return "addresses"
}
