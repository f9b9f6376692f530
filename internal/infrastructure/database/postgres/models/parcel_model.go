package models

import (
	"time"

	"github.com/google/uuid"
)

// ParcelModel represents the database model for Parcel
type ParcelModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OwnerID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	Name           string     `gorm:"type:varchar(100);not null"`
	Price          string     `gorm:"type:varchar(50);not null"`
	TrackingNumber string     `gorm:"type:varchar(100);not null;uniqueIndex"`
	Weight         string     `gorm:"type:varchar(50);not null"`
	Status         string     `gorm:"type:varchar(30);not null;default:'EN_ENVIO';index"`
	PreAlert       bool       `gorm:"default:false;not null"`
	Consolidate    bool       `gorm:"default:false;not null"`
	ReceivedAt     *time.Time `gorm:"type:timestamptz"`
	CreatedAt      time.Time  `gorm:"not null;index"`
	UpdatedAt      time.Time  `gorm:"not null"`

	// Relations
	Owner *UserModel `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
}

func (ParcelModel) TableName() string {
	return "parcels"
}
