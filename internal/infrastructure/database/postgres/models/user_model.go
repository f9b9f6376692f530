package models

import (
	"time"

	"github.com/google/uuid"
)

// UserModel represents the database model for User
type UserModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	FirstName      string    `gorm:"type:varchar(100);not null"`
	LastName       string    `gorm:"type:varchar(100);not null"`
	Email          string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	PhoneNumber    string    `gorm:"type:varchar(20);not null;uniqueIndex"`
	PasswordHashed string    `gorm:"type:varchar(255);not null"`
	IsAdmin        bool      `gorm:"default:false;not null"`
	CasilleroCode  string    `gorm:"type:varchar(20);not null"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

func (UserModel) TableName() string {
	return "users"
}
