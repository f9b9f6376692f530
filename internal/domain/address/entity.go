package address

import (
	"time"

	"github.com/google/uuid"
)

// Address is a delivery destination saved by a customer.
type Address struct {
	ID     uuid.UUID
	UserID uuid.UUID

	Country    string
	City       string
	StreetLine string
	PostalCode *string
	Name       string

	CreatedAt time.Time
	UpdatedAt time.Time
}
