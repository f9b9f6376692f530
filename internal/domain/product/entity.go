package product

import (
	"time"

	"github.com/google/uuid"
)

// Product is a browsable catalog item. It carries no relationship to users
// or parcels; the image is an opaque reference resolved by the frontend.
type Product struct {
	ID uuid.UUID

	Name     string
	Price    string
	Weight   string
	Image    *string
	Category string

	CreatedAt time.Time
	UpdatedAt time.Time
}
