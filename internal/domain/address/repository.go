package address

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for address repository operations
type Repository interface {
	Create(ctx context.Context, address *Address) error
	GetByID(ctx context.Context, addressID uuid.UUID) (*Address, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Address, error)
	Delete(ctx context.Context, addressID uuid.UUID) error
}
