package product

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for product repository operations
type Repository interface {
	Create(ctx context.Context, product *Product) error
	GetByID(ctx context.Context, productID uuid.UUID) (*Product, error)
	GetAll(ctx context.Context) ([]*Product, error)
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, productID uuid.UUID) error
}
