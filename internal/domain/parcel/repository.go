package parcel

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for parcel repository operations
type Repository interface {
	Create(ctx context.Context, parcel *Parcel) error
	GetByID(ctx context.Context, parcelID uuid.UUID) (*Parcel, error)
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*Parcel, error)
	GetByTrackingAndOwner(ctx context.Context, trackingNumber string, ownerID uuid.UUID) (*Parcel, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Parcel, error)
	List(ctx context.Context) ([]*Parcel, error)

	// Update commits status and detail fields in a single write; either
	// all fields land or none do.
	Update(ctx context.Context, parcel *Parcel) error
	UpdateConsolidate(ctx context.Context, parcelID uuid.UUID, consolidate bool) error
	Delete(ctx context.Context, parcelID uuid.UUID) error
}
