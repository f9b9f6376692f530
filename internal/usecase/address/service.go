package address

import (
	"context"
	"time"

	domainAddress "casillero-backend/internal/domain/address"
	"casillero-backend/internal/logger"
	appErrors "casillero-backend/pkg/errors"
	"casillero-backend/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements the delivery address book use cases
type Service struct {
	addressRepo domainAddress.Repository
}

// NewService creates a new address service
func NewService(addressRepo domainAddress.Repository) *Service {
	return &Service{addressRepo: addressRepo}
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, req *CreateAddressRequest) (*AddressResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	a := &domainAddress.Address{
		UserID:     ownerID,
		Country:    req.Country,
		City:       req.City,
		StreetLine: req.StreetLine,
		PostalCode: req.PostalCode,
		Name:       req.Name,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := s.addressRepo.Create(ctx, a); err != nil {
		return nil, err
	}

	logger.Info("Address created",
		zap.String("address_id", a.ID.String()),
		zap.String("user_id", ownerID.String()),
		zap.String("event", "address_created"),
	)

	return ToAddressResponse(a), nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*AddressResponse, error) {
	addresses, err := s.addressRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return ToAddressResponseList(addresses), nil
}

// Delete removes an address. Only the owner or an admin may do so.
func (s *Service) Delete(ctx context.Context, requesterID uuid.UUID, isAdmin bool, addressID uuid.UUID) error {
	a, err := s.addressRepo.GetByID(ctx, addressID)
	if err != nil {
		return err
	}

	if a.UserID != requesterID && !isAdmin {
		return appErrors.ErrForbidden
	}

	if err := s.addressRepo.Delete(ctx, addressID); err != nil {
		return err
	}

	logger.Info("Address deleted",
		zap.String("address_id", addressID.String()),
		zap.String("event", "address_deleted"),
	)

	return nil
}
