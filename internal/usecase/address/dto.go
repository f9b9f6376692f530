package address

import (
	"time"

	domainAddress "casillero-backend/internal/domain/address"

	"github.com/google/uuid"
)

type CreateAddressRequest struct {
	Country    string  `json:"country" validate:"required,max=100"`
	City       string  `json:"city" validate:"required,max=100"`
	StreetLine string  `json:"street_line" validate:"required,max=255"`
	PostalCode *string `json:"postal_code" validate:"omitempty,max=20"`
	Name       string  `json:"name" validate:"required,max=100"`
}

type AddressResponse struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Country    string    `json:"country"`
	City       string    `json:"city"`
	StreetLine string    `json:"street_line"`
	PostalCode *string   `json:"postal_code,omitempty"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
}

func ToAddressResponse(a *domainAddress.Address) *AddressResponse {
	return &AddressResponse{
		ID:         a.ID,
		UserID:     a.UserID,
		Country:    a.Country,
		City:       a.City,
		StreetLine: a.StreetLine,
		PostalCode: a.PostalCode,
		Name:       a.Name,
		CreatedAt:  a.CreatedAt,
	}
}

func ToAddressResponseList(addresses []*domainAddress.Address) []*AddressResponse {
	responses := make([]*AddressResponse, len(addresses))
	for i, a := range addresses {
		responses[i] = ToAddressResponse(a)
	}
	return responses
}
