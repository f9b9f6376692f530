package parcel

import (
	"time"

	domainParcel "casillero-backend/internal/domain/parcel"

	"github.com/google/uuid"
)

// CreateByAdminRequest registers a physically received package against a
// known user. Staff pick the initial status explicitly.
type CreateByAdminRequest struct {
	OwnerID        uuid.UUID  `json:"owner_id" validate:"required"`
	Name           string     `json:"name" validate:"required,max=100"`
	Price          string     `json:"price" validate:"required,max=50"`
	TrackingNumber string     `json:"tracking_number" validate:"required,max=100"`
	Weight         string     `json:"weight" validate:"required,max=50"`
	Status         string     `json:"status" validate:"required,parcel_status"`
	ReceivedAt     *time.Time `json:"received_at"`
}

// CreatePreAlertRequest is the customer's self-report of an inbound package.
// Status is optional and defaults to the lifecycle default.
type CreatePreAlertRequest struct {
	Name           string `json:"name" validate:"required,max=100"`
	TrackingNumber string `json:"tracking_number" validate:"required,max=100"`
	Price          string `json:"price" validate:"required,max=50"`
	Weight         string `json:"weight" validate:"required,max=50"`
	Status         string `json:"status" validate:"omitempty,parcel_status"`
}

// UpdateStatusAndDetailsRequest mutates status and detail fields in one
// atomic write. ClearPreAlert lets staff reconcile a pre-alerted package
// once its real details are known.
type UpdateStatusAndDetailsRequest struct {
	NewStatus      string     `json:"new_status" validate:"required,parcel_status"`
	Name           string     `json:"name" validate:"required,max=100"`
	Price          string     `json:"price" validate:"required,max=50"`
	TrackingNumber string     `json:"tracking_number" validate:"required,max=100"`
	Weight         string     `json:"weight" validate:"required,max=50"`
	ReceivedAt     *time.Time `json:"received_at"`
	ClearPreAlert  bool       `json:"clear_pre_alert"`
}

type ConsolidateRequest struct {
	Consolidate bool `json:"consolidate"`
}

// TrackRequest is the anonymous tracking lookup; both fields must match the
// same package for anything to be returned.
type TrackRequest struct {
	Email          string `json:"email" validate:"required,email"`
	TrackingNumber string `json:"tracking_number" validate:"required"`
}

type ParcelResponse struct {
	ID             uuid.UUID  `json:"id"`
	OwnerID        uuid.UUID  `json:"owner_id"`
	Name           string     `json:"name"`
	Price          string     `json:"price"`
	TrackingNumber string     `json:"tracking_number"`
	Weight         string     `json:"weight"`
	Status         string     `json:"status"`
	StatusLabel    string     `json:"status_label"`
	PreAlert       bool       `json:"pre_alert"`
	Consolidate    bool       `json:"consolidate"`
	ReceivedAt     *time.Time `json:"received_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func ToParcelResponse(p *domainParcel.Parcel) *ParcelResponse {
	return &ParcelResponse{
		ID:             p.ID,
		OwnerID:        p.OwnerID,
		Name:           p.Name,
		Price:          p.Price,
		TrackingNumber: p.TrackingNumber,
		Weight:         p.Weight,
		Status:         string(p.Status),
		StatusLabel:    p.Status.Label(),
		PreAlert:       p.PreAlert,
		Consolidate:    p.Consolidate,
		ReceivedAt:     p.ReceivedAt,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func ToParcelResponseList(parcels []*domainParcel.Parcel) []*ParcelResponse {
	responses := make([]*ParcelResponse, len(parcels))
	for i, p := range parcels {
		responses[i] = ToParcelResponse(p)
	}
	return responses
}
