package parcel

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status represents the position of a parcel in the forwarding lifecycle.
type Status string

const (
	StatusComprado         Status = "COMPRADO"          // Purchased at the store
	StatusDespachadoTienda Status = "DESPACHADO_TIENDA" // Shipped by the store
	StatusEnEnvio          Status = "EN_ENVIO"          // Dispatched from the Miami warehouse (default)
	StatusEnBodegaMiami    Status = "EN_BODEGA_MIAMI"   // Arrived at the Miami warehouse
	StatusEnAeropuerto     Status = "EN_AEROPUERTO"     // Arrived at the Bogota airport
	StatusEnColombia       Status = "EN_COLOMBIA"       // At the Medellin warehouse
	StatusLlego            Status = "LLEGO"             // Out for final delivery
)

// DefaultStatus is the initial status of self-reported (pre-alert) parcels.
const DefaultStatus = StatusEnEnvio

var statusLabels = map[Status]string{
	StatusComprado:         "Comprado en Tienda",
	StatusDespachadoTienda: "Despachado por Tienda",
	StatusEnEnvio:          "Despachado Bodega Miami",
	StatusEnBodegaMiami:    "Llegó a Bodega Miami",
	StatusEnAeropuerto:     "Llegó Aeropuerto Bogotá",
	StatusEnColombia:       "En Bodega Medellín",
	StatusLlego:            "Despachado a tú Dirección",
}

// AllStatuses returns the lifecycle statuses in order.
func AllStatuses() []Status {
	return []Status{
		StatusComprado,
		StatusDespachadoTienda,
		StatusEnEnvio,
		StatusEnBodegaMiami,
		StatusEnAeropuerto,
		StatusEnColombia,
		StatusLlego,
	}
}

// Label returns the human-readable (customer-facing) name of the status.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// ParseStatus converts a wire value into a Status.
func ParseStatus(value string) (Status, error) {
	s := Status(value)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, value)
	}
	return s, nil
}

// Parcel represents a physical package tracked from pre-alert or warehouse
// receipt through final delivery. Ownership is fixed at creation.
type Parcel struct {
	ID      uuid.UUID
	OwnerID uuid.UUID

	Name           string
	Price          string
	TrackingNumber string
	Weight         string
	Status         Status

	// PreAlert is true when the customer self-reported the parcel before
	// it physically reached the warehouse.
	PreAlert bool

	// Consolidate marks the customer's request to hold the parcel and
	// ship it together with others.
	Consolidate bool

	ReceivedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
