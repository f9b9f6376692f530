package parcel

import "fmt"

// Lifecycle positions, used when forward-only enforcement is on.
var statusOrder = map[Status]int{
	StatusComprado:         0,
	StatusDespachadoTienda: 1,
	StatusEnEnvio:          2,
	StatusEnBodegaMiami:    3,
	StatusEnAeropuerto:     4,
	StatusEnColombia:       5,
	StatusLlego:            6,
}

// ValidateTransition checks whether a status write is allowed under the
// configured policy. The permissive policy (enforceOrder=false) accepts any
// write between known statuses, matching how staff have historically used
// status updates to correct data-entry mistakes. The strict policy only
// accepts forward moves along the lifecycle; re-setting the current status
// is always a no-op and allowed.
func ValidateTransition(current, next Status, enforceOrder bool) error {
	if !next.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, next)
	}
	if !enforceOrder || current == next {
		return nil
	}

	currentPos, ok := statusOrder[current]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, current)
	}
	if statusOrder[next] < currentPos {
		return fmt.Errorf("%w: cannot move from %s to %s", ErrInvalidStatusTransition, current, next)
	}

	return nil
}
