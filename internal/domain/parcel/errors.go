package parcel

import "errors"

var (
	ErrParcelNotFound          = errors.New("parcel not found")
	ErrDuplicateTrackingNumber = errors.New("tracking number already in use")
	ErrInvalidStatus           = errors.New("invalid parcel status")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrUnknownOwner            = errors.New("owner does not exist")
)
