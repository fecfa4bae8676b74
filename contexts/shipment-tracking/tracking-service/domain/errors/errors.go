package errors

import "errors"

var (
	ErrShipmentNotFound       = errors.New("shipment not found")
	ErrTrackingNumberConflict = errors.New("tracking number already exists")
	ErrNoTrackingEvents       = errors.New("shipment has no tracking events")
	ErrInvalidShipmentInput   = errors.New("invalid shipment input")
	ErrInvalidTrackingEvent   = errors.New("invalid tracking event")
	ErrForbidden              = errors.New("forbidden")
)
