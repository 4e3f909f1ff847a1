package webhook

import "errors"

var (
	// ErrEndpointNotFound indicates the registration is absent or
	// soft-deleted.
	ErrEndpointNotFound = errors.New("webhook endpoint not found")
	// ErrDeliveryNotFound indicates an unknown delivery ID.
	ErrDeliveryNotFound = errors.New("webhook delivery not found")
)
