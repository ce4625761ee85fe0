package leads

import "errors"

var (
	// ErrMalformedPayload is returned when an inbound document is not valid JSON.
	ErrMalformedPayload = errors.New("malformed payload")
)
