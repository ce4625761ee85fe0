package ledger

import "errors"

var (
	// ErrNotFound is returned by a Backend when no object exists at a key.
	ErrNotFound = errors.New("ledger: object not found")

	// ErrCorruptLedger is returned when a stored ledger is not a JSON array.
	ErrCorruptLedger = errors.New("ledger: stored ledger is not a JSON array")

	// ErrInvalidDay is returned when a day key is not formatted YYYY-MM-DD.
	ErrInvalidDay = errors.New("ledger: day must be formatted YYYY-MM-DD")
)
