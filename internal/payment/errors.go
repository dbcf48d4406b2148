package payment

import "errors"

var (
	ErrNotFound    = errors.New("job history entry not found")
	ErrAlreadyPaid = errors.New("job history entry already paid")
	ErrInvalidType = errors.New("invalid payment type")
)
