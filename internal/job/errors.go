package job

import "errors"

var (
	ErrNotFound         = errors.New("job not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrInvalidReference = errors.New("job references a missing zone, address or payment type")
)
