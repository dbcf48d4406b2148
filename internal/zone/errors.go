package zone

import "errors"

var (
	ErrNotFound      = errors.New("zone not found")
	ErrDuplicateName = errors.New("zone name already exists")
)
