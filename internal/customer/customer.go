package customer

import (
	"strings"
	"time"

	"github.com/MrJamesThe3rd/rounds/internal/address"
	"github.com/MrJamesThe3rd/rounds/internal/validation"
)

// Customer is a person or household the round serves.
type Customer struct {
	ID             int64
	OrgID          *int64
	AddressID      *int64
	Forename       string
	Surname        string
	Email          string
	Telephone      string
	Timestamp      time.Time
	InvoiceAddress *address.Address // Loaded via JOIN
}

func (c *Customer) Name() string {
	return strings.TrimSpace(c.Forename + " " + c.Surname)
}

// Params holds the editable contact fields of a customer.
type Params struct {
	Forename  string `json:"forename" validate:"max=45"`
	Surname   string `json:"surname" validate:"max=45"`
	Email     string `json:"email" validate:"max=45"`
	Telephone string `json:"telephone" validate:"omitempty,nospace,telephone,max=20"`
}

func (p Params) Normalize() Params {
	p.Forename = strings.TrimSpace(p.Forename)
	p.Surname = strings.TrimSpace(p.Surname)
	p.Email = strings.TrimSpace(p.Email)
	p.Telephone = strings.TrimSpace(p.Telephone)

	return p
}

// Validate checks p after normalisation. Every field is optional, but a
// telephone number must be digits only.
func (p Params) Validate() validation.Violations {
	return validation.Struct(p.Normalize())
}

// ImportRow is one customer read from an import file, with an optional
// invoice address.
type ImportRow struct {
	Line    int
	Params  Params
	Address *address.Params
}

type ListFilter struct {
	Limit int
}
