package address

import (
	"strings"

	"github.com/MrJamesThe3rd/rounds/internal/validation"
)

// Address is a postal address shared by customers (invoice address) and jobs
// (service address). Addresses are unique by house, street and postcode.
type Address struct {
	ID           int64
	HouseNumName string
	StreetName   string
	Postcode     string
	Latitude     *string
	Longitude    *string
}

func (a *Address) String() string {
	parts := make([]string, 0, 2)

	if line := strings.TrimSpace(a.HouseNumName + " " + a.StreetName); line != "" {
		parts = append(parts, line)
	}

	if a.Postcode != "" {
		parts = append(parts, a.Postcode)
	}

	return strings.Join(parts, ", ")
}

// Params are the free-text fields an address is resolved from.
type Params struct {
	HouseNumName string  `json:"house_num_name" validate:"required,max=100"`
	StreetName   string  `json:"street_name" validate:"required,max=100"`
	Postcode     string  `json:"postcode" validate:"max=100"`
	Latitude     *string `json:"latitude"`
	Longitude    *string `json:"longitude"`
}

// Normalize trims surrounding whitespace so that the de-duplication key is
// not sensitive to stray spaces in form input.
func (p Params) Normalize() Params {
	p.HouseNumName = strings.TrimSpace(p.HouseNumName)
	p.StreetName = strings.TrimSpace(p.StreetName)
	p.Postcode = strings.TrimSpace(p.Postcode)
	p.Latitude = trimOptional(p.Latitude)
	p.Longitude = trimOptional(p.Longitude)

	return p
}

// IsZero reports whether no address field was supplied at all.
func (p Params) IsZero() bool {
	n := p.Normalize()
	return n.HouseNumName == "" && n.StreetName == "" && n.Postcode == ""
}

// Validate requires house and street; postcode is optional.
func (p Params) Validate(prefix string) validation.Violations {
	v := validation.Violations{}
	v.Merge(prefix, validation.Struct(p.Normalize()))

	return v
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}

	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}

	return &t
}
