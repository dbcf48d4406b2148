package respond

import "github.com/MrJamesThe3rd/rounds/internal/address"

// Address is the JSON form of an address, used in requests and responses.
type Address struct {
	ID           int64   `json:"id,omitempty"`
	HouseNumName string  `json:"house_num_name"`
	StreetName   string  `json:"street_name"`
	Postcode     string  `json:"postcode"`
	Latitude     *string `json:"latitude,omitempty"`
	Longitude    *string `json:"longitude,omitempty"`
}

func NewAddress(a *address.Address) *Address {
	if a == nil {
		return nil
	}

	return &Address{
		ID:           a.ID,
		HouseNumName: a.HouseNumName,
		StreetName:   a.StreetName,
		Postcode:     a.Postcode,
		Latitude:     a.Latitude,
		Longitude:    a.Longitude,
	}
}

func (a *Address) Params() *address.Params {
	if a == nil {
		return nil
	}

	return &address.Params{
		HouseNumName: a.HouseNumName,
		StreetName:   a.StreetName,
		Postcode:     a.Postcode,
		Latitude:     a.Latitude,
		Longitude:    a.Longitude,
	}
}
