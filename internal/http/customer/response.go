package customer

import (
	"time"

	"github.com/MrJamesThe3rd/rounds/internal/customer"
	"github.com/MrJamesThe3rd/rounds/internal/http/respond"
	jobHandler "github.com/MrJamesThe3rd/rounds/internal/http/job"
	"github.com/MrJamesThe3rd/rounds/internal/job"
)

type Response struct {
	ID             int64            `json:"id"`
	OrgID          *int64           `json:"org_id"`
	AddressID      *int64           `json:"address_id"`
	Forename       string           `json:"forename"`
	Surname        string           `json:"surname"`
	Name           string           `json:"name"`
	Email          string           `json:"email"`
	Telephone      string           `json:"telephone"`
	Timestamp      time.Time        `json:"timestamp"`
	InvoiceAddress *respond.Address `json:"invoice_address"`
}

type detailResponse struct {
	Response
	Jobs []jobHandler.JobResponse `json:"jobs"`
}

func toResponse(c *customer.Customer) Response {
	return Response{
		ID:             c.ID,
		OrgID:          c.OrgID,
		AddressID:      c.AddressID,
		Forename:       c.Forename,
		Surname:        c.Surname,
		Name:           c.Name(),
		Email:          c.Email,
		Telephone:      c.Telephone,
		Timestamp:      c.Timestamp,
		InvoiceAddress: respond.NewAddress(c.InvoiceAddress),
	}
}

func ToResponseList(cs []*customer.Customer) []Response {
	resp := make([]Response, len(cs))
	for i, c := range cs {
		resp[i] = toResponse(c)
	}

	return resp
}

func toDetailResponse(c *customer.Customer, jobs []*job.Job) detailResponse {
	return detailResponse{
		Response: toResponse(c),
		Jobs:     jobHandler.ToResponseList(jobs),
	}
}

// legacyTimestamp is the timestamp layout of the /api/customers feed.
const legacyTimestamp = "2006-01-02 15:04:05"

// legacyCustomer keeps the column names of the customer table. Empty
// optional fields are null.
type legacyCustomer struct {
	IDCustomer int64   `json:"idcustomer"`
	OrgID      *int64  `json:"org_id"`
	AddressID  *int64  `json:"address_id"`
	Forename   *string `json:"forename"`
	Surname    *string `json:"surname"`
	Timestamp  string  `json:"timestamp"`
	Email      *string `json:"email"`
	Telephone  *string `json:"telephone"`
}

func toLegacy(c *customer.Customer) legacyCustomer {
	return legacyCustomer{
		IDCustomer: c.ID,
		OrgID:      c.OrgID,
		AddressID:  c.AddressID,
		Forename:   optional(c.Forename),
		Surname:    optional(c.Surname),
		Timestamp:  c.Timestamp.Format(legacyTimestamp),
		Email:      optional(c.Email),
		Telephone:  optional(c.Telephone),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
