package customer

import (
	"context"
	"fmt"

	"github.com/MrJamesThe3rd/rounds/internal/address"
	"github.com/MrJamesThe3rd/rounds/internal/validation"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=customer
type Repository interface {
	CreateCustomer(ctx context.Context, c *Customer) error
	GetCustomer(ctx context.Context, id int64) (*Customer, error)
	ListCustomers(ctx context.Context, filter ListFilter) ([]*Customer, error)
	CountCustomers(ctx context.Context) (int, error)
	UpdateCustomer(ctx context.Context, c *Customer) error
	DeleteCustomer(ctx context.Context, id int64) error

	Begin(ctx context.Context) (Tx, error)
}

// Tx groups the writes that must succeed or fail together.
type Tx interface {
	CreateCustomer(ctx context.Context, c *Customer) error
	ResolveAddress(ctx context.Context, params address.Params) (int64, error)
	SetInvoiceAddress(ctx context.Context, customerID, addressID int64) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, params Params) (*Customer, error) {
	if err := params.Validate().Err(); err != nil {
		return nil, err
	}

	c := fromParams(params)
	if err := s.repo.CreateCustomer(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Customer, error) {
	return s.repo.GetCustomer(ctx, id)
}

// List returns every customer, newest first.
func (s *Service) List(ctx context.Context) ([]*Customer, error) {
	return s.repo.ListCustomers(ctx, ListFilter{})
}

// Recent returns the n most recently created customers.
func (s *Service) Recent(ctx context.Context, n int) ([]*Customer, error) {
	return s.repo.ListCustomers(ctx, ListFilter{Limit: n})
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.CountCustomers(ctx)
}

func (s *Service) Update(ctx context.Context, id int64, params Params) (*Customer, error) {
	if err := params.Validate().Err(); err != nil {
		return nil, err
	}

	c := fromParams(params)
	c.ID = id

	if err := s.repo.UpdateCustomer(ctx, c); err != nil {
		return nil, err
	}

	return s.repo.GetCustomer(ctx, id)
}

// Delete removes the customer together with its jobs and their history.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteCustomer(ctx, id)
}

// SetInvoiceAddress links the customer to the address described by params,
// reusing an existing address row when one matches.
func (s *Service) SetInvoiceAddress(ctx context.Context, id int64, params address.Params) (*Customer, error) {
	if err := params.Validate("").Err(); err != nil {
		return nil, err
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin invoice address: %w", err)
	}
	defer tx.Rollback()

	addressID, err := tx.ResolveAddress(ctx, params.Normalize())
	if err != nil {
		return nil, fmt.Errorf("resolve address: %w", err)
	}

	if err := tx.SetInvoiceAddress(ctx, id, addressID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit invoice address: %w", err)
	}

	return s.repo.GetCustomer(ctx, id)
}

// Import creates every row in one transaction. Rows are validated up front;
// a single invalid row rejects the whole batch.
func (s *Service) Import(ctx context.Context, rows []ImportRow) ([]*Customer, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	v := validation.Violations{}

	for _, r := range rows {
		prefix := fmt.Sprintf("row %d: ", r.Line)

		v.Merge(prefix, r.Params.Validate())

		if r.Address != nil {
			v.Merge(prefix, r.Address.Validate(""))
		}
	}

	if err := v.Err(); err != nil {
		return nil, err
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	customers := make([]*Customer, 0, len(rows))

	for _, r := range rows {
		c := fromParams(r.Params)
		if err := tx.CreateCustomer(ctx, c); err != nil {
			return nil, fmt.Errorf("create customer on line %d: %w", r.Line, err)
		}

		if r.Address != nil {
			addressID, err := tx.ResolveAddress(ctx, r.Address.Normalize())
			if err != nil {
				return nil, fmt.Errorf("resolve address on line %d: %w", r.Line, err)
			}

			if err := tx.SetInvoiceAddress(ctx, c.ID, addressID); err != nil {
				return nil, fmt.Errorf("link address on line %d: %w", r.Line, err)
			}

			c.AddressID = &addressID
		}

		customers = append(customers, c)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return customers, nil
}

func fromParams(p Params) *Customer {
	p = p.Normalize()

	return &Customer{
		Forename:  p.Forename,
		Surname:   p.Surname,
		Email:     p.Email,
		Telephone: p.Telephone,
	}
}
