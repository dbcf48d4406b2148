package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/rounds/internal/address"
	addressStore "github.com/MrJamesThe3rd/rounds/internal/address/store"
	"github.com/MrJamesThe3rd/rounds/internal/customer"
	"github.com/MrJamesThe3rd/rounds/internal/database"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

// scanCustomer expects selectCustomerColumns order.
func scanCustomer(s scanner) (*customer.Customer, error) {
	var (
		c                                   customer.Customer
		orgID, addressID                    sql.NullInt64
		forename, surname, email, telephone sql.NullString
		addr                                addressStore.Nullable
	)

	dest := append([]any{
		&c.ID, &orgID, &addressID, &forename, &surname, &c.Timestamp, &email, &telephone,
	}, addr.Dest()...)

	if err := s.Scan(dest...); err != nil {
		return nil, err
	}

	if orgID.Valid {
		c.OrgID = &orgID.Int64
	}

	if addressID.Valid {
		c.AddressID = &addressID.Int64
	}

	c.Forename = forename.String
	c.Surname = surname.String
	c.Email = email.String
	c.Telephone = telephone.String
	c.InvoiceAddress = addr.Address()

	return &c, nil
}

const selectCustomerColumns = `
	c.idcustomer, c.org_id, c.address_id, c.forename, c.surname, c.timestamp, c.email, c.telephone,
	` + addressStore.Columns

const fromCustomers = `
	FROM customer c
	LEFT JOIN address a ON a.idaddress = c.address_id`

const insertCustomer = `
	INSERT INTO customer (forename, surname, email, telephone)
	VALUES (NULLIF($1, ''), NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''))
	RETURNING idcustomer, timestamp
`

func createCustomer(ctx context.Context, q database.Querier, c *customer.Customer) error {
	err := q.QueryRowContext(ctx, insertCustomer,
		c.Forename, c.Surname, c.Email, c.Telephone,
	).Scan(&c.ID, &c.Timestamp)
	if err != nil {
		return fmt.Errorf("creating customer: %w", err)
	}

	return nil
}

func (s *Store) CreateCustomer(ctx context.Context, c *customer.Customer) error {
	return createCustomer(ctx, s.db, c)
}

func (s *Store) GetCustomer(ctx context.Context, id int64) (*customer.Customer, error) {
	query := `SELECT ` + selectCustomerColumns + fromCustomers + `
		WHERE c.idcustomer = $1`

	c, err := scanCustomer(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customer.ErrNotFound
		}

		return nil, fmt.Errorf("getting customer: %w", err)
	}

	return c, nil
}

func (s *Store) ListCustomers(ctx context.Context, filter customer.ListFilter) ([]*customer.Customer, error) {
	query := `SELECT ` + selectCustomerColumns + fromCustomers + `
		ORDER BY c.timestamp DESC, c.idcustomer DESC`

	var args []any

	if filter.Limit > 0 {
		query += " LIMIT $1"

		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	defer rows.Close()

	var customers []*customer.Customer

	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning customer: %w", err)
		}

		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating customers: %w", err)
	}

	return customers, nil
}

func (s *Store) CountCustomers(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM customer`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting customers: %w", err)
	}

	return n, nil
}

func (s *Store) UpdateCustomer(ctx context.Context, c *customer.Customer) error {
	query := `
		UPDATE customer
		SET forename = NULLIF($1, ''), surname = NULLIF($2, ''), email = NULLIF($3, ''), telephone = NULLIF($4, '')
		WHERE idcustomer = $5
	`

	res, err := s.db.ExecContext(ctx, query, c.Forename, c.Surname, c.Email, c.Telephone, c.ID)
	if err != nil {
		return fmt.Errorf("updating customer: %w", err)
	}

	return expectOne(res)
}

// DeleteCustomer relies on ON DELETE CASCADE to remove jobs and history.
func (s *Store) DeleteCustomer(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM customer WHERE idcustomer = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting customer: %w", err)
	}

	return expectOne(res)
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return customer.ErrNotFound
	}

	return nil
}

type tx struct {
	tx *sql.Tx
}

func (s *Store) Begin(ctx context.Context) (customer.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning customer tx: %w", err)
	}

	return &tx{tx: dbTx}, nil
}

func (t *tx) Commit() error   { return t.tx.Commit() }
func (t *tx) Rollback() error { return t.tx.Rollback() }

func (t *tx) CreateCustomer(ctx context.Context, c *customer.Customer) error {
	return createCustomer(ctx, t.tx, c)
}

func (t *tx) ResolveAddress(ctx context.Context, params address.Params) (int64, error) {
	return addressStore.Resolve(ctx, t.tx, params)
}

func (t *tx) SetInvoiceAddress(ctx context.Context, customerID, addressID int64) error {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE customer SET address_id = $1 WHERE idcustomer = $2`, addressID, customerID)
	if err != nil {
		return fmt.Errorf("setting invoice address: %w", err)
	}

	return expectOne(res)
}
