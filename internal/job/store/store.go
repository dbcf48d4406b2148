package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/rounds/internal/address"
	addressStore "github.com/MrJamesThe3rd/rounds/internal/address/store"
	"github.com/MrJamesThe3rd/rounds/internal/database"
	"github.com/MrJamesThe3rd/rounds/internal/job"
	"github.com/MrJamesThe3rd/rounds/internal/payment"
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

const selectJobColumns = `
	j.idjob, j.customer_id, j.address_id, j.zone_id, j.org_id, j.price, j.frequency,
	j.date_last_done, j.date_next_due, COALESCE(j.info, ''), j.payment_type_id,
	TRIM(CONCAT(c.forename, ' ', c.surname)), COALESCE(z.name, ''),
	` + addressStore.Columns

const fromJobs = `
	FROM jobs j
	LEFT JOIN customer c ON c.idcustomer = j.customer_id
	LEFT JOIN zone z ON z.idzone = j.zone_id
	LEFT JOIN address a ON a.idaddress = j.address_id`

// scanJob expects selectJobColumns order.
func scanJob(s scanner) (*job.Job, error) {
	var (
		j                                    job.Job
		customerID, addressID, zoneID, orgID sql.NullInt64
		frequency                            sql.NullInt32
		lastDone, nextDue                    sql.NullTime
		paymentType                          sql.NullInt64
		addr                                 addressStore.Nullable
	)

	dest := append([]any{
		&j.ID, &customerID, &addressID, &zoneID, &orgID, &j.Price, &frequency,
		&lastDone, &nextDue, &j.Info, &paymentType,
		&j.CustomerName, &j.ZoneName,
	}, addr.Dest()...)

	if err := s.Scan(dest...); err != nil {
		return nil, err
	}

	j.CustomerID = nullInt64(customerID)
	j.AddressID = nullInt64(addressID)
	j.ZoneID = nullInt64(zoneID)
	j.OrgID = nullInt64(orgID)

	if frequency.Valid {
		j.Frequency = new(int(frequency.Int32))
	}

	if lastDone.Valid {
		j.DateLastDone = &lastDone.Time
	}

	if nextDue.Valid {
		j.DateNextDue = &nextDue.Time
	}

	j.PaymentTypeID = nullType(paymentType)
	j.Address = addr.Address()

	return &j, nil
}

func (s *Store) GetJob(ctx context.Context, id int64) (*job.Job, error) {
	return getJob(ctx, s.db, id, "")
}

func getJob(ctx context.Context, q database.Querier, id int64, lock string) (*job.Job, error) {
	query := `SELECT ` + selectJobColumns + fromJobs + `
		WHERE j.idjob = $1` + lock

	j, err := scanJob(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, job.ErrNotFound
		}

		return nil, fmt.Errorf("getting job: %w", err)
	}

	return j, nil
}

func (s *Store) ListJobs(ctx context.Context, filter job.ListFilter) ([]*job.Job, error) {
	query := `SELECT ` + selectJobColumns + fromJobs + `
		WHERE TRUE`

	var args []any

	if filter.CustomerID != nil {
		query += " AND j.customer_id = $1"

		args = append(args, *filter.CustomerID)
	}

	query += " ORDER BY j.idjob DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*job.Job

	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning job: %w", err)
		}

		jobs = append(jobs, j)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating jobs: %w", err)
	}

	return jobs, nil
}

// DeleteJob relies on ON DELETE CASCADE to remove the job's history.
func (s *Store) DeleteJob(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM jobs WHERE idjob = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting job: %w", err)
	}

	return expectOne(res)
}

func (s *Store) ListCompleted(ctx context.Context, filter job.CompletedFilter) ([]*job.Completion, error) {
	query, args := buildCompletedQuery(filter)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing completed jobs: %w", err)
	}
	defer rows.Close()

	var completions []*job.Completion

	for rows.Next() {
		c, err := scanCompletion(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning completed job: %w", err)
		}

		completions = append(completions, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating completed jobs: %w", err)
	}

	return completions, nil
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return job.ErrNotFound
	}

	return nil
}

func nullInt64(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}

	return &n.Int64
}

func nullType(n sql.NullInt64) *payment.Type {
	if !n.Valid {
		return nil
	}

	return new(payment.Type(n.Int64))
}

func typeArg(t *payment.Type) any {
	if t == nil {
		return nil
	}

	return int(*t)
}

type tx struct {
	tx *sql.Tx
}

func (s *Store) Begin(ctx context.Context) (job.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning job tx: %w", err)
	}

	return &tx{tx: dbTx}, nil
}

func (t *tx) Commit() error   { return t.tx.Commit() }
func (t *tx) Rollback() error { return t.tx.Rollback() }

func (t *tx) CustomerExists(ctx context.Context, id int64) (bool, error) {
	var exists bool

	err := t.tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM customer WHERE idcustomer = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking customer: %w", err)
	}

	return exists, nil
}

func (t *tx) ResolveAddress(ctx context.Context, params address.Params) (int64, error) {
	return addressStore.Resolve(ctx, t.tx, params)
}

func (t *tx) CreateJob(ctx context.Context, j *job.Job) error {
	query := `
		INSERT INTO jobs (price, frequency, customer_id, address_id, zone_id, info, payment_type_id)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)
		RETURNING idjob
	`

	err := t.tx.QueryRowContext(ctx, query,
		j.Price, j.Frequency, j.CustomerID, j.AddressID, j.ZoneID, j.Info, typeArg(j.PaymentTypeID),
	).Scan(&j.ID)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return fmt.Errorf("creating job: %w", job.ErrInvalidReference)
		}

		return fmt.Errorf("creating job: %w", err)
	}

	return nil
}

// LockJob takes a row lock on the job only; joined rows are not locked.
func (t *tx) LockJob(ctx context.Context, id int64) (*job.Job, error) {
	return getJob(ctx, t.tx, id, " FOR UPDATE OF j")
}

func (t *tx) UpdateJob(ctx context.Context, j *job.Job) error {
	query := `
		UPDATE jobs
		SET price = $1, frequency = $2, address_id = $3, zone_id = $4,
			info = NULLIF($5, ''), payment_type_id = $6, date_next_due = $7
		WHERE idjob = $8
	`

	res, err := t.tx.ExecContext(ctx, query,
		j.Price, j.Frequency, j.AddressID, j.ZoneID, j.Info, typeArg(j.PaymentTypeID), j.DateNextDue, j.ID,
	)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return fmt.Errorf("updating job: %w", job.ErrInvalidReference)
		}

		return fmt.Errorf("updating job: %w", err)
	}

	return expectOne(res)
}

func (t *tx) SetSchedule(ctx context.Context, id int64, lastDone time.Time, nextDue *time.Time) error {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE jobs SET date_last_done = $1, date_next_due = $2 WHERE idjob = $3`,
		lastDone, nextDue, id,
	)
	if err != nil {
		return fmt.Errorf("rescheduling job: %w", err)
	}

	return expectOne(res)
}

func (t *tx) CreateHistory(ctx context.Context, h *job.History) error {
	query := `
		INSERT INTO job_history (job_id, timestamp, paid, payment_type_id)
		VALUES ($1, $2, $3, $4)
		RETURNING idjob_history
	`

	err := t.tx.QueryRowContext(ctx, query,
		h.JobID, h.Timestamp, h.Paid, typeArg(h.PaymentType),
	).Scan(&h.ID)
	if err != nil {
		return fmt.Errorf("recording job completion: %w", err)
	}

	return nil
}
