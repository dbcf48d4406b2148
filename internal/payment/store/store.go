package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/rounds/internal/payment"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListOutstanding(ctx context.Context) ([]*payment.Outstanding, error) {
	query := `
		SELECT h.idjob_history, j.idjob, j.customer_id,
			TRIM(CONCAT(c.forename, ' ', c.surname)), COALESCE(z.name, ''),
			COALESCE(j.info, ''), j.price, h.timestamp
		FROM job_history h
		JOIN jobs j ON j.idjob = h.job_id
		LEFT JOIN customer c ON c.idcustomer = j.customer_id
		LEFT JOIN zone z ON z.idzone = j.zone_id
		WHERE h.paid = FALSE
		ORDER BY h.timestamp ASC, h.idjob_history ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing outstanding payments: %w", err)
	}
	defer rows.Close()

	var items []*payment.Outstanding

	for rows.Next() {
		var (
			o          payment.Outstanding
			customerID sql.NullInt64
		)

		if err := rows.Scan(
			&o.HistoryID, &o.JobID, &customerID, &o.CustomerName, &o.ZoneName,
			&o.Info, &o.Price, &o.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("scanning outstanding payment: %w", err)
		}

		if customerID.Valid {
			o.CustomerID = &customerID.Int64
		}

		items = append(items, &o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating outstanding payments: %w", err)
	}

	return items, nil
}

// MarkPaid flips an unpaid history row to paid. A row that exists but is
// already paid yields payment.ErrAlreadyPaid.
func (s *Store) MarkPaid(ctx context.Context, historyID int64, t payment.Type) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	var paid bool

	err = dbTx.QueryRowContext(ctx,
		`SELECT paid FROM job_history WHERE idjob_history = $1 FOR UPDATE`, historyID,
	).Scan(&paid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return payment.ErrNotFound
		}

		return fmt.Errorf("locking job history: %w", err)
	}

	if paid {
		return payment.ErrAlreadyPaid
	}

	if _, err := dbTx.ExecContext(ctx,
		`UPDATE job_history SET paid = TRUE, payment_type_id = $1 WHERE idjob_history = $2`,
		int(t), historyID,
	); err != nil {
		return fmt.Errorf("marking job history paid: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}
