package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/rounds/internal/earnings"
	"github.com/MrJamesThe3rd/rounds/internal/payment"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Summary(ctx context.Context) (earnings.Summary, error) {
	query := `
		SELECT
			(SELECT COALESCE(SUM(price), 0) FROM jobs),
			COALESCE(SUM(j.price) FILTER (WHERE h.paid), 0),
			COALESCE(SUM(j.price) FILTER (WHERE NOT h.paid), 0)
		FROM job_history h
		JOIN jobs j ON j.idjob = h.job_id
	`

	var sum earnings.Summary
	if err := s.db.QueryRowContext(ctx, query).Scan(&sum.Theoretical, &sum.Actual, &sum.Unpaid); err != nil {
		return earnings.Summary{}, fmt.Errorf("summarising earnings: %w", err)
	}

	return sum, nil
}

func (s *Store) ListCompletions(ctx context.Context, from, to time.Time) ([]earnings.Completion, error) {
	query := `
		SELECT h.timestamp, j.price, h.paid
		FROM job_history h
		JOIN jobs j ON j.idjob = h.job_id
		WHERE h.timestamp >= $1 AND h.timestamp < $2
		ORDER BY h.timestamp ASC
	`

	rows, err := s.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing completions: %w", err)
	}
	defer rows.Close()

	var completions []earnings.Completion

	for rows.Next() {
		var c earnings.Completion
		if err := rows.Scan(&c.Timestamp, &c.Price, &c.Paid); err != nil {
			return nil, fmt.Errorf("scanning completion: %w", err)
		}

		completions = append(completions, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating completions: %w", err)
	}

	return completions, nil
}

func (s *Store) ZoneStats(ctx context.Context) ([]earnings.ZoneStat, error) {
	query := `
		SELECT z.idzone, z.name, COUNT(j.idjob), COALESCE(SUM(j.price), 0)
		FROM zone z
		LEFT JOIN jobs j ON j.zone_id = z.idzone
		GROUP BY z.idzone, z.name
		ORDER BY z.name ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing zone stats: %w", err)
	}
	defer rows.Close()

	var stats []earnings.ZoneStat

	for rows.Next() {
		var z earnings.ZoneStat
		if err := rows.Scan(&z.ZoneID, &z.Name, &z.Jobs, &z.Revenue); err != nil {
			return nil, fmt.Errorf("scanning zone stat: %w", err)
		}

		stats = append(stats, z)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating zone stats: %w", err)
	}

	return stats, nil
}

// PaymentCounts lists every zone, with a row per payment type used in it,
// followed by the counts of jobs without a zone.
func (s *Store) PaymentCounts(ctx context.Context) ([]earnings.PaymentCount, error) {
	query := `
		SELECT z.idzone, z.name, h.payment_type_id, COUNT(h.idjob_history)
		FROM zone z
		LEFT JOIN jobs j ON j.zone_id = z.idzone
		LEFT JOIN job_history h ON h.job_id = j.idjob AND h.payment_type_id IS NOT NULL
		GROUP BY z.idzone, z.name, h.payment_type_id
		UNION ALL
		SELECT NULL, '', h.payment_type_id, COUNT(*)
		FROM job_history h
		JOIN jobs j ON j.idjob = h.job_id
		WHERE j.zone_id IS NULL AND h.payment_type_id IS NOT NULL
		GROUP BY h.payment_type_id
		ORDER BY 2, 3
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("counting zone payments: %w", err)
	}
	defer rows.Close()

	var counts []earnings.PaymentCount

	for rows.Next() {
		var (
			c           earnings.PaymentCount
			zoneID      sql.NullInt64
			paymentType sql.NullInt64
		)

		if err := rows.Scan(&zoneID, &c.ZoneName, &paymentType, &c.Count); err != nil {
			return nil, fmt.Errorf("scanning zone payment count: %w", err)
		}

		if zoneID.Valid {
			c.ZoneID = &zoneID.Int64
		}

		if paymentType.Valid {
			c.PaymentType = new(payment.Type(paymentType.Int64))
		}

		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating zone payment counts: %w", err)
	}

	return counts, nil
}
