package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/rounds/internal/database"
	"github.com/MrJamesThe3rd/rounds/internal/zone"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateZone(ctx context.Context, z *zone.Zone) error {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO zone (name) VALUES ($1) RETURNING idzone`, z.Name,
	).Scan(&z.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return zone.ErrDuplicateName
		}

		return fmt.Errorf("creating zone: %w", err)
	}

	return nil
}

func (s *Store) GetZone(ctx context.Context, id int64) (*zone.Zone, error) {
	var z zone.Zone

	err := s.db.QueryRowContext(ctx,
		`SELECT idzone, name FROM zone WHERE idzone = $1`, id,
	).Scan(&z.ID, &z.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, zone.ErrNotFound
		}

		return nil, fmt.Errorf("getting zone: %w", err)
	}

	return &z, nil
}

func (s *Store) ListZones(ctx context.Context) ([]*zone.Zone, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT idzone, name FROM zone ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing zones: %w", err)
	}
	defer rows.Close()

	var zones []*zone.Zone

	for rows.Next() {
		var z zone.Zone
		if err := rows.Scan(&z.ID, &z.Name); err != nil {
			return nil, fmt.Errorf("scanning zone: %w", err)
		}

		zones = append(zones, &z)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating zones: %w", err)
	}

	return zones, nil
}

func (s *Store) UpdateZone(ctx context.Context, z *zone.Zone) error {
	res, err := s.db.ExecContext(ctx, `UPDATE zone SET name = $1 WHERE idzone = $2`, z.Name, z.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return zone.ErrDuplicateName
		}

		return fmt.Errorf("updating zone: %w", err)
	}

	return expectOne(res)
}

func (s *Store) DeleteZone(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM zone WHERE idzone = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting zone: %w", err)
	}

	return expectOne(res)
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return zone.ErrNotFound
	}

	return nil
}
