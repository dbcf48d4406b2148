package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/rounds/internal/address"
	"github.com/MrJamesThe3rd/rounds/internal/database"
)

// Resolve returns the id of the address matching p's house, street and
// postcode, inserting it first when no such address exists. It runs on q so
// callers can resolve inside their own transaction.
//
// The no-op DO UPDATE makes RETURNING yield the existing row on conflict;
// coordinates of an existing address are left untouched.
func Resolve(ctx context.Context, q database.Querier, p address.Params) (int64, error) {
	p = p.Normalize()

	query := `
		INSERT INTO address (house_num_name, street_name, postcode, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (house_num_name, street_name, postcode)
		DO UPDATE SET house_num_name = EXCLUDED.house_num_name
		RETURNING idaddress
	`

	var id int64
	if err := q.QueryRowContext(ctx, query,
		p.HouseNumName, p.StreetName, p.Postcode, p.Latitude, p.Longitude,
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("resolving address: %w", err)
	}

	return id, nil
}

// Columns selects the joined address of alias a; Scan reads them back.
const Columns = `a.idaddress, a.house_num_name, a.street_name, a.postcode, a.latitude, a.longitude`

// Nullable holds the columns of a LEFT JOINed address.
type Nullable struct {
	ID           sql.NullInt64
	HouseNumName sql.NullString
	StreetName   sql.NullString
	Postcode     sql.NullString
	Latitude     sql.NullString
	Longitude    sql.NullString
}

func (n *Nullable) Dest() []any {
	return []any{&n.ID, &n.HouseNumName, &n.StreetName, &n.Postcode, &n.Latitude, &n.Longitude}
}

// Address returns nil when the join found no row.
func (n *Nullable) Address() *address.Address {
	if !n.ID.Valid {
		return nil
	}

	a := &address.Address{
		ID:           n.ID.Int64,
		HouseNumName: n.HouseNumName.String,
		StreetName:   n.StreetName.String,
		Postcode:     n.Postcode.String,
	}

	if n.Latitude.Valid {
		a.Latitude = &n.Latitude.String
	}

	if n.Longitude.Valid {
		a.Longitude = &n.Longitude.String
	}

	return a
}
