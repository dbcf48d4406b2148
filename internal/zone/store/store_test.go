package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/rounds/internal/database/dbtest"
	"github.com/MrJamesThe3rd/rounds/internal/zone"
	"github.com/MrJamesThe3rd/rounds/internal/zone/store"
)

func TestZoneNamesAreUnique(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	svc := zone.NewService(store.New(db))

	north, err := svc.Create(ctx, "North")
	require.NoError(t, err)

	_, err = svc.Create(ctx, "North")
	assert.ErrorIs(t, err, zone.ErrDuplicateName)

	south, err := svc.Create(ctx, "South")
	require.NoError(t, err)

	_, err = svc.Rename(ctx, south.ID, "North")
	assert.ErrorIs(t, err, zone.ErrDuplicateName)

	renamed, err := svc.Rename(ctx, north.ID, "North East")
	require.NoError(t, err)
	assert.Equal(t, "North East", renamed.Name)
}

func TestDeleteZone_UnassignsJobs(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	svc := zone.NewService(store.New(db))

	z, err := svc.Create(ctx, "West")
	require.NoError(t, err)

	var jobID int64
	require.NoError(t, db.QueryRowContext(ctx,
		`INSERT INTO jobs (zone_id) VALUES ($1) RETURNING idjob`, z.ID,
	).Scan(&jobID))

	require.NoError(t, svc.Delete(ctx, z.ID))

	var zoneID *int64
	require.NoError(t, db.QueryRowContext(ctx, `SELECT zone_id FROM jobs WHERE idjob = $1`, jobID).Scan(&zoneID))
	assert.Nil(t, zoneID)

	assert.ErrorIs(t, svc.Delete(ctx, z.ID), zone.ErrNotFound)
}
