package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/rounds/internal/database/dbtest"
	"github.com/MrJamesThe3rd/rounds/internal/earnings"
	"github.com/MrJamesThe3rd/rounds/internal/earnings/store"
	"github.com/MrJamesThe3rd/rounds/internal/payment"
)

func TestSummary_PaidThenUnpaid(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	var jobID int64
	require.NoError(t, db.QueryRowContext(ctx,
		`INSERT INTO jobs (price, frequency) VALUES (50, 7) RETURNING idjob`).Scan(&jobID))

	now := time.Now().UTC()

	_, err := db.ExecContext(ctx, `
		INSERT INTO job_history (job_id, timestamp, paid, payment_type_id) VALUES
			($1, $2, TRUE, 1),
			($1, $3, FALSE, NULL),
			($1, $4, FALSE, NULL)`,
		jobID, now.Add(-96*time.Hour), now.Add(-48*time.Hour), now.Add(-time.Hour))
	require.NoError(t, err)

	s := store.New(db)

	sum, err := s.Summary(ctx)
	require.NoError(t, err)

	fifty := decimal.NewFromInt(50)
	assert.True(t, fifty.Equal(sum.Theoretical), sum.Theoretical.String())
	assert.True(t, fifty.Equal(sum.Actual), sum.Actual.String())
	assert.True(t, decimal.NewFromInt(100).Equal(sum.Unpaid), sum.Unpaid.String())

	counts, err := s.PaymentCounts(ctx)
	require.NoError(t, err)

	grouped := earnings.GroupZonePayments(counts)
	require.Len(t, grouped, 1)
	assert.Equal(t, 1, grouped[0].Counts[payment.TypeCash])
}

func TestZoneStats_IncludesEmptyZones(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	var north int64
	require.NoError(t, db.QueryRowContext(ctx, `INSERT INTO zone (name) VALUES ('North') RETURNING idzone`).Scan(&north))
	_, err := db.ExecContext(ctx, `INSERT INTO zone (name) VALUES ('East')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO jobs (price, zone_id) VALUES (20, $1), (15.50, $1)`, north)
	require.NoError(t, err)

	stats, err := store.New(db).ZoneStats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, "East", stats[0].Name)
	assert.Zero(t, stats[0].Jobs)
	assert.Equal(t, 2, stats[1].Jobs)
	assert.True(t, decimal.RequireFromString("35.50").Equal(stats[1].Revenue))

	assert.Len(t, earnings.Distribution(stats), 1)
}
