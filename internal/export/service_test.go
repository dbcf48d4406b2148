package export_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/rounds/internal/address"
	"github.com/MrJamesThe3rd/rounds/internal/export"
	"github.com/MrJamesThe3rd/rounds/internal/job"
	"github.com/MrJamesThe3rd/rounds/internal/payment"
)

func TestService_WriteCompleted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := job.NewMockRepository(ctrl)
	svc := export.NewService(job.NewService(repo))

	ts := time.Date(2024, 6, 10, 9, 15, 0, 0, time.UTC)
	filter := job.CompletedFilter{Paid: job.PaidAll, Sort: job.SortDateAsc}

	repo.EXPECT().ListCompleted(gomock.Any(), filter).Return([]*job.Completion{
		{
			History:      job.History{ID: 1, Timestamp: ts, Paid: true, PaymentType: new(payment.TypeCard)},
			Price:        decimal.RequireFromString("20"),
			CustomerName: "Ada Lovelace",
			ZoneName:     "North",
			Info:         "windows, front",
			Address:      &address.Address{HouseNumName: "12", StreetName: "High Street", Postcode: "AB1 2CD"},
		},
		{
			History: job.History{ID: 2, Timestamp: ts.Add(time.Hour)},
			Price:   decimal.RequireFromString("15.5"),
		},
	}, nil)

	var buf bytes.Buffer

	totals, err := svc.WriteCompleted(context.Background(), &buf, filter)
	require.NoError(t, err)

	assert.Equal(t, 2, totals.Count)
	assert.Equal(t, "35.50", totals.Value.StringFixed(2))
	assert.Equal(t, "15.50", totals.Unpaid.StringFixed(2))

	r := csv.NewReader(&buf)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)

	assert.Equal(t, "date", records[0][0])
	assert.Equal(t, []string{
		"2024-06-10 09:15", "Ada Lovelace", "North", "12 High Street, AB1 2CD",
		"windows, front", "20.00", "yes", "Card",
	}, records[1])
	assert.Equal(t, "No Zone", records[2][2])
	assert.Equal(t, "no", records[2][6])
	assert.Equal(t, "2 completed jobs | total 35.50 | paid 20.00 | unpaid 15.50", records[4][0])
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "completed_20240610.csv", export.Filename(time.Date(2024, 6, 10, 23, 0, 0, 0, time.UTC)))
}
