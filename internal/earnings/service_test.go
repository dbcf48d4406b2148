package earnings_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/rounds/internal/earnings"
)

func TestService_Stats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := earnings.NewMockRepository(ctrl)
	svc := earnings.NewService(repo, earnings.WithClock(func() time.Time { return now }))

	summary := earnings.Summary{
		Theoretical: decimal.NewFromInt(50),
		Actual:      decimal.NewFromInt(50),
		Unpaid:      decimal.NewFromInt(50),
	}

	repo.EXPECT().Summary(gomock.Any()).Return(summary, nil)
	repo.EXPECT().ListCompletions(gomock.Any(), now.AddDate(0, 0, -56), now).Return([]earnings.Completion{
		{Timestamp: now.Add(-time.Hour), Price: decimal.NewFromInt(50), Paid: true},
		{Timestamp: now.Add(-2 * time.Hour), Price: decimal.NewFromInt(50)},
	}, nil)
	repo.EXPECT().ZoneStats(gomock.Any()).Return([]earnings.ZoneStat{
		{ZoneID: 1, Name: "East"},
		{ZoneID: 2, Name: "North", Jobs: 1, Revenue: decimal.NewFromInt(50)},
	}, nil)
	repo.EXPECT().PaymentCounts(gomock.Any()).Return(nil, nil)

	got, err := svc.Stats(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, summary, got.Summary)
	require.Len(t, got.Weeks, earnings.DefaultWeeks)
	assert.True(t, decimal.NewFromInt(100).Equal(got.Weeks[7].Theoretical))
	assert.True(t, decimal.NewFromInt(50).Equal(got.Weeks[7].Actual))
	assert.Len(t, got.Zones, 2)
	assert.Len(t, got.Distribution, 1)
	assert.Len(t, got.ZonePayments, 1)
}

func TestService_Stats_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := earnings.NewMockRepository(ctrl)
	boom := errors.New("connection reset")

	repo.EXPECT().Summary(gomock.Any()).Return(earnings.Summary{}, boom)

	_, err := earnings.NewService(repo).Stats(context.Background(), 4)
	assert.ErrorIs(t, err, boom)
}
