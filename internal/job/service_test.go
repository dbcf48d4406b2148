package job_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/rounds/internal/address"
	"github.com/MrJamesThe3rd/rounds/internal/job"
	"github.com/MrJamesThe3rd/rounds/internal/payment"
	"github.com/MrJamesThe3rd/rounds/internal/validation"
)

func newService(repo job.Repository) *job.Service {
	return job.NewService(repo, job.WithClock(func() time.Time { return now }))
}

func TestService_Complete(t *testing.T) {
	type testCase struct {
		name      string
		params    job.CompleteParams
		frequency *int
		wantPaid  bool
		wantType  *payment.Type
		wantNext  *time.Time
	}

	tests := []testCase{
		{
			name:      "PaidFortnightly",
			params:    job.CompleteParams{Paid: true, PaymentType: new(payment.TypeCard)},
			frequency: new(14),
			wantPaid:  true,
			wantType:  new(payment.TypeCard),
			wantNext:  new(now.AddDate(0, 0, 14)),
		},
		{
			name:      "UnpaidDropsPaymentType",
			params:    job.CompleteParams{Paid: false, PaymentType: new(payment.TypeCash)},
			frequency: new(7),
			wantNext:  new(now.AddDate(0, 0, 7)),
		},
		{
			name:     "OneOffHasNoNextDue",
			params:   job.CompleteParams{Paid: true, PaymentType: new(payment.TypeCash)},
			wantPaid: true,
			wantType: new(payment.TypeCash),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := job.NewMockRepository(ctrl)
			tx := job.NewMockTx(ctrl)

			var recorded *job.History

			gomock.InOrder(
				repo.EXPECT().Begin(gomock.Any()).Return(tx, nil),
				tx.EXPECT().LockJob(gomock.Any(), int64(3)).Return(&job.Job{ID: 3, Frequency: tt.frequency}, nil),
				tx.EXPECT().SetSchedule(gomock.Any(), int64(3),
					time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC), tt.wantNext).Return(nil),
				tx.EXPECT().CreateHistory(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, h *job.History) error {
						h.ID = 11
						recorded = h

						return nil
					}),
				tx.EXPECT().Commit().Return(nil),
			)
			tx.EXPECT().Rollback().Return(nil)

			got, err := newService(repo).Complete(context.Background(), 3, tt.params)
			require.NoError(t, err)

			require.NotNil(t, recorded)
			assert.Equal(t, got, recorded)
			assert.Equal(t, int64(11), got.ID)
			assert.Equal(t, int64(3), got.JobID)
			assert.Equal(t, now, got.Timestamp)
			assert.Equal(t, tt.wantPaid, got.Paid)
			assert.Equal(t, tt.wantType, got.PaymentType)
		})
	}
}

func TestService_Complete_PaidWithoutTypeRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := job.NewMockRepository(ctrl)

	_, err := newService(repo).Complete(context.Background(), 3, job.CompleteParams{Paid: true})

	v, ok := validation.From(err)
	require.True(t, ok)
	assert.Contains(t, v, "payment_type_id")
}

func TestService_Complete_MissingJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := job.NewMockRepository(ctrl)
	tx := job.NewMockTx(ctrl)

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().LockJob(gomock.Any(), int64(99)).Return(nil, job.ErrNotFound)
	tx.EXPECT().Rollback().Return(nil)

	_, err := newService(repo).Complete(context.Background(), 99, job.CompleteParams{})
	assert.ErrorIs(t, err, job.ErrNotFound)
}

func TestService_Complete_HistoryFailureRollsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := job.NewMockRepository(ctrl)
	tx := job.NewMockTx(ctrl)
	boom := errors.New("connection reset")

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().LockJob(gomock.Any(), int64(3)).Return(&job.Job{ID: 3}, nil)
	tx.EXPECT().SetSchedule(gomock.Any(), int64(3), gomock.Any(), gomock.Nil()).Return(nil)
	tx.EXPECT().CreateHistory(gomock.Any(), gomock.Any()).Return(fmt.Errorf("recording job completion: %w", boom))
	tx.EXPECT().Rollback().Return(nil)

	_, err := newService(repo).Complete(context.Background(), 3, job.CompleteParams{})
	assert.ErrorIs(t, err, boom)
}

func TestService_Create(t *testing.T) {
	zoneID := int64(2)

	type testCase struct {
		name      string
		params    job.Params
		setupMock func(repo *job.MockRepository, tx *job.MockTx)
		wantErr   error
		wantField string
	}

	tests := []testCase{
		{
			name: "SuccessWithAddress",
			params: job.Params{
				Price:          decimal.RequireFromString("25"),
				FrequencyWeeks: 4,
				ZoneID:         &zoneID,
				Info:           " side gate ",
				Address:        &address.Params{HouseNumName: "4", StreetName: "Elm Road"},
			},
			setupMock: func(repo *job.MockRepository, tx *job.MockTx) {
				repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				tx.EXPECT().CustomerExists(gomock.Any(), int64(7)).Return(true, nil)
				tx.EXPECT().ResolveAddress(gomock.Any(), address.Params{HouseNumName: "4", StreetName: "Elm Road"}).
					Return(int64(30), nil)
				tx.EXPECT().CreateJob(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, j *job.Job) error {
						assert.Equal(t, 28, *j.Frequency)
						assert.Equal(t, int64(30), *j.AddressID)
						assert.Equal(t, int64(7), *j.CustomerID)
						assert.Equal(t, "side gate", j.Info)
						assert.Nil(t, j.DateNextDue)

						j.ID = 12

						return nil
					})
				tx.EXPECT().Commit().Return(nil)
				tx.EXPECT().Rollback().Return(nil)
				repo.EXPECT().GetJob(gomock.Any(), int64(12)).Return(&job.Job{ID: 12}, nil)
			},
		},
		{
			name:      "MissingZone",
			params:    job.Params{Price: decimal.NewFromInt(10)},
			wantField: "zone_id",
		},
		{
			name:   "UnknownCustomer",
			params: job.Params{ZoneID: &zoneID},
			setupMock: func(repo *job.MockRepository, tx *job.MockTx) {
				repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				tx.EXPECT().CustomerExists(gomock.Any(), int64(7)).Return(false, nil)
				tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: job.ErrCustomerNotFound,
		},
		{
			name:   "UnknownZone",
			params: job.Params{ZoneID: &zoneID},
			setupMock: func(repo *job.MockRepository, tx *job.MockTx) {
				repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				tx.EXPECT().CustomerExists(gomock.Any(), int64(7)).Return(true, nil)
				tx.EXPECT().CreateJob(gomock.Any(), gomock.Any()).
					Return(fmt.Errorf("creating job: %w", job.ErrInvalidReference))
				tx.EXPECT().Rollback().Return(nil)
			},
			wantField: "zone_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := job.NewMockRepository(ctrl)
			tx := job.NewMockTx(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo, tx)
			}

			got, err := newService(repo).Create(context.Background(), 7, tt.params)

			if tt.wantField != "" {
				v, ok := validation.From(err)
				require.True(t, ok)
				assert.Contains(t, v, tt.wantField)

				return
			}

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(12), got.ID)
		})
	}
}

func TestService_Update_ClearingFrequencyClearsNextDue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := job.NewMockRepository(ctrl)
	tx := job.NewMockTx(ctrl)

	existing := &job.Job{
		ID:          5,
		ZoneID:      new(int64(2)),
		AddressID:   new(int64(8)),
		Frequency:   new(7),
		DateNextDue: new(now.AddDate(0, 0, 3)),
	}

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().LockJob(gomock.Any(), int64(5)).Return(existing, nil)
	tx.EXPECT().UpdateJob(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, j *job.Job) error {
			assert.Nil(t, j.Frequency)
			assert.Nil(t, j.DateNextDue)
			assert.Equal(t, int64(2), *j.ZoneID)
			assert.Equal(t, int64(8), *j.AddressID)

			return nil
		})
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)
	repo.EXPECT().GetJob(gomock.Any(), int64(5)).Return(existing, nil)

	_, err := newService(repo).Update(context.Background(), 5, job.Params{Price: decimal.NewFromInt(30)})
	require.NoError(t, err)
}

func TestService_Update_KeepsNextDue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := job.NewMockRepository(ctrl)
	tx := job.NewMockTx(ctrl)

	due := now.AddDate(0, 0, 3)

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().LockJob(gomock.Any(), int64(5)).Return(&job.Job{ID: 5, Frequency: new(7), DateNextDue: &due}, nil)
	tx.EXPECT().UpdateJob(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, j *job.Job) error {
			assert.Equal(t, 21, *j.Frequency)
			assert.Equal(t, due, *j.DateNextDue)

			return nil
		})
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)
	repo.EXPECT().GetJob(gomock.Any(), int64(5)).Return(&job.Job{ID: 5}, nil)

	_, err := newService(repo).Update(context.Background(), 5, job.Params{FrequencyWeeks: 3})
	require.NoError(t, err)
}

func TestService_Schedule(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := job.NewMockRepository(ctrl)
	repo.EXPECT().ListJobs(gomock.Any(), job.ListFilter{}).Return([]*job.Job{
		{ID: 1, DateNextDue: at(5, 0), Frequency: new(7)},
		{ID: 2, DateLastDone: at(-5, 0)},
		{ID: 3, DateNextDue: at(-1, 0), Frequency: new(7)},
	}, nil).Times(2)

	svc := newService(repo)

	all, err := svc.Schedule(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, int64(3), all[0].Job.ID)
	assert.Equal(t, job.StatusOverdue, all[0].Status)

	n, err := svc.CountDue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestService_Completed_Defaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := job.NewMockRepository(ctrl)
	repo.EXPECT().
		ListCompleted(gomock.Any(), job.CompletedFilter{Paid: job.PaidAll, Sort: job.SortDateDesc}).
		Return(nil, nil)

	_, err := newService(repo).Completed(context.Background(), job.CompletedFilter{Sort: "bogus"})
	require.NoError(t, err)
}
