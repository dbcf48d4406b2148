package http_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/rounds/internal/customer"
	"github.com/MrJamesThe3rd/rounds/internal/earnings"
	"github.com/MrJamesThe3rd/rounds/internal/export"
	roundsHttp "github.com/MrJamesThe3rd/rounds/internal/http"
	customerHandler "github.com/MrJamesThe3rd/rounds/internal/http/customer"
	"github.com/MrJamesThe3rd/rounds/internal/http/dashboard"
	exportHandler "github.com/MrJamesThe3rd/rounds/internal/http/export"
	"github.com/MrJamesThe3rd/rounds/internal/http/importcsv"
	jobHandler "github.com/MrJamesThe3rd/rounds/internal/http/job"
	paymentHandler "github.com/MrJamesThe3rd/rounds/internal/http/payment"
	"github.com/MrJamesThe3rd/rounds/internal/http/stats"
	zoneHandler "github.com/MrJamesThe3rd/rounds/internal/http/zone"
	"github.com/MrJamesThe3rd/rounds/internal/importer"
	"github.com/MrJamesThe3rd/rounds/internal/job"
	"github.com/MrJamesThe3rd/rounds/internal/payment"
	"github.com/MrJamesThe3rd/rounds/internal/zone"
)

var now = time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)

type mocks struct {
	customers *customer.MockRepository
	customerT *customer.MockTx
	jobs      *job.MockRepository
	zones     *zone.MockRepository
	payments  *payment.MockRepository
	earnings  *earnings.MockRepository
}

func newRouter(t *testing.T, opts roundsHttp.Options) (http.Handler, *mocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := &mocks{
		customers: customer.NewMockRepository(ctrl),
		customerT: customer.NewMockTx(ctrl),
		jobs:      job.NewMockRepository(ctrl),
		zones:     zone.NewMockRepository(ctrl),
		payments:  payment.NewMockRepository(ctrl),
		earnings:  earnings.NewMockRepository(ctrl),
	}

	clock := func() time.Time { return now }

	var (
		customerSvc = customer.NewService(m.customers)
		jobSvc      = job.NewService(m.jobs, job.WithClock(clock))
		zoneSvc     = zone.NewService(m.zones)
		paymentSvc  = payment.NewService(m.payments)
		earningsSvc = earnings.NewService(m.earnings, earnings.WithClock(clock))
	)

	router := roundsHttp.New(roundsHttp.Handlers{
		Dashboard: dashboard.NewHandler(customerSvc, jobSvc, earningsSvc),
		Customers: customerHandler.NewHandler(customerSvc, jobSvc),
		Jobs:      jobHandler.NewHandler(jobSvc),
		Zones:     zoneHandler.NewHandler(zoneSvc),
		Payments:  paymentHandler.NewHandler(paymentSvc),
		Stats:     stats.NewHandler(earningsSvc),
		Import:    importcsv.NewHandler(importer.NewService(), customerSvc),
		Export:    exportHandler.NewHandler(export.NewService(jobSvc)),
	}, opts)

	return router, m
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestLegacyCustomers(t *testing.T) {
	router, m := newRouter(t, roundsHttp.Options{})

	m.customers.EXPECT().ListCustomers(gomock.Any(), customer.ListFilter{}).Return([]*customer.Customer{
		{
			ID:        4,
			AddressID: new(int64(9)),
			Surname:   "Lovelace",
			Telephone: "01234567890",
			Timestamp: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		},
	}, nil)

	rec := do(router, http.MethodGet, "/api/customers", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []map[string]any
	decode(t, rec, &got)
	require.Len(t, got, 1)

	assert.Equal(t, float64(4), got[0]["idcustomer"])
	assert.Equal(t, "2024-01-02 03:04:05", got[0]["timestamp"])
	assert.Equal(t, "01234567890", got[0]["telephone"])
	assert.Equal(t, float64(9), got[0]["address_id"])
	assert.Nil(t, got[0]["forename"])
	assert.Nil(t, got[0]["org_id"])
	assert.Contains(t, got[0], "email")
}

func TestDashboard(t *testing.T) {
	router, m := newRouter(t, roundsHttp.Options{})

	m.customers.EXPECT().CountCustomers(gomock.Any()).Return(12, nil)
	m.customers.EXPECT().ListCustomers(gomock.Any(), customer.ListFilter{Limit: 5}).Return([]*customer.Customer{
		{ID: 12, Surname: "Hart"},
	}, nil)
	m.jobs.EXPECT().ListJobs(gomock.Any(), job.ListFilter{}).Return([]*job.Job{
		{ID: 1, Frequency: new(7), DateNextDue: new(now.AddDate(0, 0, -1))},
		{ID: 2, Frequency: new(7), DateNextDue: new(now.AddDate(0, 0, 6))},
		{ID: 3},
	}, nil)
	m.earnings.EXPECT().Summary(gomock.Any()).Return(earnings.Summary{
		Theoretical: decimal.NewFromInt(90),
		Actual:      decimal.NewFromInt(40),
		Unpaid:      decimal.NewFromInt(10),
	}, nil)

	rec := do(router, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		TotalCustomers  int              `json:"total_customers"`
		RecentCustomers []map[string]any `json:"recent_customers"`
		DueJobs         int              `json:"due_jobs"`
		Earnings        map[string]any   `json:"earnings"`
	}
	decode(t, rec, &got)

	assert.Equal(t, 12, got.TotalCustomers)
	assert.Len(t, got.RecentCustomers, 1)
	assert.Equal(t, 2, got.DueJobs)
	assert.Equal(t, "90", got.Earnings["theoretical"])
	assert.Equal(t, "10", got.Earnings["unpaid"])
}

func TestCompleteJob(t *testing.T) {
	t.Run("PaidWithoutTypeIsRejected", func(t *testing.T) {
		router, _ := newRouter(t, roundsHttp.Options{})

		rec := do(router, http.MethodPost, "/jobs/5/complete", `{"paid": true}`)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var body struct {
			Error  string            `json:"error"`
			Fields map[string]string `json:"fields"`
		}
		decode(t, rec, &body)

		assert.Equal(t, "validation failed", body.Error)
		assert.Contains(t, body.Fields, "payment_type_id")
	})

	t.Run("MissingJob", func(t *testing.T) {
		router, m := newRouter(t, roundsHttp.Options{})
		tx := job.NewMockTx(gomock.NewController(t))

		m.jobs.EXPECT().Begin(gomock.Any()).Return(tx, nil)
		tx.EXPECT().LockJob(gomock.Any(), int64(5)).Return(nil, job.ErrNotFound)
		tx.EXPECT().Rollback().Return(nil)

		rec := do(router, http.MethodPost, "/jobs/5/complete", `{"paid": false}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Success", func(t *testing.T) {
		router, m := newRouter(t, roundsHttp.Options{})
		tx := job.NewMockTx(gomock.NewController(t))

		m.jobs.EXPECT().Begin(gomock.Any()).Return(tx, nil)
		tx.EXPECT().LockJob(gomock.Any(), int64(5)).Return(&job.Job{ID: 5, Frequency: new(14)}, nil)
		tx.EXPECT().SetSchedule(gomock.Any(), int64(5), gomock.Any(), new(now.AddDate(0, 0, 14))).Return(nil)
		tx.EXPECT().CreateHistory(gomock.Any(), gomock.Any()).Return(nil)
		tx.EXPECT().Commit().Return(nil)
		tx.EXPECT().Rollback().Return(nil)

		rec := do(router, http.MethodPost, "/jobs/5/complete", `{"paid": true, "payment_type_id": 1}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		var body map[string]any
		decode(t, rec, &body)
		assert.Equal(t, "Cash", body["payment_type"])
		assert.Equal(t, true, body["paid"])
	})
}

func TestErrorMapping(t *testing.T) {
	t.Run("BadID", func(t *testing.T) {
		router, _ := newRouter(t, roundsHttp.Options{})

		rec := do(router, http.MethodGet, "/jobs/abc", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		router, _ := newRouter(t, roundsHttp.Options{})

		rec := do(router, http.MethodPost, "/customers", `{"surname":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("DuplicateZone", func(t *testing.T) {
		router, m := newRouter(t, roundsHttp.Options{})
		m.zones.EXPECT().CreateZone(gomock.Any(), gomock.Any()).Return(zone.ErrDuplicateName)

		rec := do(router, http.MethodPost, "/admin/zones", `{"name": "North"}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("AlreadyPaid", func(t *testing.T) {
		router, m := newRouter(t, roundsHttp.Options{})
		m.payments.EXPECT().MarkPaid(gomock.Any(), int64(8), payment.TypeCard).Return(payment.ErrAlreadyPaid)

		rec := do(router, http.MethodPost, "/payments/8/mark-paid", `{"payment_type_id": 2}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("InternalErrorIsHidden", func(t *testing.T) {
		router, m := newRouter(t, roundsHttp.Options{})
		m.jobs.EXPECT().ListJobs(gomock.Any(), job.ListFilter{}).Return(nil, errors.New("password authentication failed"))

		rec := do(router, http.MethodGet, "/jobs", "")
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "password")
		assert.Contains(t, rec.Body.String(), "internal error")
	})

	t.Run("TelephoneWithSpaces", func(t *testing.T) {
		router, _ := newRouter(t, roundsHttp.Options{})

		rec := do(router, http.MethodPost, "/customers", `{"surname": "Lee", "telephone": "0123 456"}`)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "telephone")
	})
}

func TestDueJobs(t *testing.T) {
	router, m := newRouter(t, roundsHttp.Options{})

	m.jobs.EXPECT().ListJobs(gomock.Any(), job.ListFilter{}).Return([]*job.Job{
		{ID: 1, Frequency: new(7), DateNextDue: new(now.AddDate(0, 0, 3)), Price: decimal.NewFromInt(20)},
		{ID: 2, Frequency: new(7), DateNextDue: new(now.AddDate(0, 0, -2)), Price: decimal.NewFromInt(20)},
	}, nil)

	rec := do(router, http.MethodGet, "/jobs/due?status=due", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []map[string]any
	decode(t, rec, &got)
	require.Len(t, got, 1)

	assert.Equal(t, float64(2), got[0]["id"])
	assert.Equal(t, "overdue", got[0]["status"])
	assert.Equal(t, float64(-2), got[0]["days_until_due"])
	assert.Equal(t, "20", got[0]["price"])
}

func TestCompletedExport(t *testing.T) {
	router, m := newRouter(t, roundsHttp.Options{})

	m.jobs.EXPECT().
		ListCompleted(gomock.Any(), job.CompletedFilter{Paid: job.UnpaidOnly, Sort: job.SortDateDesc}).
		Return(nil, nil)

	rec := do(router, http.MethodGet, "/jobs/completed/export?paid=unpaid", "")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "completed_")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "date,customer,zone"))
}

func TestImportCustomers(t *testing.T) {
	router, m := newRouter(t, roundsHttp.Options{})

	var body bytes.Buffer

	mp := multipart.NewWriter(&body)
	fw, err := mp.CreateFormFile("file", "customers.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte("forename,surname,telephone\nAda,Lovelace,0123\n"))
	require.NoError(t, err)
	require.NoError(t, mp.Close())

	m.customers.EXPECT().Begin(gomock.Any()).Return(m.customerT, nil)
	m.customerT.EXPECT().CreateCustomer(gomock.Any(), gomock.Any()).Return(nil)
	m.customerT.EXPECT().Commit().Return(nil)
	m.customerT.EXPECT().Rollback().Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/import/customers", &body)
	req.Header.Set("Content-Type", mp.FormDataContentType())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var got struct {
		Imported int    `json:"imported"`
		Charset  string `json:"charset"`
	}
	decode(t, rec, &got)

	assert.Equal(t, 1, got.Imported)
	assert.Equal(t, "UTF-8", got.Charset)
}

func TestMiddleware(t *testing.T) {
	t.Run("RequestID", func(t *testing.T) {
		router, _ := newRouter(t, roundsHttp.Options{})

		rec := do(router, http.MethodGet, "/payment-types", "")
		require.Equal(t, http.StatusOK, rec.Code)

		_, err := uuid.Parse(rec.Header().Get("X-Request-ID"))
		assert.NoError(t, err)
	})

	t.Run("RateLimit", func(t *testing.T) {
		router, _ := newRouter(t, roundsHttp.Options{RateLimitRPS: 0.001, RateLimitBurst: 1})

		assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/payment-types", "").Code)
		assert.Equal(t, http.StatusTooManyRequests, do(router, http.MethodGet, "/payment-types", "").Code)
	})

	t.Run("BodyLimit", func(t *testing.T) {
		router, _ := newRouter(t, roundsHttp.Options{MaxBodyBytes: 16})

		rec := do(router, http.MethodPost, "/admin/zones", `{"name": "a very long zone name indeed"}`)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})
}
