package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/rounds/internal/job"
)

func TestFilterQuery(t *testing.T) {
	assert.Equal(t, "none", filterQuery(job.CompletedFilter{Paid: job.PaidAll}))

	from := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	f := job.CompletedFilter{Paid: job.UnpaidOnly, Sort: job.SortCustomerAsc, From: &from}

	got := filterQuery(f)
	assert.Contains(t, got, "paid=unpaid")
	assert.Contains(t, got, "from=2024-07-01")
	assert.Contains(t, got, "sort=customer_asc")
}

func TestCompletedModel_ShowsQuery(t *testing.T) {
	m := NewCompletedModel(job.NewService(job.NewMockRepository(gomock.NewController(t))))
	m.loading = false
	m.paidIdx = 1
	m.applyFilter()

	assert.Contains(t, m.View(), "Query: paid=paid")
}

func TestDueModel_UsesServiceClock(t *testing.T) {
	now := time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)
	svc := job.NewService(job.NewMockRepository(gomock.NewController(t)), job.WithClock(func() time.Time { return now }))

	m := NewDueModel(svc)
	m.loading = false

	assert.Contains(t, m.View(), "2024-06-12")
}
