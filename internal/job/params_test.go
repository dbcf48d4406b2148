package job_test

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/rounds/internal/address"
	"github.com/MrJamesThe3rd/rounds/internal/job"
	"github.com/MrJamesThe3rd/rounds/internal/payment"
)

func TestParams_Validate(t *testing.T) {
	zone := new(int64(1))

	type testCase struct {
		name        string
		params      job.Params
		requireZone bool
		wantFields  []string
	}

	tests := []testCase{
		{
			name:        "Valid",
			params:      job.Params{Price: decimal.RequireFromString("12.50"), FrequencyWeeks: 2, ZoneID: zone},
			requireZone: true,
		},
		{
			name:        "MissingZoneOnCreate",
			params:      job.Params{Price: decimal.NewFromInt(10)},
			requireZone: true,
			wantFields:  []string{"zone_id"},
		},
		{
			name:   "MissingZoneOnEdit",
			params: job.Params{Price: decimal.NewFromInt(10)},
		},
		{
			name:       "NegativePrice",
			params:     job.Params{Price: decimal.NewFromInt(-1)},
			wantFields: []string{"price"},
		},
		{
			name:       "TooManyDecimals",
			params:     job.Params{Price: decimal.RequireFromString("1.005")},
			wantFields: []string{"price"},
		},
		{
			name:       "PriceTooLarge",
			params:     job.Params{Price: decimal.New(1, 8)},
			wantFields: []string{"price"},
		},
		{
			name:   "LongInfoTrimmedFirst",
			params: job.Params{Info: "  " + strings.Repeat("x", 100) + "  "},
		},
		{
			name:       "NegativeFrequency",
			params:     job.Params{FrequencyWeeks: -1},
			wantFields: []string{"frequency_weeks"},
		},
		{
			name:       "UnknownPaymentType",
			params:     job.Params{PaymentTypeID: new(payment.Type(9))},
			wantFields: []string{"payment_type_id"},
		},
		{
			name:       "PartialAddress",
			params:     job.Params{Address: &address.Params{Postcode: "AB1 2CD"}},
			wantFields: []string{"address.house_num_name", "address.street_name"},
		},
		{
			name:   "BlankAddressIgnored",
			params: job.Params{Address: &address.Params{HouseNumName: " "}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.params.Validate(tt.requireZone)

			assert.Len(t, v, len(tt.wantFields))

			for _, f := range tt.wantFields {
				assert.Contains(t, v, f)
			}
		})
	}
}

func TestParams_FrequencyDays(t *testing.T) {
	assert.Nil(t, job.Params{}.FrequencyDays())

	days := job.Params{FrequencyWeeks: 3}.FrequencyDays()
	require.NotNil(t, days)
	assert.Equal(t, 21, *days)
}

func TestCompleteParams_Validate(t *testing.T) {
	assert.True(t, job.CompleteParams{}.Validate().Empty())
	assert.True(t, job.CompleteParams{PaymentType: new(payment.Type(42))}.Validate().Empty())
	assert.True(t, job.CompleteParams{Paid: true, PaymentType: new(payment.TypeBankTransfer)}.Validate().Empty())

	assert.Equal(t, "is required when paid", job.CompleteParams{Paid: true}.Validate()["payment_type_id"])
	assert.Equal(t, "is not a known value", job.CompleteParams{Paid: true, PaymentType: new(payment.Type(0))}.Validate()["payment_type_id"])
}

func TestParseCompletedFilter(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		f := job.ParseCompletedFilter(url.Values{})

		assert.Equal(t, job.PaidAll, f.Paid)
		assert.Equal(t, job.SortDateDesc, f.Sort)
		assert.Nil(t, f.CustomerID)
		assert.Nil(t, f.From)
	})

	t.Run("AllValues", func(t *testing.T) {
		q := url.Values{
			"customer_id":     {"7"},
			"zone_id":         {"3"},
			"paid":            {"unpaid"},
			"payment_type_id": {"2"},
			"q":               {"  gate "},
			"from":            {"2024-01-01"},
			"to":              {"2024-01-31"},
			"sort":            {"customer_asc"},
		}

		f := job.ParseCompletedFilter(q)

		require.NotNil(t, f.CustomerID)
		assert.Equal(t, int64(7), *f.CustomerID)
		require.NotNil(t, f.ZoneID)
		assert.Equal(t, int64(3), *f.ZoneID)
		assert.Equal(t, job.UnpaidOnly, f.Paid)
		require.NotNil(t, f.PaymentType)
		assert.Equal(t, payment.TypeCard, *f.PaymentType)
		assert.Equal(t, "gate", f.Search)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *f.From)
		assert.Equal(t, job.SortCustomerAsc, f.Sort)

		assert.Equal(t, q.Get("to"), f.Query().Get("to"))
		assert.Equal(t, "gate", f.Query().Get("q"))
	})

	t.Run("InvalidValuesIgnored", func(t *testing.T) {
		f := job.ParseCompletedFilter(url.Values{
			"customer_id":     {"abc"},
			"zone_id":         {"-1"},
			"paid":            {"sometimes"},
			"payment_type_id": {"9"},
			"from":            {"01/02/2024"},
			"sort":            {"price"},
		})

		assert.Nil(t, f.CustomerID)
		assert.Nil(t, f.ZoneID)
		assert.Equal(t, job.PaidAll, f.Paid)
		assert.Nil(t, f.PaymentType)
		assert.Nil(t, f.From)
		assert.Equal(t, job.SortDateDesc, f.Sort)
		assert.Empty(t, f.Query())
	})
}
