package job

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/rounds/internal/payment"
)

type PaidFilter string

const (
	PaidAll    PaidFilter = "all"
	PaidOnly   PaidFilter = "paid"
	UnpaidOnly PaidFilter = "unpaid"
)

type Sort string

const (
	SortDateDesc     Sort = "date_desc"
	SortDateAsc      Sort = "date_asc"
	SortCustomerAsc  Sort = "customer_asc"
	SortCustomerDesc Sort = "customer_desc"
	SortZoneAsc      Sort = "zone_asc"
	SortZoneDesc     Sort = "zone_desc"
	SortPaidFirst    Sort = "paid_first"
)

// Sorts lists every sort key in display order.
func Sorts() []Sort {
	return []Sort{
		SortDateDesc, SortDateAsc, SortCustomerAsc, SortCustomerDesc,
		SortZoneAsc, SortZoneDesc, SortPaidFirst,
	}
}

const dateLayout = "2006-01-02"

// CompletedFilter narrows the completed-jobs view. Nil fields do not filter.
// From and To are inclusive calendar dates.
type CompletedFilter struct {
	CustomerID  *int64
	ZoneID      *int64
	Paid        PaidFilter
	PaymentType *payment.Type
	Search      string
	From        *time.Time
	To          *time.Time
	Sort        Sort
}

// ParseCompletedFilter reads a filter from query parameters. Values that do
// not parse are dropped and the defaults apply.
func ParseCompletedFilter(q url.Values) CompletedFilter {
	f := CompletedFilter{
		CustomerID: parseID(q.Get("customer_id")),
		ZoneID:     parseID(q.Get("zone_id")),
		Paid:       PaidAll,
		Search:     strings.TrimSpace(q.Get("q")),
		From:       parseDate(q.Get("from")),
		To:         parseDate(q.Get("to")),
		Sort:       SortDateDesc,
	}

	switch p := PaidFilter(q.Get("paid")); p {
	case PaidOnly, UnpaidOnly:
		f.Paid = p
	}

	if t, err := payment.ParseType(q.Get("payment_type_id")); err == nil {
		f.PaymentType = &t
	}

	if s := Sort(q.Get("sort")); s.Valid() {
		f.Sort = s
	}

	return f
}

// Query encodes f back into query parameters, omitting defaults.
func (f CompletedFilter) Query() url.Values {
	q := url.Values{}

	if f.CustomerID != nil {
		q.Set("customer_id", strconv.FormatInt(*f.CustomerID, 10))
	}

	if f.ZoneID != nil {
		q.Set("zone_id", strconv.FormatInt(*f.ZoneID, 10))
	}

	if f.Paid != "" && f.Paid != PaidAll {
		q.Set("paid", string(f.Paid))
	}

	if f.PaymentType != nil {
		q.Set("payment_type_id", strconv.Itoa(int(*f.PaymentType)))
	}

	if f.Search != "" {
		q.Set("q", f.Search)
	}

	if f.From != nil {
		q.Set("from", f.From.Format(dateLayout))
	}

	if f.To != nil {
		q.Set("to", f.To.Format(dateLayout))
	}

	if f.Sort != "" && f.Sort != SortDateDesc {
		q.Set("sort", string(f.Sort))
	}

	return q
}

func (s Sort) Valid() bool {
	for _, known := range Sorts() {
		if s == known {
			return true
		}
	}

	return false
}

func parseID(s string) *int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return nil
	}

	return &id
}

func parseDate(s string) *time.Time {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return nil
	}

	return &t
}
