package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/rounds/internal/job"
	"github.com/MrJamesThe3rd/rounds/internal/zone"
)

var header = []string{"date", "customer", "zone", "address", "info", "price", "paid", "payment_type"}

// Totals summarises an exported set of completions.
type Totals struct {
	Count  int
	Value  decimal.Decimal
	Paid   decimal.Decimal
	Unpaid decimal.Decimal
}

func Summarize(cs []*job.Completion) Totals {
	t := Totals{Value: decimal.Zero, Paid: decimal.Zero, Unpaid: decimal.Zero}

	for _, c := range cs {
		t.Count++
		t.Value = t.Value.Add(c.Price)

		if c.Paid {
			t.Paid = t.Paid.Add(c.Price)
		} else {
			t.Unpaid = t.Unpaid.Add(c.Price)
		}
	}

	return t
}

func (t Totals) String() string {
	return fmt.Sprintf("%d completed jobs | total %s | paid %s | unpaid %s",
		t.Count, t.Value.StringFixed(2), t.Paid.StringFixed(2), t.Unpaid.StringFixed(2))
}

// Service writes the completed-jobs view as CSV.
type Service struct {
	jobs *job.Service
}

func NewService(jobs *job.Service) *Service {
	return &Service{jobs: jobs}
}

// Filename names an export produced at now.
func Filename(now time.Time) string {
	return fmt.Sprintf("completed_%s.csv", now.Format("20060102"))
}

// WriteCompleted writes every completion matching filter, in the filter's
// sort order, followed by a totals row.
func (s *Service) WriteCompleted(ctx context.Context, w io.Writer, filter job.CompletedFilter) (Totals, error) {
	cs, err := s.jobs.Completed(ctx, filter)
	if err != nil {
		return Totals{}, fmt.Errorf("listing completed jobs: %w", err)
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return Totals{}, fmt.Errorf("writing header: %w", err)
	}

	for _, c := range cs {
		if err := cw.Write(record(c)); err != nil {
			return Totals{}, fmt.Errorf("writing completion %d: %w", c.ID, err)
		}
	}

	totals := Summarize(cs)

	if err := cw.Write([]string{"", "", "", "", "", "", "", ""}); err != nil {
		return Totals{}, fmt.Errorf("writing footer: %w", err)
	}

	if err := cw.Write([]string{totals.String()}); err != nil {
		return Totals{}, fmt.Errorf("writing footer: %w", err)
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return Totals{}, fmt.Errorf("flushing csv: %w", err)
	}

	return totals, nil
}

func record(c *job.Completion) []string {
	zoneName := c.ZoneName
	if zoneName == "" {
		zoneName = zone.NoZoneName
	}

	addr := ""
	if c.Address != nil {
		addr = c.Address.String()
	}

	paymentType := ""
	if c.PaymentType != nil {
		paymentType = c.PaymentType.String()
	}

	return []string{
		c.Timestamp.Format("2006-01-02 15:04"),
		c.CustomerName,
		zoneName,
		addr,
		strings.TrimSpace(c.Info),
		c.Price.StringFixed(2),
		yesNo(c.Paid),
		paymentType,
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}

	return "no"
}
