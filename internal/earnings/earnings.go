package earnings

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/rounds/internal/payment"
	"github.com/MrJamesThe3rd/rounds/internal/zone"
)

// Summary reconciles what the book of jobs is worth against what was
// collected.
//
// Theoretical counts each job's price once, however often it was done.
// Actual and Unpaid count the price once per completion.
type Summary struct {
	Theoretical decimal.Decimal
	Actual      decimal.Decimal
	Unpaid      decimal.Decimal
}

// Completion is the part of a history row earnings are computed from.
type Completion struct {
	Timestamp time.Time
	Price     decimal.Decimal
	Paid      bool
}

// Week is one bucket of completed-work value. The window is [Start, End).
type Week struct {
	Start       time.Time
	End         time.Time
	Theoretical decimal.Decimal
	Actual      decimal.Decimal
}

// WeeklyBuckets splits the weeks before now into windows ordered oldest
// first. Theoretical sums every completion in the window, Actual only the
// paid ones. Completions outside all windows are ignored.
func WeeklyBuckets(now time.Time, weeks int, completions []Completion) []Week {
	if weeks <= 0 {
		return nil
	}

	buckets := make([]Week, weeks)

	for k := range buckets {
		i := weeks - 1 - k
		buckets[k] = Week{
			Start:       now.AddDate(0, 0, -7*(i+1)),
			End:         now.AddDate(0, 0, -7*i),
			Theoretical: decimal.Zero,
			Actual:      decimal.Zero,
		}
	}

	for _, c := range completions {
		for k := range buckets {
			b := &buckets[k]
			if c.Timestamp.Before(b.Start) || !c.Timestamp.Before(b.End) {
				continue
			}

			b.Theoretical = b.Theoretical.Add(c.Price)
			if c.Paid {
				b.Actual = b.Actual.Add(c.Price)
			}

			break
		}
	}

	return buckets
}

// ZoneStat is the job count and price total of one zone.
type ZoneStat struct {
	ZoneID  int64
	Name    string
	Jobs    int
	Revenue decimal.Decimal
}

// Distribution drops the zones without jobs.
func Distribution(stats []ZoneStat) []ZoneStat {
	out := make([]ZoneStat, 0, len(stats))

	for _, s := range stats {
		if s.Jobs > 0 {
			out = append(out, s)
		}
	}

	return out
}

// PaymentCount is how many completions in a zone were settled with one
// payment type. A nil ZoneID is the "No Zone" bucket; a nil PaymentType marks
// a zone that has no settled completions.
type PaymentCount struct {
	ZoneID      *int64
	ZoneName    string
	PaymentType *payment.Type
	Count       int
}

// ZonePayments holds the per-type completion counts of one zone.
type ZonePayments struct {
	ZoneID *int64
	Name   string
	Counts map[payment.Type]int
}

func (z ZonePayments) Total() int {
	n := 0
	for _, c := range z.Counts {
		n += c
	}

	return n
}

// GroupZonePayments folds flat counts into one entry per zone, keeping the
// order zones first appear in and always ending with the "No Zone" bucket.
func GroupZonePayments(counts []PaymentCount) []ZonePayments {
	var (
		out    []ZonePayments
		index  = map[int64]int{}
		noZone = ZonePayments{Name: zone.NoZoneName, Counts: map[payment.Type]int{}}
	)

	for _, c := range counts {
		target := &noZone

		if c.ZoneID != nil {
			i, ok := index[*c.ZoneID]
			if !ok {
				i = len(out)
				index[*c.ZoneID] = i
				out = append(out, ZonePayments{ZoneID: c.ZoneID, Name: c.ZoneName, Counts: map[payment.Type]int{}})
			}

			target = &out[i]
		}

		if c.PaymentType != nil && c.Count > 0 {
			target.Counts[*c.PaymentType] += c.Count
		}
	}

	return append(out, noZone)
}

// Stats is everything the statistics page shows.
type Stats struct {
	Summary      Summary
	Weeks        []Week
	Zones        []ZoneStat
	Distribution []ZoneStat
	ZonePayments []ZonePayments
}
