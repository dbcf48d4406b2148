package job

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/rounds/internal/address"
	"github.com/MrJamesThe3rd/rounds/internal/payment"
)

// Job is a recurring service contract for a customer at an address.
type Job struct {
	ID            int64
	CustomerID    *int64
	AddressID     *int64
	ZoneID        *int64
	OrgID         *int64
	Price         decimal.Decimal
	Frequency     *int // Days between visits; nil when the job does not recur
	DateLastDone  *time.Time
	DateNextDue   *time.Time
	Info          string
	PaymentTypeID *payment.Type // Expected payment method, a hint only

	CustomerName string           // Loaded via JOIN
	ZoneName     string           // Loaded via JOIN
	Address      *address.Address // Loaded via JOIN
}

// History is one completion of a job.
type History struct {
	ID          int64
	JobID       int64
	Timestamp   time.Time
	Paid        bool
	PaymentType *payment.Type
}

// Completion is a history row joined with the job, customer, zone and
// address it belongs to.
type Completion struct {
	History

	Price        decimal.Decimal
	Info         string
	CustomerID   *int64
	CustomerName string
	ZoneID       *int64
	ZoneName     string
	Address      *address.Address
}

type ListFilter struct {
	CustomerID *int64
}

// ScheduleEntry is a job annotated with its due state at a point in time.
type ScheduleEntry struct {
	Job          *Job
	Status       Status
	DaysUntilDue *int
}
