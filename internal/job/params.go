package job

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/rounds/internal/address"
	"github.com/MrJamesThe3rd/rounds/internal/payment"
	"github.com/MrJamesThe3rd/rounds/internal/validation"
)

// Params are the editable fields of a job. Frequency is entered in weeks.
type Params struct {
	Price          decimal.Decimal `json:"price" validate:"nonnegative,places=2,below=100000000"` // NUMERIC(10,2)
	FrequencyWeeks int             `json:"frequency_weeks" validate:"gte=0"`
	ZoneID         *int64          `json:"zone_id"`
	Info           string          `json:"info" validate:"max=100"`
	PaymentTypeID  *payment.Type   `json:"payment_type_id" validate:"omitnil,known"`
	Address        *address.Params `json:"address"`
}

// FrequencyDays converts the weekly frequency to the stored day count. Zero
// weeks means the job does not recur.
func (p Params) FrequencyDays() *int {
	if p.FrequencyWeeks <= 0 {
		return nil
	}

	return new(p.FrequencyWeeks * 7)
}

// Validate checks p. Zone is mandatory only when a job is created, and a
// blank address means the job keeps the customer's.
func (p Params) Validate(requireZone bool) validation.Violations {
	p.Info = strings.TrimSpace(p.Info)
	if p.hasAddress() {
		p.Address = new(p.Address.Normalize())
	} else {
		p.Address = nil
	}

	v := validation.Struct(p)

	if requireZone && p.ZoneID == nil {
		v.Add("zone_id", "is required")
	}

	return v
}

func (p Params) hasAddress() bool {
	return p.Address != nil && !p.Address.IsZero()
}

// CompleteParams describe how a visit was settled.
type CompleteParams struct {
	Paid        bool          `json:"paid"`
	PaymentType *payment.Type `json:"payment_type_id" validate:"required_if=Paid true,omitnil,known"`
}

// Validate requires a known payment type for paid visits. The type of an
// unpaid visit is ignored.
func (p CompleteParams) Validate() validation.Violations {
	if !p.Paid {
		p.PaymentType = nil
	}

	return validation.Struct(p)
}
