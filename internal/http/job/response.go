package job

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/rounds/internal/http/respond"
	"github.com/MrJamesThe3rd/rounds/internal/job"
	"github.com/MrJamesThe3rd/rounds/internal/payment"
)

type JobResponse struct {
	ID             int64            `json:"id"`
	CustomerID     *int64           `json:"customer_id"`
	CustomerName   string           `json:"customer_name"`
	ZoneID         *int64           `json:"zone_id"`
	ZoneName       string           `json:"zone_name"`
	AddressID      *int64           `json:"address_id"`
	Address        *respond.Address `json:"address"`
	OrgID          *int64           `json:"org_id"`
	Price          decimal.Decimal  `json:"price"`
	FrequencyDays  *int             `json:"frequency_days"`
	FrequencyWeeks int              `json:"frequency_weeks"`
	DateLastDone   *string          `json:"date_last_done"`
	DateNextDue    *time.Time       `json:"date_next_due"`
	Info           string           `json:"info"`
	PaymentTypeID  *payment.Type    `json:"payment_type_id"`
	PaymentType    string           `json:"payment_type,omitempty"`
}

type scheduleResponse struct {
	JobResponse
	Status       job.Status `json:"status"`
	DaysUntilDue *int       `json:"days_until_due"`
}

type historyResponse struct {
	ID            int64         `json:"id"`
	JobID         int64         `json:"job_id"`
	Timestamp     time.Time     `json:"timestamp"`
	Paid          bool          `json:"paid"`
	PaymentTypeID *payment.Type `json:"payment_type_id"`
	PaymentType   string        `json:"payment_type,omitempty"`
}

type completionResponse struct {
	historyResponse
	Price        decimal.Decimal  `json:"price"`
	Info         string           `json:"info"`
	CustomerID   *int64           `json:"customer_id"`
	CustomerName string           `json:"customer_name"`
	ZoneID       *int64           `json:"zone_id"`
	ZoneName     string           `json:"zone_name"`
	Address      *respond.Address `json:"address"`
}

func toResponse(j *job.Job) JobResponse {
	resp := JobResponse{
		ID:            j.ID,
		CustomerID:    j.CustomerID,
		CustomerName:  j.CustomerName,
		ZoneID:        j.ZoneID,
		ZoneName:      j.ZoneName,
		AddressID:     j.AddressID,
		Address:       respond.NewAddress(j.Address),
		OrgID:         j.OrgID,
		Price:         j.Price,
		FrequencyDays: j.Frequency,
		DateNextDue:   j.DateNextDue,
		Info:          j.Info,
		PaymentTypeID: j.PaymentTypeID,
		PaymentType:   typeName(j.PaymentTypeID),
	}

	if j.Frequency != nil {
		resp.FrequencyWeeks = *j.Frequency / 7
	}

	if j.DateLastDone != nil {
		resp.DateLastDone = new(j.DateLastDone.Format(time.DateOnly))
	}

	return resp
}

func ToResponseList(jobs []*job.Job) []JobResponse {
	resp := make([]JobResponse, len(jobs))
	for i, j := range jobs {
		resp[i] = toResponse(j)
	}

	return resp
}

func toScheduleList(entries []*job.ScheduleEntry) []scheduleResponse {
	resp := make([]scheduleResponse, len(entries))
	for i, e := range entries {
		resp[i] = scheduleResponse{
			JobResponse:  toResponse(e.Job),
			Status:       e.Status,
			DaysUntilDue: e.DaysUntilDue,
		}
	}

	return resp
}

func toHistoryResponse(h *job.History) historyResponse {
	return historyResponse{
		ID:            h.ID,
		JobID:         h.JobID,
		Timestamp:     h.Timestamp,
		Paid:          h.Paid,
		PaymentTypeID: h.PaymentType,
		PaymentType:   typeName(h.PaymentType),
	}
}

func toCompletionList(cs []*job.Completion) []completionResponse {
	resp := make([]completionResponse, len(cs))
	for i, c := range cs {
		resp[i] = completionResponse{
			historyResponse: toHistoryResponse(&c.History),
			Price:           c.Price,
			Info:            c.Info,
			CustomerID:      c.CustomerID,
			CustomerName:    c.CustomerName,
			ZoneID:          c.ZoneID,
			ZoneName:        c.ZoneName,
			Address:         respond.NewAddress(c.Address),
		}
	}

	return resp
}

func typeName(t *payment.Type) string {
	if t == nil {
		return ""
	}

	return t.String()
}
