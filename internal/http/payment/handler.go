package payment

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/rounds/internal/http/respond"
	"github.com/MrJamesThe3rd/rounds/internal/payment"
)

type Handler struct {
	svc *payment.Service
}

func NewHandler(svc *payment.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/unpaid", h.unpaid)
	r.Post("/{id}/mark-paid", h.markPaid)
}

// TypeRoutes serves the fixed list of payment types.
func (h *Handler) TypeRoutes(r chi.Router) {
	r.Get("/", h.types)
}

type outstandingResponse struct {
	ID           int64           `json:"id"`
	JobID        int64           `json:"job_id"`
	CustomerID   *int64          `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	ZoneName     string          `json:"zone_name"`
	Info         string          `json:"info"`
	Price        decimal.Decimal `json:"price"`
	Timestamp    time.Time       `json:"timestamp"`
}

type unpaidResponse struct {
	Items []outstandingResponse `json:"items"`
	Total decimal.Decimal       `json:"total"`
}

type markPaidRequest struct {
	PaymentTypeID payment.Type `json:"payment_type_id"`
}

type typeResponse struct {
	ID   payment.Type `json:"id"`
	Name string       `json:"name"`
}

func (h *Handler) unpaid(w http.ResponseWriter, r *http.Request) {
	items, total, err := h.svc.Unpaid(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := unpaidResponse{
		Items: make([]outstandingResponse, len(items)),
		Total: total,
	}

	for i, it := range items {
		resp.Items[i] = outstandingResponse{
			ID:           it.HistoryID,
			JobID:        it.JobID,
			CustomerID:   it.CustomerID,
			CustomerName: it.CustomerName,
			ZoneName:     it.ZoneName,
			Info:         it.Info,
			Price:        it.Price,
			Timestamp:    it.Timestamp,
		}
	}

	respond.JSON(w, http.StatusOK, resp)
}

// markPaid takes a job history id, not a job id.
func (h *Handler) markPaid(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r, "id")
	if !ok {
		return
	}

	var req markPaidRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	if err := h.svc.MarkPaid(r.Context(), id, req.PaymentTypeID); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) types(w http.ResponseWriter, _ *http.Request) {
	types := payment.Types()

	resp := make([]typeResponse, len(types))
	for i, t := range types {
		resp[i] = typeResponse{ID: t, Name: t.String()}
	}

	respond.JSON(w, http.StatusOK, resp)
}
