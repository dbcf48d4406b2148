package job

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/rounds/internal/http/respond"
	"github.com/MrJamesThe3rd/rounds/internal/job"
	"github.com/MrJamesThe3rd/rounds/internal/payment"
)

type Handler struct {
	svc *job.Service
}

func NewHandler(svc *job.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/due", h.schedule)
	r.Get("/completed", h.completed)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/complete", h.complete)
}

type jobRequest struct {
	Price          decimal.Decimal  `json:"price"`
	FrequencyWeeks int              `json:"frequency_weeks"`
	ZoneID         *int64           `json:"zone_id"`
	Info           string           `json:"info"`
	PaymentTypeID  *payment.Type    `json:"payment_type_id"`
	Address        *respond.Address `json:"address"`
}

func (req jobRequest) params() job.Params {
	return job.Params{
		Price:          req.Price,
		FrequencyWeeks: req.FrequencyWeeks,
		ZoneID:         req.ZoneID,
		Info:           req.Info,
		PaymentTypeID:  req.PaymentTypeID,
		Address:        req.Address.Params(),
	}
}

type completeRequest struct {
	Paid          bool          `json:"paid"`
	PaymentTypeID *payment.Type `json:"payment_type_id"`
}

// CreateForCustomer handles POST /customers/{id}/jobs.
func (h *Handler) CreateForCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, ok := respond.ID(w, r, "id")
	if !ok {
		return
	}

	var req jobRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	j, err := h.svc.Create(r.Context(), customerID, req.params())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(j))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, ToResponseList(jobs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r, "id")
	if !ok {
		return
	}

	j, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(j))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r, "id")
	if !ok {
		return
	}

	var req jobRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	j, err := h.svc.Update(r.Context(), id, req.params())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(j))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) complete(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r, "id")
	if !ok {
		return
	}

	var req completeRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	history, err := h.svc.Complete(r.Context(), id, job.CompleteParams{
		Paid:        req.Paid,
		PaymentType: req.PaymentTypeID,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toHistoryResponse(history))
}

// schedule lists the round. ?status=due keeps only due and overdue jobs.
func (h *Handler) schedule(w http.ResponseWriter, r *http.Request) {
	onlyDue := r.URL.Query().Get("status") == "due"

	entries, err := h.svc.Schedule(r.Context(), onlyDue)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toScheduleList(entries))
}

func (h *Handler) completed(w http.ResponseWriter, r *http.Request) {
	filter := job.ParseCompletedFilter(r.URL.Query())

	cs, err := h.svc.Completed(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toCompletionList(cs))
}
