package customer

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/rounds/internal/customer"
	"github.com/MrJamesThe3rd/rounds/internal/http/respond"
	"github.com/MrJamesThe3rd/rounds/internal/job"
)

type Handler struct {
	svc  *customer.Service
	jobs *job.Service
}

func NewHandler(svc *customer.Service, jobs *job.Service) *Handler {
	return &Handler{svc: svc, jobs: jobs}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/invoice-address", h.setInvoiceAddress)
}

// LegacyRoutes serves the flat customer feed under /api.
func (h *Handler) LegacyRoutes(r chi.Router) {
	r.Get("/customers", h.legacyList)
}

type customerRequest struct {
	Forename  string `json:"forename"`
	Surname   string `json:"surname"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
}

func (req customerRequest) params() customer.Params {
	return customer.Params{
		Forename:  req.Forename,
		Surname:   req.Surname,
		Email:     req.Email,
		Telephone: req.Telephone,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	cs, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, ToResponseList(cs))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	c, err := h.svc.Create(r.Context(), req.params())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(c))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r, "id")
	if !ok {
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	jobs, err := h.jobs.ListByCustomer(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toDetailResponse(c, jobs))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r, "id")
	if !ok {
		return
	}

	var req customerRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	c, err := h.svc.Update(r.Context(), id, req.params())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(c))
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

func (h *Handler) setInvoiceAddress(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r, "id")
	if !ok {
		return
	}

	var req respond.Address
	if !respond.Decode(w, r, &req) {
		return
	}

	c, err := h.svc.SetInvoiceAddress(r.Context(), id, *req.Params())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(c))
}

func (h *Handler) legacyList(w http.ResponseWriter, r *http.Request) {
	cs, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]legacyCustomer, len(cs))
	for i, c := range cs {
		resp[i] = toLegacy(c)
	}

	respond.JSON(w, http.StatusOK, resp)
}
