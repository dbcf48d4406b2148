package zone

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/rounds/internal/http/respond"
	"github.com/MrJamesThe3rd/rounds/internal/zone"
)

type Handler struct {
	svc *zone.Service
}

func NewHandler(svc *zone.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.rename)
	r.Delete("/{id}", h.delete)
}

type zoneRequest struct {
	Name string `json:"name"`
}

type zoneResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func toResponse(z *zone.Zone) zoneResponse {
	return zoneResponse{ID: z.ID, Name: z.Name}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	zones, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]zoneResponse, len(zones))
	for i, z := range zones {
		resp[i] = toResponse(z)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req zoneRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	z, err := h.svc.Create(r.Context(), req.Name)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(z))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r, "id")
	if !ok {
		return
	}

	z, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(z))
}

func (h *Handler) rename(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r, "id")
	if !ok {
		return
	}

	var req zoneRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	z, err := h.svc.Rename(r.Context(), id, req.Name)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(z))
}

// delete leaves the zone's jobs in place without a zone.
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
