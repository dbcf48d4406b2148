package importcsv

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/rounds/internal/customer"
	customerHandler "github.com/MrJamesThe3rd/rounds/internal/http/customer"
	"github.com/MrJamesThe3rd/rounds/internal/http/respond"
	"github.com/MrJamesThe3rd/rounds/internal/importer"
)

// maxUpload caps the multipart form kept in memory.
const maxUpload = 10 << 20

type Handler struct {
	importSvc   *importer.Service
	customerSvc *customer.Service
}

func NewHandler(importSvc *importer.Service, customerSvc *customer.Service) *Handler {
	return &Handler{
		importSvc:   importSvc,
		customerSvc: customerSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/customers", h.importCustomers)
}

type importResponse struct {
	Imported  int                        `json:"imported"`
	Charset   string                     `json:"charset"`
	Customers []customerHandler.Response `json:"customers"`
}

func (h *Handler) importCustomers(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		respond.Message(w, http.StatusBadRequest, "failed to parse form: "+err.Error())
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	batch, err := h.importSvc.Parse(file)
	if err != nil {
		if errors.Is(err, importer.ErrNoHeader) || errors.Is(err, importer.ErrEmpty) {
			respond.Message(w, http.StatusBadRequest, err.Error())
			return
		}

		respond.Error(w, r, err)

		return
	}

	created, err := h.customerSvc.Import(r.Context(), batch.Rows)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, importResponse{
		Imported:  len(created),
		Charset:   batch.Charset,
		Customers: customerHandler.ToResponseList(created),
	})
}
