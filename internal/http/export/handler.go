package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/MrJamesThe3rd/rounds/internal/export"
	"github.com/MrJamesThe3rd/rounds/internal/http/respond"
	"github.com/MrJamesThe3rd/rounds/internal/job"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

// Completed handles GET /jobs/completed/export. It takes the same query
// parameters as the completed-jobs listing.
func (h *Handler) Completed(w http.ResponseWriter, r *http.Request) {
	filter := job.ParseCompletedFilter(r.URL.Query())

	var buf bytes.Buffer

	if _, err := h.svc.WriteCompleted(r.Context(), &buf, filter); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.Filename(time.Now())))

	if _, err := buf.WriteTo(w); err != nil {
		slog.ErrorContext(r.Context(), "failed to write export", "error", err)
	}
}
