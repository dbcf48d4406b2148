package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/rounds/internal/customer"
	"github.com/MrJamesThe3rd/rounds/internal/earnings"
	customerHandler "github.com/MrJamesThe3rd/rounds/internal/http/customer"
	"github.com/MrJamesThe3rd/rounds/internal/http/respond"
	statsHandler "github.com/MrJamesThe3rd/rounds/internal/http/stats"
	"github.com/MrJamesThe3rd/rounds/internal/job"
)

// recentCustomers is how many new customers the dashboard lists.
const recentCustomers = 5

type Handler struct {
	customers *customer.Service
	jobs      *job.Service
	earnings  *earnings.Service
}

func NewHandler(customers *customer.Service, jobs *job.Service, earnings *earnings.Service) *Handler {
	return &Handler{customers: customers, jobs: jobs, earnings: earnings}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.show)
}

type dashboardResponse struct {
	TotalCustomers  int                          `json:"total_customers"`
	RecentCustomers []customerHandler.Response   `json:"recent_customers"`
	DueJobs         int                          `json:"due_jobs"`
	Earnings        statsHandler.SummaryResponse `json:"earnings"`
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	total, err := h.customers.Count(ctx)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	recent, err := h.customers.Recent(ctx, recentCustomers)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	due, err := h.jobs.CountDue(ctx)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	summary, err := h.earnings.Summary(ctx)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, dashboardResponse{
		TotalCustomers:  total,
		RecentCustomers: customerHandler.ToResponseList(recent),
		DueJobs:         due,
		Earnings:        statsHandler.ToSummaryResponse(summary),
	})
}
