package stats

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/rounds/internal/earnings"
	"github.com/MrJamesThe3rd/rounds/internal/http/respond"
)

type Handler struct {
	svc *earnings.Service
}

func NewHandler(svc *earnings.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.stats)
}

type SummaryResponse struct {
	Theoretical decimal.Decimal `json:"theoretical"`
	Actual      decimal.Decimal `json:"actual"`
	Unpaid      decimal.Decimal `json:"unpaid"`
}

type weekResponse struct {
	Label       string          `json:"label"`
	Start       time.Time       `json:"start"`
	End         time.Time       `json:"end"`
	Theoretical decimal.Decimal `json:"theoretical"`
	Actual      decimal.Decimal `json:"actual"`
}

type zoneStatResponse struct {
	ZoneID  int64           `json:"zone_id"`
	Name    string          `json:"name"`
	Jobs    int             `json:"jobs"`
	Revenue decimal.Decimal `json:"revenue"`
}

type zonePaymentsResponse struct {
	ZoneID *int64         `json:"zone_id"`
	Name   string         `json:"name"`
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

type statsResponse struct {
	Summary          SummaryResponse        `json:"summary"`
	Weekly           []weekResponse         `json:"weekly"`
	ZoneStats        []zoneStatResponse     `json:"zone_stats"`
	ZoneDistribution []zoneStatResponse     `json:"zone_distribution"`
	ZonePayments     []zonePaymentsResponse `json:"zone_payment_distribution"`
}

func ToSummaryResponse(s earnings.Summary) SummaryResponse {
	return SummaryResponse{
		Theoretical: s.Theoretical,
		Actual:      s.Actual,
		Unpaid:      s.Unpaid,
	}
}

// stats accepts ?weeks=N to widen or narrow the weekly breakdown.
func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	weeks, _ := strconv.Atoi(r.URL.Query().Get("weeks"))
	if weeks > 104 {
		weeks = 104
	}

	st, err := h.svc.Stats(r.Context(), weeks)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := statsResponse{
		Summary:          ToSummaryResponse(st.Summary),
		Weekly:           make([]weekResponse, len(st.Weeks)),
		ZoneStats:        toZoneStats(st.Zones),
		ZoneDistribution: toZoneStats(st.Distribution),
		ZonePayments:     make([]zonePaymentsResponse, len(st.ZonePayments)),
	}

	for i, wk := range st.Weeks {
		resp.Weekly[i] = weekResponse{
			Label:       wk.Start.Format(time.DateOnly),
			Start:       wk.Start,
			End:         wk.End,
			Theoretical: wk.Theoretical,
			Actual:      wk.Actual,
		}
	}

	for i, zp := range st.ZonePayments {
		counts := make(map[string]int, len(zp.Counts))
		for t, n := range zp.Counts {
			counts[t.String()] = n
		}

		resp.ZonePayments[i] = zonePaymentsResponse{
			ZoneID: zp.ZoneID,
			Name:   zp.Name,
			Counts: counts,
			Total:  zp.Total(),
		}
	}

	respond.JSON(w, http.StatusOK, resp)
}

func toZoneStats(stats []earnings.ZoneStat) []zoneStatResponse {
	resp := make([]zoneStatResponse, len(stats))
	for i, s := range stats {
		resp[i] = zoneStatResponse{
			ZoneID:  s.ZoneID,
			Name:    s.Name,
			Jobs:    s.Jobs,
			Revenue: s.Revenue,
		}
	}

	return resp
}
