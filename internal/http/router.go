package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/rounds/internal/http/customer"
	"github.com/MrJamesThe3rd/rounds/internal/http/dashboard"
	"github.com/MrJamesThe3rd/rounds/internal/http/export"
	"github.com/MrJamesThe3rd/rounds/internal/http/importcsv"
	"github.com/MrJamesThe3rd/rounds/internal/http/job"
	mw "github.com/MrJamesThe3rd/rounds/internal/http/middleware"
	"github.com/MrJamesThe3rd/rounds/internal/http/payment"
	"github.com/MrJamesThe3rd/rounds/internal/http/respond"
	"github.com/MrJamesThe3rd/rounds/internal/http/stats"
	"github.com/MrJamesThe3rd/rounds/internal/http/zone"
)

// Options tunes the middleware stack.
type Options struct {
	Timeout        time.Duration
	MaxBodyBytes   int64
	RateLimitRPS   float64
	RateLimitBurst int
	AllowedOrigins []string
}

// Handlers groups every route handler the router mounts.
type Handlers struct {
	Dashboard *dashboard.Handler
	Customers *customer.Handler
	Jobs      *job.Handler
	Zones     *zone.Handler
	Payments  *payment.Handler
	Stats     *stats.Handler
	Import    *importcsv.Handler
	Export    *export.Handler
}

func New(h Handlers, opts Options) http.Handler {
	router := chi.NewRouter()

	router.Use(mw.RequestID)
	router.Use(middleware.RealIP)
	router.Use(mw.Logger)
	router.Use(middleware.Recoverer)
	router.Use(mw.RateLimit(opts.RateLimitRPS, opts.RateLimitBurst))
	router.Use(mw.MaxBody(opts.MaxBodyBytes))

	if opts.Timeout > 0 {
		router.Use(middleware.Timeout(opts.Timeout))
	}

	if len(opts.AllowedOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", mw.RequestIDHeader},
			ExposedHeaders: []string{mw.RequestIDHeader},
			MaxAge:         300,
		}))
	}

	router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respond.Message(w, http.StatusNotFound, "not found")
	})

	router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respond.Message(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	router.Group(h.Dashboard.Routes)

	router.Route("/customers", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		h.Customers.Routes(r)
		r.Post("/{id}/jobs", h.Jobs.CreateForCustomer)
	})

	router.Route("/jobs", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Get("/completed/export", h.Export.Completed)
		h.Jobs.Routes(r)
	})

	router.Route("/payments", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		h.Payments.Routes(r)
	})

	router.Route("/payment-types", h.Payments.TypeRoutes)
	router.Route("/stats", h.Stats.Routes)

	router.Route("/admin/zones", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		h.Zones.Routes(r)
	})

	router.Route("/import", h.Import.Routes)
	router.Route("/api", h.Customers.LegacyRoutes)

	return router
}
