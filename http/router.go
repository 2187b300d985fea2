package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"prospection-agent/errs"
	"prospection-agent/metrics"
)

type RouterOptions struct {
	Prospection *ProspectionHandler
	Dashboard   *DashboardHandler

	// RateLimiter may be nil to disable rate limiting.
	RateLimiter *RateLimiter

	CORSOrigins []string
	SessionTTL  time.Duration
	SlowRequest time.Duration

	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	// Enable it only behind a proxy that overwrites those headers.
	TrustProxy bool
}

// NewRouter wires the middleware stack and every route
func NewRouter(opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	if opts.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(AccessLog(opts.SlowRequest))
	r.Use(RecoverJSON)
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", SessionHeader},
		ExposedHeaders:   []string{SessionHeader, "Content-Disposition", "X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		RespondOK(w, r, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if opts.RateLimiter != nil {
			r.Use(RateLimit(opts.RateLimiter))
		}
		r.Use(Sessions(opts.SessionTTL))

		r.Route("/prospection", func(r chi.Router) {
			r.Get("/defaults", opts.Prospection.Defaults)
			r.Post("/calculate", opts.Prospection.Calculate)
			r.Get("/history", opts.Prospection.History)
			r.Post("/export", opts.Prospection.Export)
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/summary", opts.Dashboard.Summary)
			r.Get("/demo", opts.Dashboard.Demo)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		RespondError(w, r, errs.NotFoundf("no route for %s %s", r.Method, r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, Envelope{
			StatusCode: http.StatusMethodNotAllowed,
			Status:     http.StatusText(http.StatusMethodNotAllowed),
			Code:       "method_not_allowed",
			Error:      "method " + r.Method + " not allowed",
			RequestID:  chimw.GetReqID(r.Context()),
		})
	})

	return r
}
