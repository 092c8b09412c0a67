package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	httpmiddleware "github.com/wolfman30/launch216/internal/http/middleware"
	"github.com/wolfman30/launch216/internal/leads"
	"github.com/wolfman30/launch216/internal/site"
	"github.com/wolfman30/launch216/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger         *logging.Logger
	LeadsHandler   *leads.Handler
	SiteHandler    *site.Handler
	MetricsHandler http.Handler

	CORSAllowedOrigins []string

	// Per-client token bucket on the submit endpoint. Zero disables it.
	RateLimitRPS   float64
	RateLimitBurst int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if cfg.Logger == nil {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", healthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	if cfg.LeadsHandler != nil {
		submit := http.Handler(http.HandlerFunc(cfg.LeadsHandler.SubmitLead))
		if cfg.RateLimitRPS > 0 {
			submit = httpmiddleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst)(submit)
		}
		// Every method reaches the handler so non-POST gets its JSON 405.
		r.Handle("/api/submit-lead", submit)
	}

	if cfg.SiteHandler != nil {
		r.Get("/", cfg.SiteHandler.Index)
		r.Get("/static/*", cfg.SiteHandler.Assets)
	}

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
