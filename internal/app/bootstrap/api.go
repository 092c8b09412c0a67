package bootstrap

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/wolfman30/launch216/internal/api/router"
	appconfig "github.com/wolfman30/launch216/internal/config"
	"github.com/wolfman30/launch216/internal/leads"
	"github.com/wolfman30/launch216/internal/observability/metrics"
	"github.com/wolfman30/launch216/internal/site"
	"github.com/wolfman30/launch216/pkg/logging"
)

// API is the assembled HTTP surface shared by the server and Lambda binaries.
type API struct {
	Handler http.Handler
	Metrics *metrics.LeadMetrics
	redis   *redis.Client
}

// Close releases the Redis connection, if any.
func (a *API) Close() error {
	if a == nil || a.redis == nil {
		return nil
	}
	return a.redis.Close()
}

// BuildLeadMetrics registers lead metrics on a private registry and returns
// the handler that exposes it.
func BuildLeadMetrics() (http.Handler, *metrics.LeadMetrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewLeadMetrics(reg)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), m
}

// BuildAPI wires sender, renderer, guard, metrics and site into a router.
func BuildAPI(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (*API, error) {
	if logger == nil {
		logger = logging.Default()
	}

	sender, err := BuildEmailSender(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if cfg.RecipientEmail == "" {
		logger.Warn("RECIPIENT_EMAIL is not set, every lead submission will fail with 500")
	}

	api := &API{}
	var metricsHandler http.Handler
	var recorder leads.Recorder
	if cfg.MetricsEnabled {
		metricsHandler, api.Metrics = BuildLeadMetrics()
		recorder = api.Metrics
	}

	renderer := leads.NewRenderer(leads.Branding{
		SiteName:   cfg.SiteName,
		SiteDomain: cfg.SiteDomain,
	})
	svc := leads.NewService(sender, renderer, leads.ServiceConfig{
		From:      cfg.SenderAddress(),
		Recipient: cfg.RecipientEmail,
	}, recorder, logger)

	opts := []leads.HandlerOption{}
	if recorder != nil {
		opts = append(opts, leads.WithRecorder(recorder))
	}
	api.redis = BuildRedisClient(ctx, cfg, logger, true)
	if guard := BuildVelocityGuard(api.redis, cfg, logger); guard != nil {
		logger.Info("submission velocity guard enabled",
			"max", cfg.SubmissionVelocityMax,
			"window", cfg.SubmissionVelocityWindow.String(),
		)
		opts = append(opts, leads.WithGuard(guard))
	}

	api.Handler = router.New(&router.Config{
		Logger:       logger,
		LeadsHandler: leads.NewHandler(svc, logger, opts...),
		SiteHandler: site.NewHandler(site.Config{
			SiteName:      cfg.SiteName,
			SiteDomain:    cfg.SiteDomain,
			FallbackEmail: cfg.FallbackContactEmail,
		}, logger),
		MetricsHandler:     metricsHandler,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitRPS:       cfg.RateLimitRPS,
		RateLimitBurst:     cfg.RateLimitBurst,
	})
	return api, nil
}
