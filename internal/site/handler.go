package site

import (
	"bytes"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/wolfman30/launch216/internal/leads"
	"github.com/wolfman30/launch216/pkg/logging"
)

// Config carries the branding rendered into the landing page.
type Config struct {
	SiteName      string
	SiteDomain    string
	FallbackEmail string
}

// Handler serves the landing page and its static assets.
type Handler struct {
	page   *template.Template
	static http.Handler
	cfg    Config
	logger *logging.Logger
	now    func() time.Time
}

type pageData struct {
	SiteName       string
	SiteDomain     string
	FallbackEmail  string
	EmailPattern   string
	RequiredFields string
	Year           int
}

// NewHandler parses the embedded page template. It panics if the template is
// malformed, which can only happen at build time.
func NewHandler(cfg Config, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.SiteName == "" {
		cfg.SiteName = "216 LAUNCH"
	}
	if cfg.SiteDomain == "" {
		cfg.SiteDomain = "216launch.com"
	}
	if cfg.FallbackEmail == "" {
		cfg.FallbackEmail = "info@216launch.com"
	}
	return &Handler{
		page:   template.Must(template.ParseFS(embeddedTemplates, "templates/index.html")),
		static: http.StripPrefix("/static/", http.FileServer(http.FS(StaticFS()))),
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// Index renders the landing page. The validation patterns come from the
// same rule set the submit handler enforces.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		SiteName:       h.cfg.SiteName,
		SiteDomain:     h.cfg.SiteDomain,
		FallbackEmail:  h.cfg.FallbackEmail,
		EmailPattern:   leads.EmailPattern,
		RequiredFields: strings.Join(leads.RequiredFields(), ","),
		Year:           h.now().Year(),
	}

	var buf bytes.Buffer
	if err := h.page.ExecuteTemplate(&buf, "index.html", data); err != nil {
		h.logger.Error("failed to render landing page", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// Assets serves /static/*.
func (h *Handler) Assets(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	h.static.ServeHTTP(w, r)
}
