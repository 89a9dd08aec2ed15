// Package api serves the dashboard read model over HTTP/JSON: the company
// list, dossiers, chart series, comparisons, reports and preferences.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sells-group/targets-navigator/internal/chart"
	"github.com/sells-group/targets-navigator/internal/dossier"
	"github.com/sells-group/targets-navigator/internal/inflight"
	"github.com/sells-group/targets-navigator/internal/model"
	"github.com/sells-group/targets-navigator/internal/prefs"
	"github.com/sells-group/targets-navigator/internal/ranking"
	"github.com/sells-group/targets-navigator/internal/report"
)

// Reader is the read model the API serves. *dossier.Service satisfies it.
type Reader interface {
	ListCompanies(ctx context.Context, q dossier.ListQuery) model.Result[dossier.CompanyPage]
	GetCompany(ctx context.Context, key string) model.Result[model.Company]
	GetCompanyDossier(ctx context.Context, key string) model.Result[*model.Dossier]
	GetPillarDetails(ctx context.Context, key string, pt model.PillarType) model.Result[*model.DetailedPillarScore]
	GetPillarScores(ctx context.Context, keys []string) model.Result[dossier.PillarScores]
	Compare(ctx context.Context, keys []string) model.Result[dossier.Comparison]
	Bands() ranking.Bands
	Ping(ctx context.Context) error
}

// Config tunes the HTTP layer.
type Config struct {
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
	MinBubble      float64
	MaxBubble      float64
	RequestTimeout time.Duration
}

// Server holds the API dependencies.
type Server struct {
	reader  Reader
	prefs   *prefs.Store
	reports *report.Generator
	tracker *inflight.Tracker
	cfg     Config
}

// New builds a Server. A nil tracker disables latest-wins tracking.
func New(reader Reader, ps *prefs.Store, reports *report.Generator, tracker *inflight.Tracker, cfg Config) *Server {
	if cfg.MinBubble == 0 && cfg.MaxBubble == 0 {
		cfg.MinBubble, cfg.MaxBubble = chart.DefaultMinSize, chart.DefaultMaxSize
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = time.Minute
	}
	return &Server{reader: reader, prefs: ps, reports: reports, tracker: tracker, cfg: cfg}
}

// Routes returns the chi router with middleware and every endpoint mounted.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", viewSessionHeader, clientHeader},
		ExposedHeaders:   []string{"Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if s.cfg.RateLimitRPS > 0 {
		r.Use(newIPRateLimiter(s.cfg.RateLimitRPS, s.cfg.RateLimitBurst).Handler)
	}
	r.Use(middleware.Timeout(s.cfg.RequestTimeout))

	r.Get("/health", s.health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/filters", s.filterOptions)

		r.Get("/companies", s.listCompanies)
		r.Route("/companies/{key}", func(r chi.Router) {
			r.Get("/", s.getCompany)
			r.Get("/dossier", s.getDossier)
			r.Get("/pillars/{pillar}", s.getPillarDetails)
			r.Get("/radar", s.getRadar)
		})
		r.Post("/pillar-scores", s.pillarScores)

		r.Get("/charts/bubble", s.bubbleChart)
		r.Post("/compare", s.compare)

		r.Get("/reports/company/{key}", s.companyReport)
		r.Get("/reports/dossier/{key}", s.dossierReport)
		r.Post("/reports/compare", s.compareReport)

		r.Get("/prefs/theme", s.getTheme)
		r.Put("/prefs/theme", s.putTheme)
		r.Get("/prefs/sidebar", s.getSidebar)
		r.Put("/prefs/sidebar", s.putSidebar)
	})
	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if err := s.reader.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, envelope{Data: map[string]string{"status": "degraded"}, Error: err.Error()})
		return
	}
	writeData(w, http.StatusOK, map[string]string{"status": "ok"})
}

type filterOptionsResponse struct {
	model.FilterOptions
	Bands ranking.Bands `json:"bands"`
}

func (s *Server) filterOptions(w http.ResponseWriter, _ *http.Request) {
	opts := model.DefaultFilterOptions()
	bands := s.reader.Bands()
	opts.RevenueBands = bands.Labels()
	writeData(w, http.StatusOK, filterOptionsResponse{FilterOptions: opts, Bands: bands})
}
