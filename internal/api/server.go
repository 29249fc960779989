// Package api exposes the assessment engine over HTTP. One JSON endpoint
// runs the full pipeline: climate statistics, risk aggregation, activity
// compatibility and Plan B resolution.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"paradecast/internal/advisor"
	"paradecast/internal/models"
	"paradecast/internal/store"
)

// DataSource fetches daily climate records for a coordinate and year range.
// The bool reports whether the embedded fallback dataset was used.
type DataSource interface {
	FetchDaily(ctx context.Context, lat, lon float64, startYear, endYear int) ([]models.DailyRecord, bool, error)
}

// PlanBAdvisor generates AI alternatives for an unfavorable verdict. A nil
// advisor disables generation and the static catalog is used instead.
type PlanBAdvisor interface {
	PlanB(ctx context.Context, req advisor.Request) (*models.PlanB, error)
}

type Server struct {
	source   DataSource
	advisor  PlanBAdvisor
	store    *store.Store
	validate *validator.Validate
	port     string
	cacheTTL time.Duration
}

func NewServer(source DataSource, adv PlanBAdvisor, st *store.Store, port string, cacheTTL time.Duration) *Server {
	return &Server{
		source:   source,
		advisor:  adv,
		store:    st,
		validate: validator.New(),
		port:     port,
		cacheTTL: cacheTTL,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/risk", s.handleRisk)
	mux.HandleFunc("/api/assessments", s.handleAssessments)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	return withCORS(mux)
}

func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    ":" + s.port,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
