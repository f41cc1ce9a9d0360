package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shopintel/competitor-xray/internal/catalog"
	"github.com/shopintel/competitor-xray/internal/config"
	"github.com/shopintel/competitor-xray/internal/model"
	"github.com/shopintel/competitor-xray/internal/pipeline"
	"github.com/shopintel/competitor-xray/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Serves the pipeline over HTTP: trigger runs, browse execution history, and list the reference catalog.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initPipeline()
		if err != nil {
			return err
		}
		defer env.Close()

		api := &apiServer{
			cfg:    cfg,
			store:  env.Store,
			source: env.Source,
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: api.router(),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			_ = srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// apiServer carries the dependencies shared by the HTTP handlers. Pipelines
// are built per request so a request-level filter override never leaks into
// other runs.
type apiServer struct {
	cfg    *config.Config
	store  store.Store
	source pipeline.Source
}

func (s *apiServer) router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/products", s.handleProducts)
	r.Post("/executions", s.handleRun)
	r.Get("/executions", s.handleListExecutions)
	r.Get("/executions/{id}", s.handleGetExecution)
	r.Delete("/executions", s.handleClearExecutions)

	return r
}

func (s *apiServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *apiServer) handleProducts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, catalog.ReferenceProducts())
}

// runRequest triggers a pipeline run. Exactly one of ReferenceASIN or
// Reference must be set; Filters optionally overrides the configured bounds
// for this run only.
type runRequest struct {
	ReferenceASIN string              `json:"reference_asin,omitempty"`
	Reference     *model.Product      `json:"reference,omitempty"`
	Filters       *model.FilterConfig `json:"filters,omitempty"`
}

func (s *apiServer) handleRun(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var ref model.Product
	switch {
	case req.Reference != nil:
		ref = *req.Reference
	case req.ReferenceASIN != "":
		found, err := catalog.FindReference(req.ReferenceASIN)
		if err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		ref = found
	default:
		writeError(w, http.StatusBadRequest, "reference_asin or reference is required")
		return
	}

	filters := s.cfg.Filters
	if req.Filters != nil {
		if err := config.ValidateFilters(*req.Filters); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		filters = *req.Filters
	}

	opts := []pipeline.Option{}
	if len(s.cfg.Keywords.Synonyms) > 0 {
		opts = append(opts, pipeline.WithSynonyms(s.cfg.Keywords.Synonyms))
	}
	if s.cfg.Pacing.Mode == "fixed" {
		opts = append(opts, pipeline.WithPacer(pipeline.DefaultFixedPacer()))
	}
	p := pipeline.New(filters, s.cfg.Scoring, s.source, s.store, opts...)

	exec, err := p.Run(r.Context(), ref, nil)
	if err != nil {
		if eris.Is(err, pipeline.ErrNoCandidates) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, exec)
}

func (s *apiServer) handleListExecutions(w http.ResponseWriter, r *http.Request) {
	execs, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	summaries := make([]model.ExecutionSummary, 0, len(execs))
	for _, e := range execs {
		summaries = append(summaries, e.Summary())
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *apiServer) handleGetExecution(w http.ResponseWriter, r *http.Request) {
	exec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if eris.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "execution not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, exec)
}

func (s *apiServer) handleClearExecutions(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Clear(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
