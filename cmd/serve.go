package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/localrank/internal/analysis"
	"github.com/sells-group/localrank/internal/store"
	"github.com/sells-group/localrank/pkg/places"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the analysis HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		analyzer, err := initAnalyzer()
		if err != nil {
			return err
		}
		s, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer s.Close() //nolint:errcheck

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}))

		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
		r.Post("/analyze", handleAnalyze(analyzer, s))
		r.Post("/scan", handleScan(analyzer))
		r.Get("/runs/{id}", handleGetRun(s))
		r.Get("/runs", handleListRuns(s))

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			zap.L().Info("API server listening", zap.Int("port", port))
			errCh <- srv.ListenAndServe()
		}()

		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		case err := <-errCh:
			return err
		}
	},
}

func handleAnalyze(analyzer *analysis.Analyzer, s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req analysis.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		if req.Filter.MaxResults == 0 {
			req.Filter.MaxResults = cfg.Filter.MaxResults
		}
		if req.Filter.SortBy == "" {
			req.Filter.SortBy = "relevance"
		}

		result, err := analyzer.Run(r.Context(), req)
		if err != nil {
			writeAnalysisError(w, err)
			return
		}

		if err := s.SaveAnalysis(r.Context(), result); err != nil {
			zap.L().Warn("failed to save analysis", zap.Error(err))
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func handleScan(analyzer *analysis.Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req analysis.ScanRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}

		result, err := analyzer.Scan(r.Context(), req)
		if err != nil {
			writeAnalysisError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func handleGetRun(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := s.GetAnalysis(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

func handleListRuns(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		analyses, err := s.ListAnalyses(r.Context(), store.Filter{
			Location: r.URL.Query().Get("location"),
		})
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, analyses)
	}
}

// writeAnalysisError maps analysis failures to status codes: quota/auth
// problems are the caller's configuration to fix, everything else is a 500.
func writeAnalysisError(w http.ResponseWriter, err error) {
	switch {
	case places.IsQuotaOrAuth(err):
		writeJSON(w, http.StatusPaymentRequired, map[string]string{
			"error": "provider rejected the request; check the API key and quota",
		})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "HTTP server port (defaults to config)")
	rootCmd.AddCommand(serveCmd)
}
