package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/searchcore/engine/internal/logging"
	"github.com/searchcore/engine/internal/searcher"
	"github.com/searchcore/engine/pkg/model"
)

// serveCmd starts an HTTP search server alongside a health/metrics server,
// grounded on antflydb-antfly-go/libaf/healthserver's /healthz, /readyz,
// /metrics triplet (spec §2.15, §0).
func serveCmd() *cobra.Command {
	var (
		indexDir string
		addr     string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve search queries over HTTP with a health/metrics endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.Must(*newLogger())
			defer logger.Sync()

			segments, err := loadSegments(indexDir, false, logger)
			if err != nil {
				return err
			}
			s := searcher.New(segments)

			ready := false
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("ok")); err != nil {
					logger.Warn("healthz write failed", zap.Error(err))
				}
			})
			mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
				if ready {
					w.WriteHeader(http.StatusOK)
					if _, err := w.Write([]byte("ready")); err != nil {
						logger.Warn("readyz write failed", zap.Error(err))
					}
					return
				}
				w.WriteHeader(http.StatusServiceUnavailable)
				if _, err := w.Write([]byte("not ready")); err != nil {
					logger.Warn("readyz write failed", zap.Error(err))
				}
			})
			mux.HandleFunc("/search", searchHandler(s, logger))
			ready = true

			server := &http.Server{
				Addr:              addr,
				Handler:           mux,
				ReadHeaderTimeout: 10 * time.Second,
			}
			logger.Info("serving", zap.String("addr", addr), zap.String("index", indexDir))
			return server.ListenAndServe()
		},
	}

	cmd.Flags().StringVar(&indexDir, "index", ".", "directory of segment bundles")
	cmd.Flags().StringVar(&addr, "addr", "0.0.0.0:8080", "address to listen on")
	return cmd
}

func searchHandler(s *searcher.Searcher, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.New().String()
		log := logger.With(zap.String("request_id", reqID))

		var q model.SearchQuery
		if r.Method == http.MethodGet {
			q.Query = r.URL.Query().Get("q")
		} else if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
			http.Error(w, fmt.Sprintf(`{"error":"bad request: %v"}`, err), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		res, err := s.Search(ctx, q)
		if err != nil {
			log.Warn("search failed", zap.Error(err), zap.String("query", q.Query))
			http.Error(w, fmt.Sprintf(`{"error":%q}`, err.Error()), http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Request-Id", reqID)
		if err := json.NewEncoder(w).Encode(res); err != nil {
			log.Error("encode response", zap.Error(err))
		}
	}
}
