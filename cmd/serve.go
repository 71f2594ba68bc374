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

	"github.com/sells-group/prospect-cli/internal/friction"
	"github.com/sells-group/prospect-cli/internal/resolve"
	"github.com/sells-group/prospect-cli/pkg/places"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the scoring and resolution HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		r := buildRouter()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
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

func buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Post("/score", handleScore)
	r.Post("/resolve", handleResolve)

	return r
}

func handleScore(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL    string `json:"url"`
		Name   string `json:"name"`
		Niche  string `json:"niche"`
		Region string `json:"region"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.URL == "" {
		writeJSONError(w, http.StatusBadRequest, "url is required")
		return
	}

	fetcher := newFetcher()
	h, err := fetcher.Crawl(r.Context(), req.URL)
	if err != nil {
		zap.L().Warn("score request crawl failed",
			zap.String("url", req.URL),
			zap.Error(err),
		)
		writeJSONError(w, http.StatusBadGateway, "crawl failed")
		return
	}

	b := businessFromProspect(prospect{
		Name: req.Name, URL: req.URL, Niche: req.Niche, Region: req.Region,
	}, h)
	scored, err := friction.ScoreBusiness(b)
	if err != nil {
		writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, scored)
}

func handleResolve(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name                   string   `json:"name"`
		LocationHint           string   `json:"location_hint"`
		Phone                  string   `json:"phone"`
		Website                string   `json:"website"`
		Manual                 bool     `json:"manual"`
		Categories             []string `json:"categories"`
		SuspectedWrongCategory bool     `json:"suspected_wrong_category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeJSONError(w, http.StatusBadRequest, "name is required")
		return
	}

	var src resolve.Source
	if req.Manual {
		src = resolve.ManualHint{}
	} else {
		if cfg.Places.Key == "" {
			writeJSONError(w, http.StatusServiceUnavailable, "places API key not configured")
			return
		}
		client := places.NewClient(cfg.Places.Key, places.WithBaseURL(cfg.Places.BaseURL))
		src = resolve.NewAPIBacked(client, cfg.Places.RateLimit)
	}

	categories := req.Categories
	if len(categories) == 0 {
		categories = cfg.Resolve.ExpectedCategories
	}

	q := resolve.Query{
		Name:         req.Name,
		LocationHint: req.LocationHint,
		Phone:        req.Phone,
		Website:      req.Website,
	}

	assessment, err := resolve.Resolve(r.Context(), src, q, categories, req.SuspectedWrongCategory)
	if err != nil {
		zap.L().Warn("resolve request failed",
			zap.String("name", req.Name),
			zap.Error(err),
		)
		writeJSONError(w, http.StatusBadGateway, "resolution failed")
		return
	}

	writeJSON(w, http.StatusOK, assessment)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
