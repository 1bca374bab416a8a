// Package server exposes the configuration and submission collaborators
// over HTTP: GET/PUT /api/config and POST /api/onboarding.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/caarlos0/env/v11"

	"onboard-project/internal/domain"
	"onboard-project/internal/state"
	sqlitestore "onboard-project/internal/storage/sqlite"
)

type Config struct {
	Addr      string `env:"ONBOARD_ADDR" envDefault:":8880"`
	ConfigDir string `env:"ONBOARD_CONFIG_DIR"`
	DBPath    string `env:"ONBOARD_DB"`
}

// ParseEnv loads server configuration from environment variables.
func ParseEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

type Server struct {
	config      *state.Store
	submissions *sqlitestore.Store
	logger      *slog.Logger
}

func New(config *state.Store, submissions *sqlitestore.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{config: config, submissions: submissions, logger: logger}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/config", s.handleGetConfig)
	mux.HandleFunc("PUT /api/config", s.handlePutConfig)
	mux.HandleFunc("POST /api/onboarding", s.handlePostOnboarding)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	pages, err := s.config.FetchConfig(r.Context())
	if err != nil {
		s.logger.Error("read config", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to read configuration")
		return
	}
	if pages.Pages == nil {
		pages.Pages = []domain.PageConfig{}
	}
	writeJSON(w, http.StatusOK, pages)
}

func (s *Server) handlePutConfig(w http.ResponseWriter, r *http.Request) {
	var candidate domain.Pages
	if err := decodeJSON(r, &candidate); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	normalized, err := s.config.PersistConfig(r.Context(), candidate.Pages)
	if err != nil {
		s.logger.Error("write config", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to write configuration")
		return
	}
	if normalized.Pages == nil {
		normalized.Pages = []domain.PageConfig{}
	}
	s.logger.Info("configuration updated", "pages", len(normalized.Pages))
	writeJSON(w, http.StatusOK, normalized)
}

type submissionResponse struct {
	ID string `json:"id"`
}

func (s *Server) handlePostOnboarding(w http.ResponseWriter, r *http.Request) {
	var record domain.Submission
	if err := decodeJSON(r, &record); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !domain.Filled(record.Email) {
		writeError(w, http.StatusBadRequest, "Email is required")
		return
	}
	id, err := s.submissions.PersistSubmission(r.Context(), record)
	if err != nil {
		s.logger.Error("persist submission", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to persist submission")
		return
	}
	s.logger.Info("submission persisted", "id", id, "email", record.Email)
	writeJSON(w, http.StatusCreated, submissionResponse{ID: id})
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return fmt.Errorf("malformed JSON at offset %d", syntaxErr.Offset)
		}
		return fmt.Errorf("invalid request body: %s", strings.TrimPrefix(err.Error(), "json: "))
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type errorResponse struct {
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Message: message})
}
