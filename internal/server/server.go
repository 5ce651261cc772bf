package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"libretranslate/internal/config"
	"libretranslate/internal/language"
	"libretranslate/internal/models"
	"libretranslate/internal/service"
	"libretranslate/internal/translator"
)

// Version is overwritten at build time.
var Version = "dev"

const maxBodyBytes = 1 << 20

// Service is what the HTTP handlers need from service.Service.
type Service interface {
	Translate(ctx context.Context, source, target language.Language, input string) (*translator.Translator, error)
	History(limit int) ([]*models.Record, error)
	Check(ctx context.Context) (*service.CheckResult, error)
}

type Server struct {
	cfg *config.Config
	svc Service
	log *logrus.Logger
}

func New(cfg *config.Config, svc Service, log *logrus.Logger) *Server {
	return &Server{cfg: cfg, svc: svc, log: log}
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
}

type translateResponse struct {
	TranslatedText string            `json:"translatedText"`
	Source         language.Language `json:"source"`
	Target         language.Language `json:"target"`
}

type languageResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// SetupRoutes sets up the API routes
func (s *Server) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/version", s.handleVersion).Methods(http.MethodGet)
	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/languages", s.handleLanguages).Methods(http.MethodGet)
	router.HandleFunc("/translate", s.handleTranslate).Methods(http.MethodPost)
	router.HandleFunc("/history", s.handleHistory).Methods(http.MethodGet)
}

// Handler returns the routed handler with request logging.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	s.SetupRoutes(router)
	router.Use(s.logRequests)
	return router
}

func (s *Server) Run() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.log.WithField("addr", addr).Info("listening")
	return srv.ListenAndServe()
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.WithFields(logrus.Fields{
			"method":  r.Method,
			"path":    r.URL.Path,
			"elapsed": time.Since(start).Round(time.Millisecond),
		}).Debug("request")
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"version": Version})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.Check(r.Context())
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	langs := language.All()
	out := make([]languageResponse, 0, len(langs))
	for _, l := range langs {
		out = append(out, languageResponse{Code: l.Code(), Name: l.Name()})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	source, err := language.Parse(req.Source)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	target, err := language.Parse(req.Target)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := s.svc.Translate(r.Context(), source, target, req.Q)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err)
		return
	}

	s.writeJSON(w, http.StatusOK, translateResponse{
		TranslatedText: result.Output,
		Source:         result.Source,
		Target:         result.Target,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid limit %q", v))
			return
		}
		limit = n
	}

	records, err := s.svc.History(limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if records == nil {
		records = []*models.Record{}
	}
	s.writeJSON(w, http.StatusOK, records)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// headers are already sent; the client most likely went away
		s.log.WithError(err).Debug("failed to write response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	resp := errorResponse{Error: err.Error()}
	if kind := translator.KindOf(err); kind != 0 {
		resp.Kind = kind.String()
	}
	s.writeJSON(w, status, resp)
}
