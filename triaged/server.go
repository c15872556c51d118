// Package triaged is the development triage service: a small HTTP server
// exposing the same /api/triage and /test-connection endpoints as the
// production service, backed by the keyword decision tree and the static
// protocol table, so the chat TUI runs end to end without external
// infrastructure.
package triaged

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Server is the development triage HTTP server.
type Server struct {
	httpServer *http.Server
	tree       *DecisionTree
	log        zerolog.Logger
}

// NewServer creates a Server listening on addr.
func NewServer(addr string, log zerolog.Logger) *Server {
	s := &Server{
		tree: NewDecisionTree(),
		log:  log,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Post("/api/triage", s.handleTriage)
	r.Get("/test-connection", s.handleTestConnection)

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: r,
	}
	return s
}

// Start begins listening. It blocks until the server is stopped.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	s.log.Info().Str("addr", ln.Addr().String()).Msg("triage service listening")
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the router for httptest.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

type triageRequest struct {
	Symptoms string `json:"symptoms"`
	History  string `json:"history"`
	Age      int    `json:"age"`
}

type diagnosisJSON struct {
	Category string   `json:"category"`
	Urgency  string   `json:"urgency"`
	Alerts   []string `json:"alerts"`
}

type medicalInfoJSON struct {
	Sources        []string `json:"sources"`
	Recommendation string   `json:"recommendation"`
}

type triageResponse struct {
	Diagnosis     diagnosisJSON   `json:"diagnosis"`
	MedicalInfo   medicalInfoJSON `json:"medical_info"`
	AIExplanation string          `json:"ai_explanation"`
	Status        string          `json:"status"`
}

func (s *Server) handleTriage(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req triageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}
	if strings.TrimSpace(req.Symptoms) == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "Descreva os sintomas para realizar a triagem.")
		return
	}

	assessment := s.tree.Evaluate(req.Symptoms, req.History, req.Age)
	protocol := lookupProtocol(assessment.Category)

	resp := triageResponse{
		Diagnosis: diagnosisJSON{
			Category: assessment.Category,
			Urgency:  assessment.Urgency,
			Alerts:   assessment.Alerts,
		},
		MedicalInfo: medicalInfoJSON{
			Sources:        protocol.Sources,
			Recommendation: protocol.Recommendation,
		},
		AIExplanation: explain(assessment, req.Symptoms),
		Status:        "ok",
	}

	s.log.Info().
		Str("category", assessment.Category).
		Str("urgency", assessment.Urgency).
		Int("alerts", len(assessment.Alerts)).
		Dur("elapsed", time.Since(started)).
		Msg("triage evaluated")

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTestConnection(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"connected": true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
