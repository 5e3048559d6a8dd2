package httpadapter

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"unicode"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tventura/mibot/internal/app/chat"
	"github.com/tventura/mibot/internal/domain"
	"github.com/tventura/mibot/internal/observability"
)

// Response bodies are frozen: deployed upstream callers string-match on
// them.
const (
	msgEmptyBody     = "Error: No se recibieron datos."
	msgInvalidJSON   = "Error: Formato JSON inválido."
	msgMissingParams = "Error: faltan parámetros"
	msgServerError   = "Error en el servidor"
)

type Server struct {
	svc *chat.Service
}

func NewServer(svc *chat.Service) http.Handler {
	s := &Server{svc: svc}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(withObservability)
	r.Use(withRecover)

	r.Get("/healthz", s.handleHealthz)
	r.Post("/chat", s.handleChat)

	return r
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type chatRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// ─────────────────────────────────────────────
// Concrete handlers
// ─────────────────────────────────────────────

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	log := observability.LoggerFromContext(r.Context())

	raw, err := io.ReadAll(r.Body)
	if err != nil || len(raw) == 0 {
		writeText(w, http.StatusBadRequest, msgEmptyBody)
		return
	}

	// Upstream callers embed raw control characters in their payloads,
	// which breaks JSON parsing; drop them before decoding.
	cleaned := stripControl(string(raw))

	var req chatRequest
	if err := json.Unmarshal([]byte(cleaned), &req); err != nil {
		log.Error("request body is not valid JSON", "raw", string(raw), "cleaned", cleaned)
		writeText(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	if req.UserID == "" || req.Message == "" {
		writeText(w, http.StatusBadRequest, msgMissingParams)
		return
	}

	out, err := s.svc.HandleTurn(r.Context(), chat.TurnInput{
		UserID:  domain.UserID(req.UserID),
		Message: req.Message,
	})
	if err != nil {
		if errors.Is(err, chat.ErrInvalidInput) {
			writeText(w, http.StatusBadRequest, msgMissingParams)
			return
		}
		log.Error("chat turn failed", "error", err)
		writeText(w, http.StatusInternalServerError, msgServerError)
		return
	}

	writeText(w, http.StatusOK, out.Reply)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, "ok")
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

// stripControl drops every code point in Unicode category C (control,
// format, surrogate, private use).
func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.In(r, unicode.C) {
			return -1
		}
		return r
	}, s)
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
