package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/MikeSquared-Agency/datebook/internal/auth"
	"github.com/MikeSquared-Agency/datebook/internal/chatlog"
	"github.com/MikeSquared-Agency/datebook/internal/notify"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Responder answers a user question, recording the exchange in the
// transcript as a side effect.
type Responder interface {
	Respond(ctx context.Context, userKey, question string) (string, error)
}

type Server struct {
	bot     Responder
	users   UserStore
	tokens  *auth.Tokens
	logs    *chatlog.Logger
	publish notify.PublishFunc
	router  chi.Router
	port    int
}

func NewServer(bot Responder, users UserStore, tokens *auth.Tokens, logs *chatlog.Logger, publish notify.PublishFunc, port int) *Server {
	srv := &Server{
		bot:     bot,
		users:   users,
		tokens:  tokens,
		logs:    logs,
		publish: publish,
		port:    port,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Get("/health", srv.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", srv.handleChat)
		r.Get("/chat/logs", srv.handleChatLogs)
		r.Post("/users", srv.handleRegister)
		r.Post("/login", srv.handleLogin)
		r.Get("/users", srv.handleListUsers)
	})

	srv.router = r
	return srv
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	slog.Info("starting HTTP API", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

// Router exposes the handler tree for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "datebook",
	})
}

type chatRequest struct {
	UserID   string `json:"user_id"`
	Question string `json:"question"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.UserID == "" || req.Question == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "user_id and question are required"})
		return
	}

	if s.logs != nil {
		if err := s.logs.Record(req.UserID, time.Now(), chatlog.FromUser, req.Question); err != nil {
			slog.Warn("api: chat log write failed", "error", err)
		}
	}

	answer, err := s.bot.Respond(r.Context(), req.UserID, req.Question)
	if err != nil {
		slog.Error("api: chat failed", "user_id", req.UserID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	if s.logs != nil {
		if err := s.logs.Record(req.UserID, time.Now(), chatlog.FromAI, answer); err != nil {
			slog.Warn("api: chat log write failed", "error", err)
		}
	}
	notify.PublishTurnCompleted(s.publish, notify.TurnCompletedEvent{
		UserKey:    req.UserID,
		Question:   req.Question,
		Answer:     answer,
		AnsweredAt: time.Now().UTC(),
	})

	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

func (s *Server) handleChatLogs(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "date is required"})
		return
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "date must be in YYYY-MM-DD format"})
		return
	}

	if s.logs == nil || !s.logs.Exists(date) {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "No logs exist for the given date."})
		return
	}

	path := s.logs.PathFor(date)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
	http.ServeFile(w, r, path)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
