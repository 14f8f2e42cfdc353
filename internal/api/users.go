package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/MikeSquared-Agency/datebook/internal/auth"
	"github.com/MikeSquared-Agency/datebook/internal/store"

	"github.com/google/uuid"
)

// UserStore is the slice of the persistence layer the account endpoints need.
type UserStore interface {
	InsertUser(ctx context.Context, id, username, email, passwordHash string) error
	GetUserByEmail(ctx context.Context, email string) (*store.UserRow, error)
	ListUsers(ctx context.Context) ([]store.UserRow, error)
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "username, email and password are required"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("api: hash password failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	id := uuid.New().String()
	if err := s.users.InsertUser(r.Context(), id, req.Username, req.Email, hash); err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Email already exists. Please use a different email."})
			return
		}
		slog.Error("api: insert user failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "User added successfully!"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email and password are required"})
		return
	}

	u, err := s.users.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
			return
		}
		slog.Error("api: get user failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
		return
	}

	token, err := s.tokens.Generate(u.ID)
	if err != nil {
		slog.Error("api: generate token failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user":    userView{ID: u.ID, Username: u.Username, Email: u.Email},
		"token":   token,
	})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	if header == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Token is missing"})
		return
	}
	token := strings.TrimPrefix(header, "Bearer ")
	if _, err := s.tokens.Verify(token); err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Access denied, token is invalid"})
		return
	}

	rows, err := s.users.ListUsers(r.Context())
	if err != nil {
		slog.Error("api: list users failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	users := make([]userView, 0, len(rows))
	for _, u := range rows {
		users = append(users, userView{ID: u.ID, Username: u.Username, Email: u.Email})
	}
	writeJSON(w, http.StatusOK, users)
}
