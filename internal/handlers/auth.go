package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/avilov/bookshelf/internal/middleware"
	"github.com/avilov/bookshelf/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Users    *repo.UserRepo
	Secret   []byte
	TokenTTL time.Duration
}

// ==========================
// Register (password stored as bcrypt hash)
// ==========================
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	if msg := validateCredentials(username, password); msg != "" {
		JSONMessage(w, msg, http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		// bcrypt caps input at 72 bytes, below the 100-character form bound.
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			JSONMessage(w, "Password must be between 6 and 100 characters", http.StatusBadRequest)
			return
		}
		slog.Error("register: hash password", "error", err)
		JSONMessage(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	if _, err := h.Users.Create(r.Context(), username, string(hash)); err != nil {
		if repo.IsUniqueViolation(err) {
			JSONMessage(w, "User already exists", http.StatusBadRequest)
			return
		}
		slog.Error("register: create user", "username", username, "error", err)
		JSONMessage(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSONMessage(w, "User registered successfully", http.StatusCreated)
}

// ==========================
// Login (exact username + verified password, issues a bearer token)
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	if username == "" || password == "" {
		JSONMessage(w, "Username and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.Users.GetByUsername(r.Context(), username)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("login: lookup user", "username", username, "error", err)
		}
		JSONMessage(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		JSONMessage(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := middleware.GenerateToken(h.Secret, user.ID, user.Username, h.TokenTTL)
	if err != nil {
		slog.Error("login: sign token", "username", username, "error", err)
		JSONMessage(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, map[string]string{"access_token": token}, http.StatusOK)
}
