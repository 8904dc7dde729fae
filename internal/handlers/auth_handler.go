package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sggmico/skitchen/internal/auth"
)

// AuthHandler handles admin sign-in against the external identity provider.
type AuthHandler struct {
	client   *auth.Client
	verifier *auth.Verifier
	log      *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(client *auth.Client, verifier *auth.Verifier, log *slog.Logger) *AuthHandler {
	return &AuthHandler{
		client:   client,
		verifier: verifier,
		log:      log,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}
	if req.Email == "" || req.Password == "" {
		WriteError(w, http.StatusBadRequest, "Email and password are required", h.log)
		return
	}

	token, err := h.client.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrBadCredentials) {
			WriteError(w, http.StatusUnauthorized, "Invalid email or password", h.log)
			return
		}
		h.log.Error("sign-in failed", "error", err)
		WriteError(w, http.StatusBadGateway, "Identity provider unavailable", h.log)
		return
	}

	h.log.Info("admin signed in", "user_id", token.User.ID)
	WriteJSON(w, http.StatusOK, token, h.log)
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		WriteError(w, http.StatusUnauthorized, "Session required", h.log)
		return
	}

	if err := h.client.SignOut(r.Context(), token); err != nil {
		h.log.Error("sign-out failed", "error", err)
		WriteError(w, http.StatusBadGateway, "Identity provider unavailable", h.log)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Session handles GET /api/auth/session, reporting whether the presented
// token is an active session.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		WriteError(w, http.StatusUnauthorized, "Session required", h.log)
		return
	}

	sess, err := h.verifier.Verify(token)
	if err != nil {
		WriteError(w, http.StatusUnauthorized, "Invalid or expired session", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, sess, h.log)
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if token == header {
		return ""
	}
	return token
}
