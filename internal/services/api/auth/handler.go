package auth

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/NordCoder/Postbox/internal/apperr"
	domainauth "github.com/NordCoder/Postbox/internal/auth"
	"github.com/NordCoder/Postbox/internal/domain/user"
	"github.com/NordCoder/Postbox/internal/obs"
)

type Handler struct {
	uc  *Usecase
	log *zap.Logger
}

func NewHandler(uc *Usecase, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{uc: uc, log: log}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	UserID      int64  `json:"user_id"`
	Username    string `json:"username"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.WriteError(w, apperr.Validation("Invalid request body"))
		return
	}

	u, token, expiresIn, err := h.uc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}

	obs.WithTrace(r.Context(), h.log).Info("login successful", zap.Int64("user_id", u.ID))
	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
		UserID:      u.ID,
		Username:    u.Username,
	})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.WriteError(w, apperr.Validation("Invalid request body"))
		return
	}

	u, err := h.uc.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}

	obs.WithTrace(r.Context(), h.log).Info("user registered", zap.Int64("user_id", u.ID))
	writeJSON(w, http.StatusCreated, publicUser(u))
}

// Me returns the authenticated caller's user record.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := domainauth.FromContext(r.Context())
	if !ok {
		apperr.WriteError(w, apperr.Unauthorized("Not authenticated"))
		return
	}
	u, err := h.uc.CurrentUser(r.Context(), claims.Subject)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, publicUser(u))
}

type userResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// publicUser strips everything credential-related from the wire form.
func publicUser(u *user.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
