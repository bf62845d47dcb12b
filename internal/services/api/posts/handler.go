// Package posts serves the protected posts resource. All routes sit behind
// the authentication gate; create and delete additionally sit behind role
// gates wired in the router.
package posts

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/NordCoder/Postbox/internal/apperr"
	domainauth "github.com/NordCoder/Postbox/internal/auth"
	"github.com/NordCoder/Postbox/internal/domain/post"
	pg "github.com/NordCoder/Postbox/internal/repository/postgres"
)

type Handler struct {
	posts post.Repo
	log   *zap.Logger
}

func NewHandler(posts post.Repo, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{posts: posts, log: log}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.posts.List(r.Context())
	if err != nil {
		h.log.Error("post list failed", zap.Error(err))
		apperr.WriteError(w, apperr.ErrInternal)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		apperr.WriteError(w, apperr.Validation("Invalid post id"))
		return
	}
	p, err := h.posts.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, pg.ErrNotFound) {
			apperr.WriteError(w, apperr.NotFound("Post not found"))
			return
		}
		h.log.Error("post fetch failed", zap.Error(err))
		apperr.WriteError(w, apperr.ErrInternal)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type createRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.WriteError(w, apperr.Validation("Invalid request body"))
		return
	}
	if req.Title == "" {
		apperr.WriteError(w, apperr.Validation("Title is required"))
		return
	}

	p := &post.Post{Title: req.Title, Body: req.Body}
	if claims, ok := domainauth.FromContext(r.Context()); ok {
		if uid, err := strconv.ParseInt(claims.Subject, 10, 64); err == nil {
			p.UserID = &uid
		}
	}
	if err := h.posts.Create(r.Context(), p); err != nil {
		h.log.Error("post insert failed", zap.Error(err))
		apperr.WriteError(w, apperr.ErrInternal)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		apperr.WriteError(w, apperr.Validation("Invalid post id"))
		return
	}
	if err := h.posts.Delete(r.Context(), id); err != nil {
		if errors.Is(err, pg.ErrNotFound) {
			apperr.WriteError(w, apperr.NotFound("Post not found"))
			return
		}
		h.log.Error("post delete failed", zap.Error(err))
		apperr.WriteError(w, apperr.ErrInternal)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
