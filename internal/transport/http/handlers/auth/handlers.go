package authhandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"smartleave/internal/domain/auth"
	"smartleave/internal/domain/directory"
	"smartleave/internal/transport/http/api"
	"smartleave/internal/transport/http/middleware"
)

type Handler struct {
	Dir    *directory.Directory
	Secret string
	TTL    time.Duration
}

func NewHandler(dir *directory.Directory, secret string, ttl time.Duration) *Handler {
	return &Handler{Dir: dir, Secret: secret, TTL: ttl}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
	r.Get("/auth/me", h.handleMe)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	role := directory.Role(payload.Role)
	switch role {
	case directory.RoleEmployee, directory.RoleManager, directory.RoleAdmin:
	default:
		api.Fail(w, http.StatusBadRequest, "invalid_role", "role must be employee, manager or admin", middleware.GetRequestID(r.Context()))
		return
	}

	user, ok := h.Dir.Authenticate(payload.Email, payload.Password, role)
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", middleware.GetRequestID(r.Context()))
		return
	}

	token, err := auth.GenerateToken(h.Secret, auth.Claims{
		EmpID: user.EmpID,
		Name:  user.Name,
		Role:  string(user.Role),
	}, h.TTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{
		"token": token,
		"user":  user,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	snapshot, ok := h.Dir.ByID(user.EmpID)
	if !ok {
		api.Fail(w, http.StatusNotFound, "not_found", "user not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, snapshot, middleware.GetRequestID(r.Context()))
}
