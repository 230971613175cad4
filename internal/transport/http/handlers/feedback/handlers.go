package feedbackhandler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"smartleave/internal/domain/auth"
	"smartleave/internal/domain/directory"
	"smartleave/internal/domain/export"
	"smartleave/internal/domain/feedback"
	"smartleave/internal/transport/http/api"
	"smartleave/internal/transport/http/middleware"
)

type Handler struct {
	Store         *feedback.Store
	Announcements *feedback.Announcements
	Dir           *directory.Directory
	Writer        export.Writer
}

func NewHandler(store *feedback.Store, announcements *feedback.Announcements, dir *directory.Directory, writer export.Writer) *Handler {
	return &Handler{Store: store, Announcements: announcements, Dir: dir, Writer: writer}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermFeedbackWrite)).Post("/feedback", h.handleSubmit)
	r.With(middleware.RequirePermission(auth.PermFeedbackRead)).Get("/feedback", h.handleList)
	r.With(middleware.RequirePermission(auth.PermFeedbackRead)).Get("/feedback/export", h.handleExport)
	r.With(middleware.RequirePermission(auth.PermOrgAdmin)).Post("/announcements", h.handleAnnounce)
	r.With(middleware.RequirePermission(auth.PermLeaveRead)).Get("/announcements", h.handleAnnouncements)
}

type submitRequest struct {
	Message string `json:"message"`
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload submitRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || strings.TrimSpace(payload.Message) == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "feedback message required", middleware.GetRequestID(r.Context()))
		return
	}

	entry := h.Store.Submit(user.Name, payload.Message)
	// Submitting feedback earns a badge.
	h.Dir.AwardBadge(user.EmpID)
	api.Created(w, entry, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Store.All(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	entries := h.Store.All()

	var (
		data        []byte
		ext         string
		contentType string
	)
	switch r.URL.Query().Get("format") {
	case "", "csv":
		data, ext, contentType = []byte(export.FeedbackCSV(entries)), "csv", "text/csv"
	case "txt":
		data, ext, contentType = []byte(export.FeedbackTXT(entries)), "txt", "text/plain"
	default:
		api.Fail(w, http.StatusBadRequest, "invalid_format", "format must be csv or txt", middleware.GetRequestID(r.Context()))
		return
	}

	name, err := h.Writer.Save("hr_feedback", ext, data, time.Now())
	if err != nil {
		name = "hr_feedback." + ext
	} else {
		w.Header().Set("X-Export-File", name)
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

type announceRequest struct {
	Message string `json:"message"`
}

func (h *Handler) handleAnnounce(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload announceRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || strings.TrimSpace(payload.Message) == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "announcement message required", middleware.GetRequestID(r.Context()))
		return
	}

	entry := h.Announcements.Post(user.Name, payload.Message)
	api.Created(w, entry, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAnnouncements(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Announcements.All(), middleware.GetRequestID(r.Context()))
}
