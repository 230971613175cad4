package profilehandler

import (
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"smartleave/internal/domain/auth"
	"smartleave/internal/domain/directory"
	"smartleave/internal/domain/export"
	"smartleave/internal/domain/insights"
	"smartleave/internal/domain/leave"
	"smartleave/internal/platform/qr"
	"smartleave/internal/transport/http/api"
	"smartleave/internal/transport/http/middleware"
)

type Handler struct {
	Dir    *directory.Directory
	Ledger *leave.Ledger
	Writer export.Writer

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewHandler(dir *directory.Directory, ledger *leave.Ledger, writer export.Writer, seed int64) *Handler {
	return &Handler{
		Dir:    dir,
		Ledger: ledger,
		Writer: writer,
		rnd:    rand.New(rand.NewSource(seed)),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/profile", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermLeaveRead)).Get("/", h.handleProfile)
		r.With(middleware.RequirePermission(auth.PermLeaveRead)).Get("/qr", h.handleQR)
		r.With(middleware.RequirePermission(auth.PermLeaveRead)).Get("/qr/ascii", h.handleQRAscii)
		r.With(middleware.RequirePermission(auth.PermLeaveRead)).Get("/insights", h.handleInsights)
		r.With(middleware.RequirePermission(auth.PermLeaveRead)).Get("/export", h.handleExport)
	})
}

func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	api.Success(w, user, middleware.GetRequestID(r.Context()))
}

// handleQR renders the employee badge as a scannable PNG.
func (h *Handler) handleQR(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	data := fmt.Sprintf("%s#%d", user.Name, user.EmpID)
	png, err := qr.PNG(data, 256)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "qr_error", "failed to render qr code", middleware.GetRequestID(r.Context()))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// handleQRAscii is the terminal-friendly variant: decorative block art,
// not a scannable code.
func (h *Handler) handleQRAscii(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.currentUser(w, r); !ok {
		return
	}

	h.mu.Lock()
	art := qr.ASCII(h.rnd)
	h.mu.Unlock()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(art))
}

func (h *Handler) handleInsights(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	history := h.Ledger.RequestsFor(user.EmpID)
	api.Success(w, map[string]any{
		"pattern": insights.PredictPattern(user.EmpID, history),
		"stress":  insights.AnalyzeStress(user),
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	history := h.Ledger.RequestsFor(user.EmpID)

	var (
		data        []byte
		ext         string
		contentType string
	)
	switch r.URL.Query().Get("format") {
	case "", "csv":
		data, ext, contentType = []byte(export.EmployeeCSV(user)), "csv", "text/csv"
	case "txt":
		data, ext, contentType = []byte(export.EmployeeTXT(user, history)), "txt", "text/plain"
	default:
		api.Fail(w, http.StatusBadRequest, "invalid_format", "format must be csv or txt", middleware.GetRequestID(r.Context()))
		return
	}

	prefix := fmt.Sprintf("employee_%d", user.EmpID)
	name, err := h.Writer.Save(prefix, ext, data, time.Now())
	if err != nil {
		name = prefix + "." + ext
	} else {
		w.Header().Set("X-Export-File", name)
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) (directory.User, bool) {
	ctxUser, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return directory.User{}, false
	}
	user, ok := h.Dir.ByID(ctxUser.EmpID)
	if !ok {
		api.Fail(w, http.StatusNotFound, "not_found", "user not found", middleware.GetRequestID(r.Context()))
		return directory.User{}, false
	}
	return user, true
}
