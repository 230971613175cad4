package audithandler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"smartleave/internal/domain/audit"
	"smartleave/internal/domain/auth"
	"smartleave/internal/domain/export"
	"smartleave/internal/domain/leave"
	"smartleave/internal/transport/http/api"
	"smartleave/internal/transport/http/middleware"
)

type Handler struct {
	Ledger *leave.Ledger
	Writer export.Writer
}

func NewHandler(ledger *leave.Ledger, writer export.Writer) *Handler {
	return &Handler{Ledger: ledger, Writer: writer}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/audit", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermAuditRead)).Get("/chain", h.handleChain)
		r.With(middleware.RequirePermission(auth.PermAuditRead)).Get("/verify", h.handleVerify)
		r.With(middleware.RequirePermission(auth.PermAuditRead)).Get("/export", h.handleExport)
	})
}

func (h *Handler) handleChain(w http.ResponseWriter, r *http.Request) {
	api.Success(w, audit.Chain(h.Ledger.All()), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	api.Success(w, audit.Verify(h.Ledger.All()), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	blocks := audit.Chain(h.Ledger.All())

	var (
		data        []byte
		ext         string
		contentType string
	)
	switch r.URL.Query().Get("format") {
	case "", "csv":
		data, ext, contentType = []byte(export.AuditCSV(blocks)), "csv", "text/csv"
	case "txt":
		data, ext, contentType = []byte(export.AuditTXT(blocks)), "txt", "text/plain"
	default:
		api.Fail(w, http.StatusBadRequest, "invalid_format", "format must be csv or txt", middleware.GetRequestID(r.Context()))
		return
	}

	name, err := h.Writer.Save("blockchain_audit", ext, data, time.Now())
	if err != nil {
		name = "blockchain_audit." + ext
	} else {
		w.Header().Set("X-Export-File", name)
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
