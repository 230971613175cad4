package reportshandler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"smartleave/internal/domain/auth"
	"smartleave/internal/domain/directory"
	"smartleave/internal/domain/export"
	"smartleave/internal/domain/leave"
	"smartleave/internal/domain/reports"
	"smartleave/internal/transport/http/api"
	"smartleave/internal/transport/http/middleware"
)

type Handler struct {
	Dir    *directory.Directory
	Ledger *leave.Ledger
	Writer export.Writer
}

func NewHandler(dir *directory.Directory, ledger *leave.Ledger, writer export.Writer) *Handler {
	return &Handler{Dir: dir, Ledger: ledger, Writer: writer}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermReportsRead)).Get("/team", h.handleTeamSummary)
		r.With(middleware.RequirePermission(auth.PermReportsRead)).Get("/analytics", h.handleAnalytics)
		r.With(middleware.RequirePermission(auth.PermOrgAdmin)).Get("/org", h.handleOrgStats)
		r.With(middleware.RequirePermission(auth.PermOrgAdmin)).Get("/attendance", h.handleAttendance)
		r.With(middleware.RequirePermission(auth.PermOrgAdmin)).Get("/awards", h.handleAwardBoard)
		r.With(middleware.RequirePermission(auth.PermExportsWrite)).Get("/exports/requests", h.handleExportRequests)
		r.With(middleware.RequirePermission(auth.PermExportsWrite)).Get("/exports/team", h.handleExportTeam)
	})
}

func (h *Handler) handleTeamSummary(w http.ResponseWriter, r *http.Request) {
	rows := reports.TeamSummary(h.Dir.Employees())
	api.Success(w, map[string]any{
		"rows":       rows,
		"leavesUsed": reports.TeamLeavesUsed(h.Dir.Employees()),
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	users := h.Dir.Users()
	counts := reports.CountByStatus(h.Ledger.All())
	payload := map[string]any{
		"totalLeavesUsed": reports.TeamLeavesUsed(h.Dir.Employees()),
		"pendingRequests": counts.Pending,
	}
	if top, ok := reports.TopAbsentee(users); ok {
		payload["topAbsentee"] = map[string]any{"name": top.Name, "leavesUsed": top.LeavesUsed()}
	}
	api.Success(w, payload, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleOrgStats(w http.ResponseWriter, r *http.Request) {
	stats := reports.OrgWideStats(h.Dir.Employees(), h.Ledger.All())
	api.Success(w, map[string]any{
		"stats": stats,
		"roles": map[string]int{
			"employees": h.Dir.CountByRole(directory.RoleEmployee),
			"managers":  h.Dir.CountByRole(directory.RoleManager),
			"admins":    h.Dir.CountByRole(directory.RoleAdmin),
		},
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAttendance(w http.ResponseWriter, r *http.Request) {
	api.Success(w, reports.AttendanceSummary(h.Dir.Employees()), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAwardBoard(w http.ResponseWriter, r *http.Request) {
	top, ok := reports.TopBadgeHolder(h.Dir.Users())
	if !ok {
		api.Fail(w, http.StatusNotFound, "not_found", "no users registered", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{"name": top.Name, "badges": top.Badges}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExportRequests(w http.ResponseWriter, r *http.Request) {
	requests := h.Ledger.All()
	nameOf := func(empID int) string {
		if u, ok := h.Dir.ByID(empID); ok {
			return u.Name
		}
		return "Unknown"
	}

	switch r.URL.Query().Get("format") {
	case "", "csv":
		h.serve(w, r, "leave_requests", "csv", "text/csv", []byte(export.RequestsCSV(requests)))
	case "txt":
		h.serve(w, r, "leave_requests", "txt", "text/plain", []byte(export.RequestsTXT(requests, nameOf)))
	case "pdf":
		data, err := export.RequestsPDF(requests, nameOf)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to render pdf", middleware.GetRequestID(r.Context()))
			return
		}
		h.serve(w, r, "leave_requests", "pdf", "application/pdf", data)
	default:
		api.Fail(w, http.StatusBadRequest, "invalid_format", "format must be csv, txt or pdf", middleware.GetRequestID(r.Context()))
	}
}

func (h *Handler) handleExportTeam(w http.ResponseWriter, r *http.Request) {
	employees := h.Dir.Employees()

	switch r.URL.Query().Get("format") {
	case "", "csv":
		h.serve(w, r, "team_stats", "csv", "text/csv", []byte(export.TeamStatsCSV(employees)))
	case "txt":
		h.serve(w, r, "team_stats", "txt", "text/plain", []byte(export.TeamStatsTXT(employees)))
	case "pdf":
		data, err := export.TeamStatsPDF(employees)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to render pdf", middleware.GetRequestID(r.Context()))
			return
		}
		h.serve(w, r, "team_stats", "pdf", "application/pdf", data)
	default:
		api.Fail(w, http.StatusBadRequest, "invalid_format", "format must be csv, txt or pdf", middleware.GetRequestID(r.Context()))
	}
}

// serve saves a copy under the export directory and streams the payload as
// an attachment. A failed save is logged and reported in a header; it never
// blocks the download or touches ledger state.
func (h *Handler) serve(w http.ResponseWriter, r *http.Request, prefix, ext, contentType string, data []byte) {
	name, err := h.Writer.Save(prefix, ext, data, time.Now())
	if err != nil {
		slog.Warn("export save failed", "prefix", prefix, "err", err)
		name = prefix + "." + ext
	} else {
		w.Header().Set("X-Export-File", name)
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
