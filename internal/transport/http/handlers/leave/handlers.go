package leavehandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"smartleave/internal/domain/auth"
	"smartleave/internal/domain/leave"
	"smartleave/internal/transport/http/api"
	"smartleave/internal/transport/http/middleware"
	"smartleave/internal/transport/http/shared"
)

type Handler struct {
	Ledger *leave.Ledger
}

func NewHandler(ledger *leave.Ledger) *Handler {
	return &Handler{Ledger: ledger}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leave", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermLeaveWrite)).Post("/requests", h.handleApply)
		r.With(middleware.RequirePermission(auth.PermLeaveRead)).Get("/requests", h.handleList)
		r.With(middleware.RequirePermission(auth.PermLeaveWrite)).Get("/requests/pending", h.handlePending)
		r.With(middleware.RequirePermission(auth.PermLeaveWrite)).Post("/requests/{requestID}/cancel", h.handleCancel)
		r.With(middleware.RequirePermission(auth.PermLeaveWrite)).Put("/requests/{requestID}", h.handleEdit)
		r.With(middleware.RequirePermission(auth.PermLeaveApprove)).Post("/requests/{requestID}/approve", h.handleApprove)
		r.With(middleware.RequirePermission(auth.PermLeaveApprove)).Post("/requests/{requestID}/reject", h.handleReject)
	})
}

type applyRequest struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

func (h *Handler) handleApply(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	payload, ok := decodeApply(w, r)
	if !ok {
		return
	}
	start, end, ok := parseRange(w, r, payload)
	if !ok {
		return
	}

	req, err := h.Ledger.Apply(user.EmpID, start, end, payload.Type, payload.Reason)
	if err != nil {
		failLedger(w, r, err)
		return
	}
	api.Created(w, req, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	// Employees see their own history; approvers see the whole ledger.
	var requests []leave.Request
	if user.Role == auth.RoleEmployee {
		requests = h.Ledger.RequestsFor(user.EmpID)
	} else {
		requests = h.Ledger.All()
	}
	api.Success(w, requests, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePending(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, h.Ledger.PendingFor(user.EmpID), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	requestID, ok := requestIDParam(w, r)
	if !ok {
		return
	}

	if err := h.Ledger.Cancel(user.EmpID, requestID); err != nil {
		failLedger(w, r, err)
		return
	}
	api.Success(w, map[string]string{"status": "cancelled"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleEdit(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	requestID, ok := requestIDParam(w, r)
	if !ok {
		return
	}
	payload, ok := decodeApply(w, r)
	if !ok {
		return
	}
	start, end, ok := parseRange(w, r, payload)
	if !ok {
		return
	}

	req, err := h.Ledger.Edit(user.EmpID, requestID, start, end, payload.Type, payload.Reason)
	if err != nil {
		failLedger(w, r, err)
		return
	}
	api.Success(w, req, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDParam(w, r)
	if !ok {
		return
	}
	req, err := h.Ledger.Approve(requestID)
	if err != nil {
		failLedger(w, r, err)
		return
	}
	api.Success(w, req, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDParam(w, r)
	if !ok {
		return
	}
	result, err := h.Ledger.Reject(requestID)
	if err != nil {
		failLedger(w, r, err)
		return
	}
	if !result.BalanceRestored {
		slog.Warn("reject: owner missing, balance credit skipped",
			"requestId", result.Request.ID, "empId", result.Request.EmpID)
	}
	api.Success(w, map[string]any{
		"request":         result.Request,
		"balanceRestored": result.BalanceRestored,
	}, middleware.GetRequestID(r.Context()))
}

func decodeApply(w http.ResponseWriter, r *http.Request) (applyRequest, bool) {
	var payload applyRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return applyRequest{}, false
	}
	return payload, true
}

func parseRange(w http.ResponseWriter, r *http.Request, payload applyRequest) (start, end time.Time, ok bool) {
	start, err := shared.ParseDate(payload.Start)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid start date", middleware.GetRequestID(r.Context()))
		return start, end, false
	}
	end, err = shared.ParseDate(payload.End)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid end date", middleware.GetRequestID(r.Context()))
		return start, end, false
	}
	return start, end, true
}

func requestIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	requestID, err := strconv.Atoi(chi.URLParam(r, "requestID"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request id", middleware.GetRequestID(r.Context()))
		return 0, false
	}
	return requestID, true
}

func failLedger(w http.ResponseWriter, r *http.Request, err error) {
	reqID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, leave.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "leave request not found", reqID)
	case errors.Is(err, leave.ErrWrongOwner):
		api.Fail(w, http.StatusForbidden, "wrong_owner", "leave request belongs to another employee", reqID)
	case errors.Is(err, leave.ErrNotPending):
		api.Fail(w, http.StatusConflict, "not_pending", "leave request is not pending", reqID)
	case errors.Is(err, leave.ErrInvalidRange):
		api.Fail(w, http.StatusBadRequest, "invalid_range", "end date before start date", reqID)
	case errors.Is(err, leave.ErrInsufficientBalance):
		api.Fail(w, http.StatusConflict, "insufficient_balance", "leave balance too low", reqID)
	case errors.Is(err, leave.ErrUnknownEmployee):
		api.Fail(w, http.StatusNotFound, "not_found", "unknown employee", reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, "leave_error", "leave operation failed", reqID)
	}
}
