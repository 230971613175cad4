package leave

import (
	"sync"
	"time"

	"smartleave/internal/domain/directory"
)

// Ledger owns the leave request collection and the id counter, and enforces
// the approval state machine: pending -> approved | rejected (terminal), or
// pending -> cancelled, which removes the request entirely.
//
// Balance bookkeeping contract: Apply debits exactly once, after validating
// sufficiency; Cancel and Reject credit exactly once; Approve never touches
// the balance. Preconditions are checked before any mutation, so a failed
// call leaves no partial state behind. The ledger never logs; every failure
// is a typed error the caller turns into messaging.
type Ledger struct {
	mu       sync.Mutex
	dir      *directory.Directory
	requests []*Request
	nextID   int
}

func NewLedger(dir *directory.Directory) *Ledger {
	return &Ledger{dir: dir, nextID: requestIDBase}
}

// RejectResult reports the outcome of a rejection. BalanceRestored is false
// only when the owning user could not be resolved; the status change still
// applies and the caller surfaces the skipped credit as an integrity
// warning rather than a failure.
type RejectResult struct {
	Request         Request
	BalanceRestored bool
}

// Apply validates the range and the employee's balance, debits the
// requested days and appends a pending request. The debit and the append
// happen under one lock, so callers observe both or neither.
func (l *Ledger) Apply(empID int, start, end time.Time, leaveType, reason string) (Request, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.applyLocked(empID, start, end, leaveType, reason)
}

func (l *Ledger) applyLocked(empID int, start, end time.Time, leaveType, reason string) (Request, error) {
	days, err := CalculateDays(start, end)
	if err != nil {
		return Request{}, err
	}

	balance, ok := l.dir.Balance(empID)
	if !ok {
		return Request{}, ErrUnknownEmployee
	}
	if balance < days {
		return Request{}, ErrInsufficientBalance
	}
	if !l.dir.Debit(empID, days) {
		return Request{}, ErrInsufficientBalance
	}

	req := &Request{
		ID:     l.nextID,
		EmpID:  empID,
		Start:  truncateToDay(start),
		End:    truncateToDay(end),
		Days:   days,
		Type:   leaveType,
		Reason: reason,
		Status: StatusPending,
	}
	l.nextID++
	l.requests = append(l.requests, req)
	return *req, nil
}

// Cancel removes a pending request owned by empID and restores its days.
func (l *Ledger) Cancel(empID, requestID int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cancelLocked(empID, requestID)
}

func (l *Ledger) cancelLocked(empID, requestID int) error {
	idx, req := l.findLocked(requestID)
	if req == nil {
		return ErrNotFound
	}
	if req.EmpID != empID {
		return ErrWrongOwner
	}
	if req.Status != StatusPending {
		return ErrNotPending
	}

	l.dir.Credit(empID, req.Days)
	l.requests = append(l.requests[:idx], l.requests[idx+1:]...)
	return nil
}

// Approve marks a pending request approved. The days were already debited
// at apply time, so the balance is untouched.
func (l *Ledger) Approve(requestID int) (Request, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, req := l.findLocked(requestID)
	if req == nil {
		return Request{}, ErrNotFound
	}
	if req.Status != StatusPending {
		return Request{}, ErrNotPending
	}
	req.Status = StatusApproved
	return *req, nil
}

// Reject marks a pending request rejected and credits the reserved days
// back to the owner. A request whose owner has vanished still transitions;
// the skipped credit is reported through the result.
func (l *Ledger) Reject(requestID int) (RejectResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, req := l.findLocked(requestID)
	if req == nil {
		return RejectResult{}, ErrNotFound
	}
	if req.Status != StatusPending {
		return RejectResult{}, ErrNotPending
	}
	req.Status = StatusRejected
	restored := l.dir.Credit(req.EmpID, req.Days)
	return RejectResult{Request: *req, BalanceRestored: restored}, nil
}

// Edit replaces a pending request with a new one: cancel old, apply new.
// The replacement gets a fresh id; the original id and its history are
// discarded. Every precondition of both halves is validated before any
// mutation, so a rejected edit leaves the original request untouched.
func (l *Ledger) Edit(empID, requestID int, start, end time.Time, leaveType, reason string) (Request, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, old := l.findLocked(requestID)
	if old == nil {
		return Request{}, ErrNotFound
	}
	if old.EmpID != empID {
		return Request{}, ErrWrongOwner
	}
	if old.Status != StatusPending {
		return Request{}, ErrNotPending
	}

	days, err := CalculateDays(start, end)
	if err != nil {
		return Request{}, err
	}
	balance, ok := l.dir.Balance(empID)
	if !ok {
		return Request{}, ErrUnknownEmployee
	}
	// The old hold is released before the new debit, so it counts as
	// available when checking sufficiency.
	if balance+old.Days < days {
		return Request{}, ErrInsufficientBalance
	}

	if err := l.cancelLocked(empID, requestID); err != nil {
		return Request{}, err
	}
	return l.applyLocked(empID, start, end, leaveType, reason)
}

// RequestsFor returns snapshots of the employee's requests in insertion
// order.
func (l *Ledger) RequestsFor(empID int) []Request {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []Request
	for _, req := range l.requests {
		if req.EmpID == empID {
			out = append(out, *req)
		}
	}
	return out
}

// PendingFor returns the employee's pending requests in insertion order.
func (l *Ledger) PendingFor(empID int) []Request {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []Request
	for _, req := range l.requests {
		if req.EmpID == empID && req.Status == StatusPending {
			out = append(out, *req)
		}
	}
	return out
}

// All returns snapshots of every request in insertion order.
func (l *Ledger) All() []Request {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Request, 0, len(l.requests))
	for _, req := range l.requests {
		out = append(out, *req)
	}
	return out
}

// ByID returns a snapshot of a single request.
func (l *Ledger) ByID(requestID int) (Request, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, req := l.findLocked(requestID)
	if req == nil {
		return Request{}, false
	}
	return *req, true
}

func (l *Ledger) findLocked(requestID int) (int, *Request) {
	for i, req := range l.requests {
		if req.ID == requestID {
			return i, req
		}
	}
	return -1, nil
}
