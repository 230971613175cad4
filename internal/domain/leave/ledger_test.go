package leave

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"smartleave/internal/domain/directory"
)

func day(d int) time.Time {
	return time.Date(2025, 11, d, 0, 0, 0, 0, time.UTC)
}

func newTestLedger(t *testing.T) (*Ledger, *directory.Directory) {
	t.Helper()
	dir := directory.New()
	if _, err := dir.Register(101, "Shubhangi Tyagi", "shubhangi@example.com", "pw", directory.RoleEmployee, 26, 30); err != nil {
		t.Fatalf("register employee: %v", err)
	}
	if _, err := dir.Register(102, "Rohan Mehta", "rohan@example.com", "pw", directory.RoleEmployee, 10, 30); err != nil {
		t.Fatalf("register employee: %v", err)
	}
	return NewLedger(dir), dir
}

func mustBalance(t *testing.T, dir *directory.Directory, empID int) int {
	t.Helper()
	balance, ok := dir.Balance(empID)
	if !ok {
		t.Fatalf("no balance for employee %d", empID)
	}
	return balance
}

func TestApplyDebitsBalance(t *testing.T) {
	ledger, dir := newTestLedger(t)

	req, err := ledger.Apply(101, day(10), day(11), "Work From Home", "Remote work")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if req.ID != 1000 {
		t.Fatalf("expected first id 1000, got %d", req.ID)
	}
	if req.Days != 2 {
		t.Fatalf("expected 2 days, got %d", req.Days)
	}
	if req.Status != StatusPending {
		t.Fatalf("expected pending, got %s", req.Status)
	}
	if got := mustBalance(t, dir, 101); got != 24 {
		t.Fatalf("expected balance 24 after apply, got %d", got)
	}
}

func TestApplyInvalidRange(t *testing.T) {
	ledger, dir := newTestLedger(t)

	_, err := ledger.Apply(101, day(12), day(10), "Vacation", "trip")
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	if got := mustBalance(t, dir, 101); got != 26 {
		t.Fatalf("failed apply must not touch balance, got %d", got)
	}
	if len(ledger.All()) != 0 {
		t.Fatal("failed apply must not record a request")
	}
}

func TestApplyInsufficientBalance(t *testing.T) {
	ledger, dir := newTestLedger(t)

	_, err := ledger.Apply(102, day(1), day(20), "Vacation", "long trip")
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if got := mustBalance(t, dir, 102); got != 10 {
		t.Fatalf("failed apply must not touch balance, got %d", got)
	}
}

func TestApplyUnknownEmployee(t *testing.T) {
	ledger, _ := newTestLedger(t)

	_, err := ledger.Apply(999, day(1), day(2), "Sick", "flu")
	if !errors.Is(err, ErrUnknownEmployee) {
		t.Fatalf("expected ErrUnknownEmployee, got %v", err)
	}
}

func TestCancelRestoresBalance(t *testing.T) {
	ledger, dir := newTestLedger(t)

	req, err := ledger.Apply(101, day(10), day(14), "Vacation", "trip")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if got := mustBalance(t, dir, 101); got != 21 {
		t.Fatalf("expected 21 after apply, got %d", got)
	}

	if err := ledger.Cancel(101, req.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if got := mustBalance(t, dir, 101); got != 26 {
		t.Fatalf("cancel must restore the balance, got %d", got)
	}
	if _, ok := ledger.ByID(req.ID); ok {
		t.Fatal("cancelled request must be removed")
	}
}

func TestCancelWrongOwner(t *testing.T) {
	ledger, dir := newTestLedger(t)

	req, _ := ledger.Apply(101, day(10), day(10), "Sick", "fever")
	err := ledger.Cancel(102, req.ID)
	if !errors.Is(err, ErrWrongOwner) {
		t.Fatalf("expected ErrWrongOwner, got %v", err)
	}
	if got := mustBalance(t, dir, 101); got != 25 {
		t.Fatalf("failed cancel must not touch balance, got %d", got)
	}
	if _, ok := ledger.ByID(req.ID); !ok {
		t.Fatal("failed cancel must not remove the request")
	}
}

func TestCancelNotFound(t *testing.T) {
	ledger, _ := newTestLedger(t)
	if err := ledger.Cancel(101, 4242); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestApproveKeepsBalance(t *testing.T) {
	ledger, dir := newTestLedger(t)

	req, _ := ledger.Apply(101, day(10), day(11), "Work From Home", "Remote work")
	approved, err := ledger.Approve(req.ID)
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if approved.Status != StatusApproved {
		t.Fatalf("expected approved, got %s", approved.Status)
	}
	if got := mustBalance(t, dir, 101); got != 24 {
		t.Fatalf("approve must not change the balance, got %d", got)
	}
}

func TestApproveIsTerminal(t *testing.T) {
	ledger, _ := newTestLedger(t)

	req, _ := ledger.Apply(101, day(10), day(10), "Sick", "fever")
	if _, err := ledger.Approve(req.ID); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	if _, err := ledger.Approve(req.ID); !errors.Is(err, ErrNotPending) {
		t.Fatalf("second approve: expected ErrNotPending, got %v", err)
	}
	if _, err := ledger.Reject(req.ID); !errors.Is(err, ErrNotPending) {
		t.Fatalf("reject after approve: expected ErrNotPending, got %v", err)
	}
	if err := ledger.Cancel(101, req.ID); !errors.Is(err, ErrNotPending) {
		t.Fatalf("cancel after approve: expected ErrNotPending, got %v", err)
	}
}

func TestRejectCreditsExactlyOnce(t *testing.T) {
	ledger, dir := newTestLedger(t)

	req, _ := ledger.Apply(101, day(10), day(12), "Vacation", "trip")
	if got := mustBalance(t, dir, 101); got != 23 {
		t.Fatalf("expected 23 after apply, got %d", got)
	}

	result, err := ledger.Reject(req.ID)
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if !result.BalanceRestored {
		t.Fatal("expected balance restored for a known owner")
	}
	if result.Request.Status != StatusRejected {
		t.Fatalf("expected rejected, got %s", result.Request.Status)
	}
	if got := mustBalance(t, dir, 101); got != 26 {
		t.Fatalf("reject must credit the days back, got %d", got)
	}

	// A second reject must not credit again.
	if _, err := ledger.Reject(req.ID); !errors.Is(err, ErrNotPending) {
		t.Fatalf("second reject: expected ErrNotPending, got %v", err)
	}
	if got := mustBalance(t, dir, 101); got != 26 {
		t.Fatalf("second reject must not touch balance, got %d", got)
	}
}

func TestEditReplacesWithFreshID(t *testing.T) {
	ledger, dir := newTestLedger(t)

	orig, _ := ledger.Apply(101, day(10), day(11), "Work From Home", "Remote work")
	if got := mustBalance(t, dir, 101); got != 24 {
		t.Fatalf("expected 24 after apply, got %d", got)
	}

	edited, err := ledger.Edit(101, orig.ID, day(10), day(13), "Work From Home", "longer stretch")
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if edited.ID == orig.ID {
		t.Fatal("edit must allocate a fresh id")
	}
	if edited.ID <= orig.ID {
		t.Fatalf("ids must stay monotonic: old %d, new %d", orig.ID, edited.ID)
	}
	if edited.Days != 4 {
		t.Fatalf("expected 4 days, got %d", edited.Days)
	}
	if got := mustBalance(t, dir, 101); got != 22 {
		t.Fatalf("expected 22 after edit, got %d", got)
	}
	if _, ok := ledger.ByID(orig.ID); ok {
		t.Fatal("original request must be gone after edit")
	}
}

func TestEditCountsOldHoldAsAvailable(t *testing.T) {
	ledger, dir := newTestLedger(t)

	// Employee 102 starts with 10 days. Hold 8, then resize the same
	// request to 10: only valid because the old hold is released first.
	orig, err := ledger.Apply(102, day(1), day(8), "Vacation", "trip")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	edited, err := ledger.Edit(102, orig.ID, day(1), day(10), "Vacation", "trip")
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if edited.Days != 10 {
		t.Fatalf("expected 10 days, got %d", edited.Days)
	}
	if got := mustBalance(t, dir, 102); got != 0 {
		t.Fatalf("expected 0 after edit, got %d", got)
	}
}

func TestEditRejectedLeavesOriginalUntouched(t *testing.T) {
	ledger, dir := newTestLedger(t)

	orig, _ := ledger.Apply(102, day(1), day(5), "Vacation", "trip")

	// 5 held + 5 free = 10 available; 12 requested must fail.
	_, err := ledger.Edit(102, orig.ID, day(1), day(12), "Vacation", "trip")
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	kept, ok := ledger.ByID(orig.ID)
	if !ok {
		t.Fatal("failed edit must keep the original request")
	}
	if kept.Status != StatusPending || kept.Days != 5 {
		t.Fatalf("original mutated by failed edit: %+v", kept)
	}
	if got := mustBalance(t, dir, 102); got != 5 {
		t.Fatalf("failed edit must not touch balance, got %d", got)
	}
}

func TestEditNonPending(t *testing.T) {
	ledger, _ := newTestLedger(t)

	req, _ := ledger.Apply(101, day(10), day(10), "Sick", "fever")
	if _, err := ledger.Approve(req.ID); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if _, err := ledger.Edit(101, req.ID, day(10), day(11), "Sick", "fever"); !errors.Is(err, ErrNotPending) {
		t.Fatalf("expected ErrNotPending, got %v", err)
	}
}

func TestIDsNeverReused(t *testing.T) {
	ledger, _ := newTestLedger(t)

	seen := map[int]bool{}
	for i := 0; i < 5; i++ {
		req, err := ledger.Apply(101, day(10), day(10), "Sick", "checkup")
		if err != nil {
			t.Fatalf("apply %d failed: %v", i, err)
		}
		if seen[req.ID] {
			t.Fatalf("id %d reused", req.ID)
		}
		seen[req.ID] = true
		if err := ledger.Cancel(101, req.ID); err != nil {
			t.Fatalf("cancel %d failed: %v", i, err)
		}
	}

	req, err := ledger.Apply(101, day(10), day(10), "Sick", "checkup")
	if err != nil {
		t.Fatalf("final apply failed: %v", err)
	}
	if seen[req.ID] {
		t.Fatalf("id %d reused after cancels", req.ID)
	}
}

// The conservation law: balance plus days held by live pending and approved
// requests always equals the starting balance, no matter how operations
// interleave.
func TestBalanceConservationUnderRandomOps(t *testing.T) {
	ledger, dir := newTestLedger(t)
	rnd := rand.New(rand.NewSource(42))

	const initial = 26
	var pending []int

	check := func(step int) {
		held := 0
		for _, req := range ledger.RequestsFor(101) {
			if req.Status == StatusPending || req.Status == StatusApproved {
				held += req.Days
			}
		}
		if got := mustBalance(t, dir, 101); got+held != initial {
			t.Fatalf("step %d: balance %d + held %d != %d", step, got, held, initial)
		}
	}

	for step := 0; step < 200; step++ {
		switch rnd.Intn(4) {
		case 0:
			span := rnd.Intn(3)
			req, err := ledger.Apply(101, day(1), day(1+span), "Vacation", "fuzz")
			if err == nil {
				pending = append(pending, req.ID)
			} else if !errors.Is(err, ErrInsufficientBalance) {
				t.Fatalf("step %d: unexpected apply error: %v", step, err)
			}
		case 1:
			if len(pending) > 0 {
				i := rnd.Intn(len(pending))
				if err := ledger.Cancel(101, pending[i]); err != nil {
					t.Fatalf("step %d: cancel failed: %v", step, err)
				}
				pending = append(pending[:i], pending[i+1:]...)
			}
		case 2:
			if len(pending) > 0 {
				i := rnd.Intn(len(pending))
				if _, err := ledger.Approve(pending[i]); err != nil {
					t.Fatalf("step %d: approve failed: %v", step, err)
				}
				pending = append(pending[:i], pending[i+1:]...)
			}
		case 3:
			if len(pending) > 0 {
				i := rnd.Intn(len(pending))
				if _, err := ledger.Reject(pending[i]); err != nil {
					t.Fatalf("step %d: reject failed: %v", step, err)
				}
				pending = append(pending[:i], pending[i+1:]...)
			}
		}
		check(step)
	}
}

func TestPendingForFiltersStatusAndOwner(t *testing.T) {
	ledger, _ := newTestLedger(t)

	first, _ := ledger.Apply(101, day(1), day(1), "Sick", "a")
	ledger.Apply(101, day(2), day(2), "Sick", "b")
	ledger.Apply(102, day(3), day(3), "Sick", "c")
	if _, err := ledger.Approve(first.ID); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	pending := ledger.PendingFor(101)
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending for 101, got %d", len(pending))
	}
	if pending[0].Reason != "b" {
		t.Fatalf("wrong request returned: %+v", pending[0])
	}
}
