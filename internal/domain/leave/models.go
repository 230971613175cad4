package leave

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Request ids are allocated monotonically from this base and never reused,
// even after a cancel or edit removes the request.
const requestIDBase = 1000

type Request struct {
	ID     int       `json:"id"`
	EmpID  int       `json:"empId"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Days   int       `json:"days"`
	Type   string    `json:"type"`
	Reason string    `json:"reason"`
	Status Status    `json:"status"`
}
