// Package export serializes directory and ledger snapshots into the CSV
// and TXT report formats, and saves them under timestamped filenames. It
// reads snapshots only; an export failure can never corrupt ledger state.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"smartleave/internal/domain/audit"
	"smartleave/internal/domain/directory"
	"smartleave/internal/domain/feedback"
	"smartleave/internal/domain/leave"
)

const dateLayout = "2006-01-02"

// Timestamp renders the filename suffix that keeps exports from colliding.
func Timestamp(now time.Time) string {
	return now.Format("20060102_150405")
}

// Sanitize replaces commas with spaces so free text cannot break a row.
// The format performs no quoting or escaping; this is a known limitation
// of the persisted layout.
func Sanitize(s string) string {
	return strings.ReplaceAll(s, ",", " ")
}

// Writer saves report payloads into a directory, one file per export,
// named <prefix>_<timestamp>.<ext>.
type Writer struct {
	Dir string
}

func (w Writer) Save(prefix, ext string, data []byte, now time.Time) (string, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s_%s.%s", prefix, Timestamp(now), ext)
	path := filepath.Join(w.Dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return name, nil
}

func RequestsCSV(requests []leave.Request) string {
	var sb strings.Builder
	sb.WriteString("ReqID,EmpID,Start,End,Days,Type,Status,Comments\n")
	for _, r := range requests {
		fmt.Fprintf(&sb, "%d,%d,%s,%s,%d,%s,%s,%s\n",
			r.ID,
			r.EmpID,
			r.Start.Format(dateLayout),
			r.End.Format(dateLayout),
			r.Days,
			Sanitize(r.Type),
			Sanitize(string(r.Status)),
			Sanitize(r.Reason),
		)
	}
	return sb.String()
}

// RequestsTXT renders the long-form report. nameOf resolves an employee id
// to a display name; unknown owners render as "Unknown".
func RequestsTXT(requests []leave.Request, nameOf func(int) string) string {
	var sb strings.Builder
	sb.WriteString("===== Leave Requests Report =====\n\n")
	for _, r := range requests {
		fmt.Fprintf(&sb, "Request ID: %d\n", r.ID)
		fmt.Fprintf(&sb, "Employee  : %s (%d)\n", nameOf(r.EmpID), r.EmpID)
		fmt.Fprintf(&sb, "Type      : %s\n", r.Type)
		fmt.Fprintf(&sb, "From      : %s\n", r.Start.Format(dateLayout))
		fmt.Fprintf(&sb, "To        : %s\n", r.End.Format(dateLayout))
		fmt.Fprintf(&sb, "Days      : %d\n", r.Days)
		fmt.Fprintf(&sb, "Reason    : %s\n", r.Reason)
		fmt.Fprintf(&sb, "Status    : %s\n", r.Status)
		sb.WriteString("----------------------------------------\n")
	}
	return sb.String()
}

func TeamStatsCSV(employees []directory.User) string {
	var sb strings.Builder
	sb.WriteString("EmpID,Name,LeavesUsed,LeaveBalance\n")
	for _, u := range employees {
		fmt.Fprintf(&sb, "%d,%s,%d,%d\n", u.EmpID, Sanitize(u.Name), u.LeavesUsed(), u.LeaveBalance)
	}
	return sb.String()
}

func TeamStatsTXT(employees []directory.User) string {
	var sb strings.Builder
	sb.WriteString("===== Team Leave Summary =====\n\n")
	for _, u := range employees {
		fmt.Fprintf(&sb, "EmpID : %d\n", u.EmpID)
		fmt.Fprintf(&sb, "Name  : %s\n", u.Name)
		fmt.Fprintf(&sb, "Leaves Used : %d\n", u.LeavesUsed())
		fmt.Fprintf(&sb, "Leave Balance: %d\n", u.LeaveBalance)
		sb.WriteString("--------------------------------\n")
	}
	return sb.String()
}

func EmployeeCSV(u directory.User) string {
	lastLogin := "Never"
	if u.LastLogin != nil {
		lastLogin = u.LastLogin.Format(time.RFC3339)
	}
	var sb strings.Builder
	sb.WriteString("EmpID,Name,Email,TotalAllowed,LeaveBalance,Badges,LastLogin\n")
	fmt.Fprintf(&sb, "%d,%s,%s,%d,%d,%d,%s\n",
		u.EmpID, Sanitize(u.Name), Sanitize(u.Email), u.TotalAllowed, u.LeaveBalance, u.Badges, Sanitize(lastLogin))
	return sb.String()
}

func EmployeeTXT(u directory.User, requests []leave.Request) string {
	lastLogin := "Never"
	if u.LastLogin != nil {
		lastLogin = u.LastLogin.Format(time.RFC3339)
	}
	var sb strings.Builder
	sb.WriteString("===== Employee Profile =====\n")
	fmt.Fprintf(&sb, "EmpID: %d\n", u.EmpID)
	fmt.Fprintf(&sb, "Name: %s\n", u.Name)
	fmt.Fprintf(&sb, "Email: %s\n", u.Email)
	fmt.Fprintf(&sb, "Total Allowed: %d\n", u.TotalAllowed)
	fmt.Fprintf(&sb, "Leave Balance: %d\n", u.LeaveBalance)
	fmt.Fprintf(&sb, "Badges: %d\n", u.Badges)
	fmt.Fprintf(&sb, "Last Login: %s\n", lastLogin)
	sb.WriteString("-----------------------------\n\nRequests:\n")
	for _, r := range requests {
		fmt.Fprintf(&sb, "Req#%d | %s | %s -> %s | Days: %d | Status: %s\n",
			r.ID, r.Type, r.Start.Format(dateLayout), r.End.Format(dateLayout), r.Days, r.Status)
	}
	return sb.String()
}

func FeedbackCSV(entries []feedback.Entry) string {
	var sb strings.Builder
	sb.WriteString("From,Message\n")
	for _, e := range entries {
		fmt.Fprintf(&sb, "%s,%s\n", Sanitize(e.EmpName), Sanitize(e.Message))
	}
	return sb.String()
}

func FeedbackTXT(entries []feedback.Entry) string {
	var sb strings.Builder
	sb.WriteString("===== HR Feedback =====\n\n")
	for _, e := range entries {
		fmt.Fprintf(&sb, "From: %s\n", e.EmpName)
		fmt.Fprintf(&sb, "Message: %s\n", e.Message)
		sb.WriteString("--------------------------------\n")
	}
	return sb.String()
}

func AuditCSV(blocks []audit.Block) string {
	var sb strings.Builder
	sb.WriteString("ReqID,EmpID,Status,Hash\n")
	for _, b := range blocks {
		fmt.Fprintf(&sb, "%d,%d,%s,%s\n", b.RequestID, b.EmpID, Sanitize(string(b.Status)), b.Hash)
	}
	return sb.String()
}

func AuditTXT(blocks []audit.Block) string {
	var sb strings.Builder
	sb.WriteString("===== Blockchain Audit Trail =====\n\n")
	for _, b := range blocks {
		fmt.Fprintf(&sb, "ReqID: %d | EmpID: %d\n", b.RequestID, b.EmpID)
		fmt.Fprintf(&sb, "Status: %s\n", b.Status)
		fmt.Fprintf(&sb, "Hash: %s\n", b.Hash)
		sb.WriteString("--------------------------------\n")
	}
	return sb.String()
}
