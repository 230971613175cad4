package reports

import (
	"smartleave/internal/domain/directory"
	"smartleave/internal/domain/leave"
)

// Pure folds over directory and ledger snapshots. Nothing in this package
// holds state or mutates anything.

type StatusCounts struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

func CountByStatus(requests []leave.Request) StatusCounts {
	var counts StatusCounts
	for _, req := range requests {
		switch req.Status {
		case leave.StatusPending:
			counts.Pending++
		case leave.StatusApproved:
			counts.Approved++
		case leave.StatusRejected:
			counts.Rejected++
		}
	}
	return counts
}

// TeamLeavesUsed sums (allowance - balance) over the employees.
func TeamLeavesUsed(employees []directory.User) int {
	total := 0
	for _, u := range employees {
		total += u.LeavesUsed()
	}
	return total
}

// TopBadgeHolder returns the user with the most badges; ties go to the
// first user encountered in insertion order.
func TopBadgeHolder(users []directory.User) (directory.User, bool) {
	if len(users) == 0 {
		return directory.User{}, false
	}
	top := users[0]
	for _, u := range users[1:] {
		if u.Badges > top.Badges {
			top = u
		}
	}
	return top, true
}

// TopAbsentee returns the user with the most leaves used; ties go to the
// first encountered.
func TopAbsentee(users []directory.User) (directory.User, bool) {
	var top directory.User
	found := false
	for _, u := range users {
		if !found || u.LeavesUsed() > top.LeavesUsed() {
			top = u
			found = true
		}
	}
	return top, found
}

type Attendance struct {
	EmpID        int    `json:"empId"`
	Name         string `json:"name"`
	DaysAttended int    `json:"daysAttended"`
}

// AttendanceSummary approximates days attended this year as 365 minus the
// leaves used.
func AttendanceSummary(employees []directory.User) []Attendance {
	out := make([]Attendance, 0, len(employees))
	for _, u := range employees {
		out = append(out, Attendance{
			EmpID:        u.EmpID,
			Name:         u.Name,
			DaysAttended: 365 - u.LeavesUsed(),
		})
	}
	return out
}

type OrgStats struct {
	Employees     int          `json:"employees"`
	LeavesTaken   int          `json:"leavesTaken"`
	TotalRequests int          `json:"totalRequests"`
	Statuses      StatusCounts `json:"statuses"`
}

func OrgWideStats(employees []directory.User, requests []leave.Request) OrgStats {
	return OrgStats{
		Employees:     len(employees),
		LeavesTaken:   TeamLeavesUsed(employees),
		TotalRequests: len(requests),
		Statuses:      CountByStatus(requests),
	}
}

type TeamRow struct {
	EmpID        int    `json:"empId"`
	Name         string `json:"name"`
	LeavesUsed   int    `json:"leavesUsed"`
	LeaveBalance int    `json:"leaveBalance"`
}

// TeamSummary renders one row per employee for the team table and the
// team-stats export.
func TeamSummary(employees []directory.User) []TeamRow {
	out := make([]TeamRow, 0, len(employees))
	for _, u := range employees {
		out = append(out, TeamRow{
			EmpID:        u.EmpID,
			Name:         u.Name,
			LeavesUsed:   u.LeavesUsed(),
			LeaveBalance: u.LeaveBalance,
		})
	}
	return out
}
