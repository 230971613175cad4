// Package insights holds the cosmetic analytics of the system: the leave
// pattern predictor and the stress analyzer. Both are read-only folds over
// snapshots and carry no invariants.
package insights

import (
	"strings"

	"smartleave/internal/domain/directory"
	"smartleave/internal/domain/leave"
)

type Pattern struct {
	Total     int    `json:"total"`
	Sick      int    `json:"sick"`
	WFH       int    `json:"wfh"`
	Vacation  int    `json:"vacation"`
	Predicted string `json:"predicted"`
}

// PredictPattern counts the employee's past leave types by substring match
// and guesses the next one: WFH when it dominates, then Sick, then
// Vacation.
func PredictPattern(empID int, requests []leave.Request) Pattern {
	var p Pattern
	for _, req := range requests {
		if req.EmpID != empID {
			continue
		}
		p.Total++
		t := strings.ToLower(req.Type)
		if strings.Contains(t, "sick") {
			p.Sick++
		}
		if strings.Contains(t, "wfh") {
			p.WFH++
		}
		if strings.Contains(t, "vac") {
			p.Vacation++
		}
	}

	switch {
	case p.WFH > p.Sick && p.WFH > p.Vacation:
		p.Predicted = "WFH"
	case p.Sick > p.Vacation:
		p.Predicted = "Sick"
	default:
		p.Predicted = "Vacation"
	}
	return p
}

type StressLevel string

const (
	StressHigh     StressLevel = "high"
	StressModerate StressLevel = "moderate"
	StressLow      StressLevel = "low"
)

type StressReport struct {
	LeavesTaken int         `json:"leavesTaken"`
	Level       StressLevel `json:"level"`
	Suggestion  string      `json:"suggestion"`
}

// AnalyzeStress grades the user's leave consumption: more than 20 days is
// high, fewer than 5 is low, anything else moderate.
func AnalyzeStress(u directory.User) StressReport {
	taken := u.LeavesUsed()
	switch {
	case taken > 20:
		return StressReport{
			LeavesTaken: taken,
			Level:       StressHigh,
			Suggestion:  "High leaves: you might be stressed. Take wellness leave or consult HR.",
		}
	case taken < 5:
		return StressReport{
			LeavesTaken: taken,
			Level:       StressLow,
			Suggestion:  "Good leave pattern. Keep balancing work and rest.",
		}
	default:
		return StressReport{
			LeavesTaken: taken,
			Level:       StressModerate,
			Suggestion:  "Moderate leave. Prioritize self-care.",
		}
	}
}
