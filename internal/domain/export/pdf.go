package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"smartleave/internal/domain/directory"
	"smartleave/internal/domain/leave"
)

// RequestsPDF renders the leave requests report as a PDF document.
func RequestsPDF(requests []leave.Request, nameOf func(int) string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Leave Requests Report")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	for _, r := range requests {
		pdf.Cell(0, 7, fmt.Sprintf("Request #%d - %s (%d)", r.ID, nameOf(r.EmpID), r.EmpID))
		pdf.Ln(6)
		pdf.Cell(0, 7, fmt.Sprintf("%s  %s to %s  (%d days)  [%s]",
			r.Type, r.Start.Format(dateLayout), r.End.Format(dateLayout), r.Days, r.Status))
		pdf.Ln(6)
		if r.Reason != "" {
			pdf.Cell(0, 7, "Reason: "+r.Reason)
			pdf.Ln(6)
		}
		pdf.Ln(2)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// TeamStatsPDF renders the team leave summary as a PDF document.
func TeamStatsPDF(employees []directory.User) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Team Leave Summary")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	for _, u := range employees {
		pdf.Cell(0, 8, fmt.Sprintf("%d  %s", u.EmpID, u.Name))
		pdf.Ln(7)
		pdf.Cell(0, 8, fmt.Sprintf("Used: %d   Balance: %d / %d", u.LeavesUsed(), u.LeaveBalance, u.TotalAllowed))
		pdf.Ln(9)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
