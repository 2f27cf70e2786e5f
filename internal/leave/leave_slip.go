package leave

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// RenderSlip renders a one-page PDF confirming an approved leave.
func RenderSlip(l LeaveRequest, generatedAt time.Time) ([]byte, error) {
	employeeName := l.EmployeeID.String()
	employeeNumber := "-"
	if l.Employee != nil {
		employeeName = l.Employee.FullName()
		if l.Employee.EmployeeNumber != "" {
			employeeNumber = l.Employee.EmployeeNumber
		}
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Leave Approval Slip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s (%s)", employeeName, employeeNumber))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Leave type: %s", l.LeaveType))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s (%d day(s))",
		l.StartDate.Format("2006-01-02"), l.EndDate.Format("2006-01-02"), l.TotalDays))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Reason: %s", l.Reason))
	pdf.Ln(10)

	if l.DeptReviewDate != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Department review: %s", l.DeptReviewDate.Format("2006-01-02")))
		pdf.Ln(7)
	}
	if l.HRReviewDate != nil {
		pdf.Cell(0, 8, fmt.Sprintf("HR approval: %s", l.HRReviewDate.Format("2006-01-02")))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", l.Status))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s", generatedAt.UTC().Format(time.RFC3339)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
