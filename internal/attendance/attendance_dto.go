package attendance

type ClockInRequest struct {
	Notes *string `json:"notes" binding:"omitempty,max=500"`
}

type ClockOutRequest struct {
	Notes *string `json:"notes" binding:"omitempty,max=500"`
}

type MarkAbsentRequest struct {
	EmployeeID string  `json:"employee_id" binding:"required,uuid"`
	Date       string  `json:"date" binding:"required"`
	Notes      *string `json:"notes" binding:"omitempty,max=500"`
}

type AttendanceResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   string  `json:"employee_name,omitempty"`
	AttendanceDate string  `json:"attendance_date"`
	ClockIn        *string `json:"clock_in,omitempty"`
	ClockOut       *string `json:"clock_out,omitempty"`
	Status         string  `json:"status"`
	Notes          *string `json:"notes,omitempty"`
	MarkedBy       *string `json:"marked_by,omitempty"`
}

type CalendarDay struct {
	Date   string    `json:"date"`
	Status DayStatus `json:"status"`
}

type CalendarResponse struct {
	EmployeeID string            `json:"employee_id"`
	Month      string            `json:"month"`
	Days       []CalendarDay     `json:"days"`
	Summary    map[DayStatus]int `json:"summary"`
}
