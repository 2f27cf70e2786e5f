package leave

type CreateLeaveRequest struct {
	LeaveType string `json:"leave_type" binding:"required,oneof=sick vacation personal emergency"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason" binding:"required,max=1000"`
}

type ReviewLeaveRequest struct {
	Action   string `json:"action" binding:"required,oneof=approve reject"`
	Comments string `json:"comments" binding:"max=1000"`
}

type LeaveResponse struct {
	ID                 string  `json:"id"`
	EmployeeID         string  `json:"employee_id"`
	EmployeeName       string  `json:"employee_name,omitempty"`
	EmployeeNumber     string  `json:"employee_number,omitempty"`
	DepartmentID       *string `json:"department_id,omitempty"`
	LeaveType          string  `json:"leave_type"`
	StartDate          string  `json:"start_date"`
	EndDate            string  `json:"end_date"`
	TotalDays          int     `json:"total_days"`
	Reason             string  `json:"reason"`
	Status             string  `json:"status"`
	ReviewedByDeptHead *string `json:"reviewed_by_dept_head,omitempty"`
	DeptHeadComments   *string `json:"dept_head_comments,omitempty"`
	DeptReviewDate     *string `json:"dept_review_date,omitempty"`
	ReviewedByHR       *string `json:"reviewed_by_hr,omitempty"`
	HRComments         *string `json:"hr_comments,omitempty"`
	HRReviewDate       *string `json:"hr_review_date,omitempty"`
	CreatedAt          string  `json:"created_at"`
}
