package department

type CreateDepartmentRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description" binding:"max=2000"`
}

type UpdateDepartmentRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description" binding:"max=2000"`
}

type AssignHeadRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
}

type DepartmentResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	DeptHeadID  string `json:"dept_head_id,omitempty"`
	HeadName    string `json:"dept_head_name,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}
