package employee

type CreateEmployeeRequest struct {
	FirstName          string `json:"first_name" binding:"required,max=100"`
	LastName           string `json:"last_name" binding:"omitempty,max=100"`
	Email              string `json:"email" binding:"required,email"`
	Username           string `json:"username" binding:"required,min=3,max=50"`
	Password           string `json:"password" binding:"required,min=8"`
	RoleID             string `json:"role_id" binding:"omitempty,uuid"`
	DepartmentID       string `json:"department_id" binding:"omitempty,uuid"`
	DesignationID      string `json:"designation_id" binding:"omitempty,uuid"`
	ReportingManagerID string `json:"reporting_manager_id" binding:"omitempty,uuid"`
	Phone              string `json:"phone" binding:"omitempty,max=30"`
	Address            string `json:"address"`
	Gender             string `json:"gender" binding:"omitempty,oneof=male female other"`
	DOB                string `json:"dob"`
}

type UpdateEmployeeRequest struct {
	FirstName          string `json:"first_name" binding:"required,max=100"`
	LastName           string `json:"last_name" binding:"omitempty,max=100"`
	Email              string `json:"email" binding:"required,email"`
	RoleID             string `json:"role_id" binding:"omitempty,uuid"`
	DepartmentID       string `json:"department_id" binding:"omitempty,uuid"`
	DesignationID      string `json:"designation_id" binding:"omitempty,uuid"`
	ReportingManagerID string `json:"reporting_manager_id" binding:"omitempty,uuid"`
	Phone              string `json:"phone" binding:"omitempty,max=30"`
	Address            string `json:"address"`
	Gender             string `json:"gender" binding:"omitempty,oneof=male female other"`
	DOB                string `json:"dob"`
	Status             string `json:"status" binding:"omitempty,oneof=active inactive"`
}

type EmployeeRefResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type EmployeeResponse struct {
	ID                 string               `json:"id"`
	EmployeeNumber     string               `json:"employee_number"`
	FirstName          string               `json:"first_name"`
	LastName           string               `json:"last_name"`
	FullName           string               `json:"full_name"`
	Email              string               `json:"email"`
	Username           string               `json:"username"`
	Phone              string               `json:"phone,omitempty"`
	Address            string               `json:"address,omitempty"`
	Gender             string               `json:"gender,omitempty"`
	DOB                string               `json:"dob,omitempty"`
	DOJ                string               `json:"doj"`
	Status             string               `json:"status"`
	RoleID             string               `json:"role_id,omitempty"`
	DepartmentID       string               `json:"department_id,omitempty"`
	DesignationID      string               `json:"designation_id,omitempty"`
	ReportingManagerID string               `json:"reporting_manager_id,omitempty"`
	Role               *EmployeeRefResponse `json:"role,omitempty"`
	Department         *EmployeeRefResponse `json:"department,omitempty"`
	Designation        *EmployeeRefResponse `json:"designation,omitempty"`
}

type EmployeeOptionResponse struct {
	ID             string `json:"id"`
	EmployeeNumber string `json:"employee_number"`
	FullName       string `json:"full_name"`
}
