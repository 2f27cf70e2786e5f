package auth

type LoginRequest struct {
	// Login accepts either the username or the email address.
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	ID             string `json:"id"`
	EmployeeID     string `json:"employee_id"`
	EmployeeNumber string `json:"employee_number,omitempty"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	DepartmentID   string `json:"department_id,omitempty"`
}

type LookupUsernameResponse struct {
	Email string `json:"email"`
}

type BootstrapRequest struct {
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"omitempty,min=8"`
}

type BootstrapResponse struct {
	EmployeeID string `json:"employee_id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Created    bool   `json:"created"`
}
