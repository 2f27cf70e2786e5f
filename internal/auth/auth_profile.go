package auth

import "github.com/google/uuid"

// Profile is the employee side of an account, read on login and /me.
type Profile struct {
	EmployeeID     uuid.UUID  `gorm:"column:employee_id"`
	EmployeeNumber string     `gorm:"column:employee_number"`
	FirstName      string     `gorm:"column:first_name"`
	LastName       string     `gorm:"column:last_name"`
	Status         string     `gorm:"column:status"`
	DepartmentID   *uuid.UUID `gorm:"column:department_id"`
	RoleName       *string    `gorm:"column:role_name"`
}

func (p Profile) Name() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

func (p Profile) Role() string {
	if p.RoleName == nil {
		return "Employee"
	}
	return *p.RoleName
}
