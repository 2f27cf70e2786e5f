package employee

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Employee struct {
	ID                 uuid.UUID       `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	AccountID          *uuid.UUID      `gorm:"column:account_id;type:uuid;uniqueIndex"`
	EmployeeNumber     string          `gorm:"column:employee_number;type:varchar(20);uniqueIndex:uq_employee_number"`
	FirstName          string          `gorm:"column:first_name;type:varchar(100);not null"`
	LastName           string          `gorm:"column:last_name;type:varchar(100)"`
	Email              string          `gorm:"column:email;type:varchar(255);not null;uniqueIndex:uq_employee_email"`
	Username           string          `gorm:"column:username;type:varchar(50);not null;uniqueIndex:uq_employee_username"`
	RoleID             *uuid.UUID      `gorm:"column:role_id;type:uuid"`
	DepartmentID       *uuid.UUID      `gorm:"column:department_id;type:uuid;index"`
	DesignationID      *uuid.UUID      `gorm:"column:designation_id;type:uuid"`
	ReportingManagerID *uuid.UUID      `gorm:"column:reporting_manager_id;type:uuid"`
	Phone              string          `gorm:"column:phone;type:varchar(30)"`
	Address            string          `gorm:"column:address;type:text"`
	Gender             string          `gorm:"column:gender;type:varchar(10)"`
	DOB                *time.Time      `gorm:"column:dob;type:date"`
	DOJ                time.Time       `gorm:"column:doj;type:date;not null"`
	Status             string          `gorm:"column:status;type:varchar(20);not null;default:active"`
	CreatedAt          time.Time       `gorm:"column:created_at"`
	UpdatedAt          time.Time       `gorm:"column:updated_at"`
	Role               *RoleRef        `gorm:"foreignKey:RoleID;references:ID"`
	Department         *DepartmentRef  `gorm:"foreignKey:DepartmentID;references:ID"`
	Designation        *DesignationRef `gorm:"foreignKey:DesignationID;references:ID"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// Account holds login credentials. Employees created through the API always
// get one; auth reads it back on login.
type Account struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"column:username;type:varchar(50);not null;uniqueIndex:uq_account_username"`
	Email        string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex:uq_account_email"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (Account) TableName() string {
	return "accounts"
}

type RoleRef struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"column:name"`
}

func (RoleRef) TableName() string {
	return "roles"
}

type DepartmentRef struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"column:name"`
}

func (DepartmentRef) TableName() string {
	return "departments"
}

type DesignationRef struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"column:name"`
}

func (DesignationRef) TableName() string {
	return "designations"
}
