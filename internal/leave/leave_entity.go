package leave

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeSick      = "sick"
	TypeVacation  = "vacation"
	TypePersonal  = "personal"
	TypeEmergency = "emergency"
)

type LeaveRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_employee_dates"`
	// Snapshot of the requester's department at submission time.
	DepartmentID *uuid.UUID `gorm:"type:uuid;index:idx_leave_requests_department_status"`

	LeaveType string    `gorm:"type:varchar(20);not null"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	TotalDays int       `gorm:"type:int;not null;default:1"`
	Reason    string    `gorm:"type:text;not null"`

	Status Status `gorm:"type:varchar(20);not null;default:'pending';index:idx_leave_requests_department_status"`

	ReviewedByDeptHead *uuid.UUID `gorm:"column:reviewed_by_dept_head;type:uuid"`
	DeptHeadComments   *string    `gorm:"column:dept_head_comments;type:text"`
	DeptReviewDate     *time.Time `gorm:"column:dept_review_date"`

	ReviewedByHR *uuid.UUID `gorm:"column:reviewed_by_hr;type:uuid"`
	HRComments   *string    `gorm:"column:hr_comments;type:text"`
	HRReviewDate *time.Time `gorm:"column:hr_review_date"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Employee *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

type EmployeeRef struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeNumber string
	FirstName      string
	LastName       string
}

func (EmployeeRef) TableName() string {
	return "employees"
}

func (e EmployeeRef) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// ReviewUpdate carries the columns written by one review step.
type ReviewUpdate struct {
	Stage      Stage
	To         Status
	ReviewerID uuid.UUID
	Comments   string
	ReviewedAt time.Time
}
