package employeehistory

import (
	"time"

	"github.com/google/uuid"
)

const (
	ChangeHired     = "hired"
	ChangePromotion = "promotion"
	ChangeTransfer  = "transfer"
)

type EmploymentHistory struct {
	ID               uuid.UUID       `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID       uuid.UUID       `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_employment_history_entry"`
	ChangeType       string          `gorm:"column:change_type;type:varchar(20);not null;uniqueIndex:uq_employment_history_entry"`
	OldDepartmentID  *uuid.UUID      `gorm:"column:old_department_id;type:uuid"`
	NewDepartmentID  *uuid.UUID      `gorm:"column:new_department_id;type:uuid"`
	OldDesignationID *uuid.UUID      `gorm:"column:old_designation_id;type:uuid"`
	NewDesignationID *uuid.UUID      `gorm:"column:new_designation_id;type:uuid"`
	EffectiveDate    time.Time       `gorm:"column:effective_date;type:date;not null;uniqueIndex:uq_employment_history_entry"`
	ChangeReason     *string         `gorm:"column:change_reason;type:text"`
	RecordedBy       *uuid.UUID      `gorm:"column:recorded_by;type:uuid"`
	Remarks          *string         `gorm:"column:remarks;type:text"`
	CreatedAt        time.Time       `gorm:"column:created_at"`
	OldDepartment    *DepartmentRef  `gorm:"foreignKey:OldDepartmentID;references:ID"`
	NewDepartment    *DepartmentRef  `gorm:"foreignKey:NewDepartmentID;references:ID"`
	OldDesignation   *DesignationRef `gorm:"foreignKey:OldDesignationID;references:ID"`
	NewDesignation   *DesignationRef `gorm:"foreignKey:NewDesignationID;references:ID"`
}

func (EmploymentHistory) TableName() string {
	return "employment_history"
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

// Placement is the department and designation an employee currently holds.
type Placement struct {
	DepartmentID  *uuid.UUID `gorm:"column:department_id"`
	DesignationID *uuid.UUID `gorm:"column:designation_id"`
}
