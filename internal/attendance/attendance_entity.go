package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPresent    = "present"
	StatusClockedOut = "clocked_out"
	StatusAbsent     = "absent"
)

type Attendance struct {
	ID             uuid.UUID    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID     uuid.UUID    `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_attendance_employee_date"`
	AttendanceDate time.Time    `gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendance_employee_date"`
	ClockIn        *time.Time   `gorm:"column:clock_in;type:timestamptz"`
	ClockOut       *time.Time   `gorm:"column:clock_out;type:timestamptz"`
	Status         string       `gorm:"column:status;type:varchar(20);not null;default:present"`
	Notes          *string      `gorm:"column:notes;type:text"`
	MarkedBy       *uuid.UUID   `gorm:"column:marked_by;type:uuid"`
	CreatedAt      time.Time    `gorm:"column:created_at"`
	UpdatedAt      time.Time    `gorm:"column:updated_at"`
	Employee       *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (Attendance) TableName() string {
	return "attendances"
}

type EmployeeRef struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName string    `gorm:"column:first_name"`
	LastName  string    `gorm:"column:last_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
