package department

import (
	"time"

	"github.com/google/uuid"
)

type Department struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name        string     `gorm:"size:255;not null;uniqueIndex:uq_department_name"`
	Description string     `gorm:"type:text"`
	DeptHeadID  *uuid.UUID `gorm:"column:dept_head_id;type:uuid;uniqueIndex:uq_department_head"`
	Head        *HeadRef   `gorm:"foreignKey:DeptHeadID;references:ID"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime"`
}

// HeadRef is the slice of an employee row shown next to a department.
type HeadRef struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName string    `gorm:"column:first_name"`
	LastName  string    `gorm:"column:last_name"`
}

func (HeadRef) TableName() string {
	return "employees"
}
