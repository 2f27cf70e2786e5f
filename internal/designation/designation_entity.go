package designation

import (
	"time"

	"github.com/google/uuid"
)

type Designation struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:255;not null;uniqueIndex:uq_designation_name"`
	Level     int       `gorm:"not null;default:1"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
