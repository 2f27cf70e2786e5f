package holiday

import (
	"time"

	"github.com/google/uuid"
)

type Holiday struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Date      time.Time  `gorm:"type:date;not null;uniqueIndex:uq_holiday_date"`
	Reason    string     `gorm:"size:255;not null"`
	CreatedBy *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
}
