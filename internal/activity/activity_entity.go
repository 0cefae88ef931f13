package activity

import (
	"time"

	"github.com/google/uuid"
)

// Activity adalah satu mutation yang berhasil, dicatat dari topic invalidasi cache.
type Activity struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EventID    string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	Resource   string    `gorm:"type:varchar(50);index;not null"`
	ResourceID string    `gorm:"type:varchar(64)"`
	Action     string    `gorm:"type:varchar(20);not null"`
	Entities   string    `gorm:"type:text"`
	ActorID    string    `gorm:"type:varchar(64);index"`
	RequestID  string    `gorm:"type:varchar(64)"`
	Message    string    `gorm:"type:text"`
	OccurredAt time.Time `gorm:"index"`
	CreatedAt  time.Time
}

func (Activity) TableName() string { return "activities" }
