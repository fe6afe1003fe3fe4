package study

import (
	"time"

	"gorm.io/datatypes"
)

// SnapshotRecord stores one user's Snapshot as a JSON document.
type SnapshotRecord struct {
	UserID    string         `gorm:"column:user_id;primaryKey;size:128" json:"user_id"`
	Payload   datatypes.JSON `gorm:"column:payload;not null" json:"payload"`
	Version   int64          `gorm:"column:version;not null;default:0" json:"version"`
	CreatedAt time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;index" json:"updated_at"`
}

func (SnapshotRecord) TableName() string { return "study_snapshot" }
