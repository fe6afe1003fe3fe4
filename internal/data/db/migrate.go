package db

import (
	study "github.com/yungbote/studyhours-backend/internal/domain/study"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&study.SnapshotRecord{},
	)
}
