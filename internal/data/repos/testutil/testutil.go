package testutil

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/yungbote/studyhours-backend/internal/data/db"
	"github.com/yungbote/studyhours-backend/internal/platform/logger"
	"gorm.io/gorm"
)

var (
	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// DB opens a migrated sqlite database private to the test.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()
	svc, err := db.NewService(db.Config{
		Driver: db.DriverSQLite,
		DSN:    filepath.Join(tb.TempDir(), "study.db"),
		Silent: true,
	}, Logger(tb))
	if err != nil {
		tb.Fatalf("open test db: %v", err)
	}
	tb.Cleanup(func() { _ = svc.Close() })
	if err := db.AutoMigrateAll(svc.DB()); err != nil {
		tb.Fatalf("migrate test db: %v", err)
	}
	return svc.DB()
}
