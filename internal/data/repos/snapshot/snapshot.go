package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	study "github.com/yungbote/studyhours-backend/internal/domain/study"
	"github.com/yungbote/studyhours-backend/internal/pkg/dbctx"
	"github.com/yungbote/studyhours-backend/internal/platform/logger"
)

type SnapshotRepo interface {
	// Load returns the stored snapshot for userID. found is false when the
	// user has never saved.
	Load(dbc dbctx.Context, userID string) (snap study.Snapshot, found bool, err error)
	Save(dbc dbctx.Context, userID string, snap study.Snapshot) error
	Delete(dbc dbctx.Context, userID string) error
}

type snapshotRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSnapshotRepo(db *gorm.DB, baseLog *logger.Logger) SnapshotRepo {
	return &snapshotRepo{db: db, log: baseLog.With("repo", "SnapshotRepo")}
}

func (r *snapshotRepo) Load(dbc dbctx.Context, userID string) (study.Snapshot, bool, error) {
	var row study.SnapshotRecord
	err := dbc.DB(r.db).Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return study.EmptySnapshot(), false, nil
	}
	if err != nil {
		return study.Snapshot{}, false, err
	}
	var snap study.Snapshot
	if err := json.Unmarshal(row.Payload, &snap); err != nil {
		return study.Snapshot{}, false, fmt.Errorf("decode snapshot for %s: %w", userID, err)
	}
	snap.Normalize()
	return snap, true, nil
}

func (r *snapshotRepo) Save(dbc dbctx.Context, userID string, snap study.Snapshot) error {
	if userID == "" {
		return fmt.Errorf("save snapshot: empty user id")
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	now := time.Now().UTC()
	row := &study.SnapshotRecord{
		UserID:    userID,
		Payload:   datatypes.JSON(payload),
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return dbc.DB(r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"payload":    row.Payload,
				"updated_at": now,
				"version":    gorm.Expr("study_snapshot.version + 1"),
			}),
		}).
		Create(row).Error
}

func (r *snapshotRepo) Delete(dbc dbctx.Context, userID string) error {
	return dbc.DB(r.db).Where("user_id = ?", userID).Delete(&study.SnapshotRecord{}).Error
}

// UserPersister saves one user's snapshots through a SnapshotRepo.
type UserPersister struct {
	Repo   SnapshotRepo
	UserID string
}

// Save runs detached from ctx's cancellation: a mutation that already
// changed the in-memory state must not fail to persist because its request
// was dropped.
func (p UserPersister) Save(ctx context.Context, snap study.Snapshot) error {
	return p.Repo.Save(dbctx.Detached(ctx), p.UserID, snap)
}
