package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ninesuite/ninesuite-backend/internal/logger"
	"github.com/ninesuite/ninesuite-backend/internal/types"
)

type SignalSnapshotRepo interface {
	GetCurrentByEmployee(ctx context.Context, tx *gorm.DB, companyID, employeeID uuid.UUID) ([]*types.SignalSnapshot, error)
	Create(ctx context.Context, tx *gorm.DB, snapshots []*types.SignalSnapshot) ([]*types.SignalSnapshot, error)
}

type signalSnapshotRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSignalSnapshotRepo(db *gorm.DB, baseLog *logger.Logger) SignalSnapshotRepo {
	repoLog := baseLog.With("repo", "SignalSnapshotRepo")
	return &signalSnapshotRepo{db: db, log: repoLog}
}

func (r *signalSnapshotRepo) GetCurrentByEmployee(ctx context.Context, tx *gorm.DB, companyID, employeeID uuid.UUID) ([]*types.SignalSnapshot, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.SignalSnapshot
	if employeeID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("company_id = ? AND employee_id = ?", companyID, employeeID).
		Order("captured_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *signalSnapshotRepo) Create(ctx context.Context, tx *gorm.DB, snapshots []*types.SignalSnapshot) ([]*types.SignalSnapshot, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(snapshots) == 0 {
		return []*types.SignalSnapshot{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&snapshots).Error; err != nil {
		return nil, err
	}
	return snapshots, nil
}
