package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ninesuite/ninesuite-backend/internal/logger"
	"github.com/ninesuite/ninesuite-backend/internal/types"
)

type SuccessionEvidenceRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.SuccessionEvidence) ([]*types.SuccessionEvidence, error)
	ListByCandidateID(ctx context.Context, tx *gorm.DB, candidateID uuid.UUID) ([]*types.SuccessionEvidence, error)
}

type successionEvidenceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSuccessionEvidenceRepo(db *gorm.DB, baseLog *logger.Logger) SuccessionEvidenceRepo {
	repoLog := baseLog.With("repo", "SuccessionEvidenceRepo")
	return &successionEvidenceRepo{db: db, log: repoLog}
}

func (r *successionEvidenceRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.SuccessionEvidence) ([]*types.SuccessionEvidence, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(rows) == 0 {
		return []*types.SuccessionEvidence{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *successionEvidenceRepo) ListByCandidateID(ctx context.Context, tx *gorm.DB, candidateID uuid.UUID) ([]*types.SuccessionEvidence, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.SuccessionEvidence
	if candidateID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("candidate_id = ?", candidateID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
