package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ninesuite/ninesuite-backend/internal/logger"
	"github.com/ninesuite/ninesuite-backend/internal/types"
)

type AssessmentEvidenceRepo interface {
	// DeleteByAssessmentID removes every evidence row for an assessment,
	// both axes. The archiver relies on this running in the same
	// transaction as the subsequent insert.
	DeleteByAssessmentID(ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID) error
	Create(ctx context.Context, tx *gorm.DB, rows []*types.AssessmentEvidence) ([]*types.AssessmentEvidence, error)
	GetByAssessmentID(ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID) ([]*types.AssessmentEvidence, error)
}

type assessmentEvidenceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssessmentEvidenceRepo(db *gorm.DB, baseLog *logger.Logger) AssessmentEvidenceRepo {
	repoLog := baseLog.With("repo", "AssessmentEvidenceRepo")
	return &assessmentEvidenceRepo{db: db, log: repoLog}
}

func (r *assessmentEvidenceRepo) DeleteByAssessmentID(ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if assessmentID == uuid.Nil {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("assessment_id = ?", assessmentID).
		Delete(&types.AssessmentEvidence{}).Error
}

func (r *assessmentEvidenceRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.AssessmentEvidence) ([]*types.AssessmentEvidence, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(rows) == 0 {
		return []*types.AssessmentEvidence{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *assessmentEvidenceRepo) GetByAssessmentID(ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID) ([]*types.AssessmentEvidence, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.AssessmentEvidence
	if assessmentID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("assessment_id = ?", assessmentID).
		Order("axis ASC, created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
