package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ninesuite/ninesuite-backend/internal/logger"
	"github.com/ninesuite/ninesuite-backend/internal/types"
)

type PotentialAssessmentRepo interface {
	// GetCurrentCompleted returns the most recent completed potential
	// assessment for an employee, or nil when the employee has none.
	GetCurrentCompleted(ctx context.Context, tx *gorm.DB, companyID, employeeID uuid.UUID) (*types.PotentialAssessment, error)
	Create(ctx context.Context, tx *gorm.DB, assessments []*types.PotentialAssessment) ([]*types.PotentialAssessment, error)
}

type potentialAssessmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPotentialAssessmentRepo(db *gorm.DB, baseLog *logger.Logger) PotentialAssessmentRepo {
	repoLog := baseLog.With("repo", "PotentialAssessmentRepo")
	return &potentialAssessmentRepo{db: db, log: repoLog}
}

func (r *potentialAssessmentRepo) GetCurrentCompleted(ctx context.Context, tx *gorm.DB, companyID, employeeID uuid.UUID) (*types.PotentialAssessment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if employeeID == uuid.Nil {
		return nil, nil
	}
	var assessment types.PotentialAssessment
	err := transaction.WithContext(ctx).
		Where("company_id = ? AND employee_id = ? AND status = ?", companyID, employeeID, types.PotentialAssessmentStatusCompleted).
		Order("assessed_at DESC").
		Limit(1).
		Find(&assessment).Error
	if err != nil {
		return nil, err
	}
	if assessment.ID == uuid.Nil {
		return nil, nil
	}
	return &assessment, nil
}

func (r *potentialAssessmentRepo) Create(ctx context.Context, tx *gorm.DB, assessments []*types.PotentialAssessment) ([]*types.PotentialAssessment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(assessments) == 0 {
		return []*types.PotentialAssessment{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&assessments).Error; err != nil {
		return nil, err
	}
	return assessments, nil
}
