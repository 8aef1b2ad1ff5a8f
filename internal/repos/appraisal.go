package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ninesuite/ninesuite-backend/internal/logger"
	"github.com/ninesuite/ninesuite-backend/internal/types"
)

type AppraisalRepo interface {
	// GetLatestCompleted returns the most recent completed appraisal for an
	// employee, or nil when the employee has none.
	GetLatestCompleted(ctx context.Context, tx *gorm.DB, companyID, employeeID uuid.UUID) (*types.Appraisal, error)
	Create(ctx context.Context, tx *gorm.DB, appraisals []*types.Appraisal) ([]*types.Appraisal, error)
}

type appraisalRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAppraisalRepo(db *gorm.DB, baseLog *logger.Logger) AppraisalRepo {
	repoLog := baseLog.With("repo", "AppraisalRepo")
	return &appraisalRepo{db: db, log: repoLog}
}

func (r *appraisalRepo) GetLatestCompleted(ctx context.Context, tx *gorm.DB, companyID, employeeID uuid.UUID) (*types.Appraisal, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if employeeID == uuid.Nil {
		return nil, nil
	}
	var appraisal types.Appraisal
	err := transaction.WithContext(ctx).
		Where("company_id = ? AND employee_id = ? AND status = ?", companyID, employeeID, types.AppraisalStatusCompleted).
		Order("completed_at DESC").
		Limit(1).
		Find(&appraisal).Error
	if err != nil {
		return nil, err
	}
	if appraisal.ID == uuid.Nil {
		return nil, nil
	}
	return &appraisal, nil
}

func (r *appraisalRepo) Create(ctx context.Context, tx *gorm.DB, appraisals []*types.Appraisal) ([]*types.Appraisal, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(appraisals) == 0 {
		return []*types.Appraisal{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&appraisals).Error; err != nil {
		return nil, err
	}
	return appraisals, nil
}
