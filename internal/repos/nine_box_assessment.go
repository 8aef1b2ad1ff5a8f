package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ninesuite/ninesuite-backend/internal/logger"
	"github.com/ninesuite/ninesuite-backend/internal/types"
)

type NineBoxAssessmentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, assessments []*types.NineBoxAssessment) ([]*types.NineBoxAssessment, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.NineBoxAssessment, error)
	ListByEmployee(ctx context.Context, tx *gorm.DB, companyID, employeeID uuid.UUID) ([]*types.NineBoxAssessment, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
}

type nineBoxAssessmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNineBoxAssessmentRepo(db *gorm.DB, baseLog *logger.Logger) NineBoxAssessmentRepo {
	repoLog := baseLog.With("repo", "NineBoxAssessmentRepo")
	return &nineBoxAssessmentRepo{db: db, log: repoLog}
}

func (r *nineBoxAssessmentRepo) Create(ctx context.Context, tx *gorm.DB, assessments []*types.NineBoxAssessment) ([]*types.NineBoxAssessment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(assessments) == 0 {
		return []*types.NineBoxAssessment{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&assessments).Error; err != nil {
		return nil, err
	}
	return assessments, nil
}

func (r *nineBoxAssessmentRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.NineBoxAssessment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var assessment types.NineBoxAssessment
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&assessment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (r *nineBoxAssessmentRepo) ListByEmployee(ctx context.Context, tx *gorm.DB, companyID, employeeID uuid.UUID) ([]*types.NineBoxAssessment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.NineBoxAssessment
	if employeeID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("company_id = ? AND employee_id = ?", companyID, employeeID).
		Order("calculated_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *nineBoxAssessmentRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(updates) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.NineBoxAssessment{}).
		Where("id = ?", id).
		Updates(updates).Error
}
