package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ninesuite/ninesuite-backend/internal/logger"
	"github.com/ninesuite/ninesuite-backend/internal/types"
)

type GoalRepo interface {
	GetActiveByEmployee(ctx context.Context, tx *gorm.DB, companyID, employeeID uuid.UUID) ([]*types.Goal, error)
	Create(ctx context.Context, tx *gorm.DB, goals []*types.Goal) ([]*types.Goal, error)
}

type goalRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGoalRepo(db *gorm.DB, baseLog *logger.Logger) GoalRepo {
	repoLog := baseLog.With("repo", "GoalRepo")
	return &goalRepo{db: db, log: repoLog}
}

func (r *goalRepo) GetActiveByEmployee(ctx context.Context, tx *gorm.DB, companyID, employeeID uuid.UUID) ([]*types.Goal, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Goal
	if employeeID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("company_id = ? AND employee_id = ? AND status = ?", companyID, employeeID, types.GoalStatusActive).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *goalRepo) Create(ctx context.Context, tx *gorm.DB, goals []*types.Goal) ([]*types.Goal, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(goals) == 0 {
		return []*types.Goal{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}
