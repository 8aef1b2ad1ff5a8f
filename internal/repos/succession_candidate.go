package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ninesuite/ninesuite-backend/internal/logger"
	"github.com/ninesuite/ninesuite-backend/internal/types"
)

type SuccessionCandidateRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.SuccessionCandidate, error)
	Create(ctx context.Context, tx *gorm.DB, candidates []*types.SuccessionCandidate) ([]*types.SuccessionCandidate, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
}

type successionCandidateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSuccessionCandidateRepo(db *gorm.DB, baseLog *logger.Logger) SuccessionCandidateRepo {
	repoLog := baseLog.With("repo", "SuccessionCandidateRepo")
	return &successionCandidateRepo{db: db, log: repoLog}
}

func (r *successionCandidateRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.SuccessionCandidate, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var candidate types.SuccessionCandidate
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&candidate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &candidate, nil
}

func (r *successionCandidateRepo) Create(ctx context.Context, tx *gorm.DB, candidates []*types.SuccessionCandidate) ([]*types.SuccessionCandidate, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(candidates) == 0 {
		return []*types.SuccessionCandidate{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&candidates).Error; err != nil {
		return nil, err
	}
	return candidates, nil
}

func (r *successionCandidateRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(updates) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.SuccessionCandidate{}).
		Where("id = ?", id).
		Updates(updates).Error
}
