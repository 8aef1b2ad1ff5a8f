package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ninesuite/ninesuite-backend/internal/logger"
	"github.com/ninesuite/ninesuite-backend/internal/types"
)

type SourceConfigRepo interface {
	ListActive(ctx context.Context, tx *gorm.DB, companyID uuid.UUID, axis string) ([]*types.SourceConfig, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.SourceConfig, error)
	Create(ctx context.Context, tx *gorm.DB, configs []*types.SourceConfig) ([]*types.SourceConfig, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type sourceConfigRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSourceConfigRepo(db *gorm.DB, baseLog *logger.Logger) SourceConfigRepo {
	repoLog := baseLog.With("repo", "SourceConfigRepo")
	return &sourceConfigRepo{db: db, log: repoLog}
}

func (r *sourceConfigRepo) ListActive(ctx context.Context, tx *gorm.DB, companyID uuid.UUID, axis string) ([]*types.SourceConfig, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.SourceConfig
	if companyID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("company_id = ? AND axis = ? AND is_active = ?", companyID, axis, true).
		Order("priority ASC, created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *sourceConfigRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.SourceConfig, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var config types.SourceConfig
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&config).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &config, nil
}

func (r *sourceConfigRepo) Create(ctx context.Context, tx *gorm.DB, configs []*types.SourceConfig) ([]*types.SourceConfig, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(configs) == 0 {
		return []*types.SourceConfig{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&configs).Error; err != nil {
		return nil, err
	}
	return configs, nil
}

func (r *sourceConfigRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(updates) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.SourceConfig{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *sourceConfigRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.SourceConfig{}).Error
}
