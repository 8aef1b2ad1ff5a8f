package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ninesuite/ninesuite-backend/internal/clients/redis"
	"github.com/ninesuite/ninesuite-backend/internal/logger"
	apperrors "github.com/ninesuite/ninesuite-backend/internal/pkg/errors"
	"github.com/ninesuite/ninesuite-backend/internal/rating"
	"github.com/ninesuite/ninesuite-backend/internal/repos"
	"github.com/ninesuite/ninesuite-backend/internal/types"
)

type UpsertSourceInput struct {
	ID         *uuid.UUID     `json:"id,omitempty"`
	CompanyID  uuid.UUID      `json:"company_id"`
	Axis       string         `json:"axis"`
	SourceType string         `json:"source_type"`
	Weight     *float64       `json:"weight,omitempty"`
	IsActive   *bool          `json:"is_active,omitempty"`
	Priority   *int           `json:"priority,omitempty"`
	Config     datatypes.JSON `json:"config,omitempty"`
}

// SourceRegistryService manages the tenant-configurable evidence mix. Reads
// go through the redis cache when one is wired; every successful mutation
// invalidates the tenant's cached entries for both axes.
type SourceRegistryService interface {
	ListActiveSources(ctx context.Context, companyID uuid.UUID, axis rating.Axis) ([]*types.SourceConfig, error)
	UpsertSource(ctx context.Context, in UpsertSourceInput) (*types.SourceConfig, error)
	DeleteSource(ctx context.Context, companyID, id uuid.UUID) error
	// ResolveWeights maps a tenant's active sources for an axis into the
	// weight map consumed by the calculator, falling back to the built-in
	// defaults when the tenant has no explicit configuration.
	ResolveWeights(ctx context.Context, companyID uuid.UUID, axis rating.Axis) (rating.Weights, error)
}

type sourceRegistryService struct {
	db    *gorm.DB
	log   *logger.Logger
	repo  repos.SourceConfigRepo
	cache redis.RegistryCache
}

func NewSourceRegistryService(db *gorm.DB, baseLog *logger.Logger, repo repos.SourceConfigRepo, cache redis.RegistryCache) SourceRegistryService {
	serviceLog := baseLog.With("service", "SourceRegistryService")
	return &sourceRegistryService{db: db, log: serviceLog, repo: repo, cache: cache}
}

func (s *sourceRegistryService) ListActiveSources(ctx context.Context, companyID uuid.UUID, axis rating.Axis) ([]*types.SourceConfig, error) {
	if companyID == uuid.Nil {
		return nil, fmt.Errorf("company id required: %w", apperrors.ErrInvalidArgument)
	}
	if !axis.Valid() {
		return nil, fmt.Errorf("invalid axis %q: %w", axis, apperrors.ErrInvalidArgument)
	}
	if s.cache != nil {
		if configs, ok := s.cache.GetSourceConfigs(ctx, companyID.String(), string(axis)); ok {
			return configs, nil
		}
	}
	configs, err := s.repo.ListActive(ctx, nil, companyID, string(axis))
	if err != nil {
		return nil, fmt.Errorf("list active sources: %w", err)
	}
	if s.cache != nil {
		s.cache.SetSourceConfigs(ctx, companyID.String(), string(axis), configs)
	}
	return configs, nil
}

func (s *sourceRegistryService) UpsertSource(ctx context.Context, in UpsertSourceInput) (*types.SourceConfig, error) {
	if in.CompanyID == uuid.Nil {
		return nil, fmt.Errorf("company id required: %w", apperrors.ErrInvalidArgument)
	}
	if in.ID == nil {
		return s.createSource(ctx, in)
	}
	return s.updateSource(ctx, in)
}

func (s *sourceRegistryService) createSource(ctx context.Context, in UpsertSourceInput) (*types.SourceConfig, error) {
	if !rating.Axis(in.Axis).Valid() {
		return nil, fmt.Errorf("invalid axis %q: %w", in.Axis, apperrors.ErrInvalidArgument)
	}
	if in.SourceType == "" {
		return nil, fmt.Errorf("source type required: %w", apperrors.ErrInvalidArgument)
	}
	config := &types.SourceConfig{
		CompanyID:  in.CompanyID,
		Axis:       in.Axis,
		SourceType: in.SourceType,
		Weight:     1.0,
		IsActive:   true,
		Priority:   0,
		Config:     in.Config,
	}
	if in.Weight != nil {
		config.Weight = *in.Weight
	}
	if in.IsActive != nil {
		config.IsActive = *in.IsActive
	}
	if in.Priority != nil {
		config.Priority = *in.Priority
	}
	created, err := s.repo.Create(ctx, nil, []*types.SourceConfig{config})
	if err != nil {
		return nil, fmt.Errorf("create source config: %w", err)
	}
	s.invalidate(ctx, in.CompanyID)
	return created[0], nil
}

func (s *sourceRegistryService) updateSource(ctx context.Context, in UpsertSourceInput) (*types.SourceConfig, error) {
	existing, err := s.repo.GetByID(ctx, nil, *in.ID)
	if err != nil {
		return nil, fmt.Errorf("load source config: %w", err)
	}
	if existing == nil || existing.CompanyID != in.CompanyID {
		return nil, fmt.Errorf("source config %s: %w", *in.ID, apperrors.ErrNotFound)
	}
	updates := map[string]interface{}{}
	if in.Axis != "" {
		if !rating.Axis(in.Axis).Valid() {
			return nil, fmt.Errorf("invalid axis %q: %w", in.Axis, apperrors.ErrInvalidArgument)
		}
		updates["axis"] = in.Axis
	}
	if in.SourceType != "" {
		updates["source_type"] = in.SourceType
	}
	if in.Weight != nil {
		updates["weight"] = *in.Weight
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}
	if in.Priority != nil {
		updates["priority"] = *in.Priority
	}
	if in.Config != nil {
		updates["config"] = in.Config
	}
	if err := s.repo.UpdateFields(ctx, nil, *in.ID, updates); err != nil {
		return nil, fmt.Errorf("update source config: %w", err)
	}
	s.invalidate(ctx, in.CompanyID)
	updated, err := s.repo.GetByID(ctx, nil, *in.ID)
	if err != nil {
		return nil, fmt.Errorf("reload source config: %w", err)
	}
	return updated, nil
}

func (s *sourceRegistryService) DeleteSource(ctx context.Context, companyID, id uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, nil, id)
	if err != nil {
		return fmt.Errorf("load source config: %w", err)
	}
	if existing == nil || existing.CompanyID != companyID {
		return fmt.Errorf("source config %s: %w", id, apperrors.ErrNotFound)
	}
	// Hard delete. Historical evidence rows keep their own denormalized
	// source_type string and are unaffected.
	if err := s.repo.Delete(ctx, nil, id); err != nil {
		return fmt.Errorf("delete source config: %w", err)
	}
	s.invalidate(ctx, companyID)
	return nil
}

func (s *sourceRegistryService) ResolveWeights(ctx context.Context, companyID uuid.UUID, axis rating.Axis) (rating.Weights, error) {
	configs, err := s.ListActiveSources(ctx, companyID, axis)
	if err != nil {
		return nil, err
	}
	if len(configs) == 0 {
		return rating.DefaultWeights(axis), nil
	}
	// Duplicate source types are not rejected at the registry layer; the
	// list is priority-ordered so last write wins deterministically.
	weights := rating.Weights{}
	for _, config := range configs {
		weights[rating.SourceType(config.SourceType)] = config.Weight
	}
	return weights, nil
}

func (s *sourceRegistryService) invalidate(ctx context.Context, companyID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateCompany(ctx, companyID.String()); err != nil {
		s.log.Warn("Registry cache invalidation failed", "error", err, "company_id", companyID)
	}
}
