package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/ninesuite/ninesuite-backend/internal/logger"
	apperrors "github.com/ninesuite/ninesuite-backend/internal/pkg/errors"
	"github.com/ninesuite/ninesuite-backend/internal/rating"
)

// RatingResult is one full calculation for an employee. A nil axis means that
// axis had no evidence, not a low score.
type RatingResult struct {
	EmployeeID  uuid.UUID          `json:"employee_id"`
	Performance *rating.AxisRating `json:"performance"`
	Potential   *rating.AxisRating `json:"potential"`
}

// RatingService runs a full two-axis calculation for one employee. The four
// evidence fetches fan out concurrently and the calculation joins on all of
// them: a single reader failure aborts the whole calculation with no partial
// result.
type RatingService interface {
	Calculate(ctx context.Context, companyID, employeeID uuid.UUID) (*RatingResult, error)
}

type ratingService struct {
	db       *gorm.DB
	log      *logger.Logger
	evidence EvidenceService
	registry SourceRegistryService
}

func NewRatingService(db *gorm.DB, baseLog *logger.Logger, evidence EvidenceService, registry SourceRegistryService) RatingService {
	serviceLog := baseLog.With("service", "RatingService")
	return &ratingService{db: db, log: serviceLog, evidence: evidence, registry: registry}
}

func (s *ratingService) Calculate(ctx context.Context, companyID, employeeID uuid.UUID) (*RatingResult, error) {
	if companyID == uuid.Nil || employeeID == uuid.Nil {
		return nil, fmt.Errorf("company id and employee id required: %w", apperrors.ErrInvalidArgument)
	}

	var bundle rating.Bundle

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		appraisal, err := s.evidence.LatestAppraisal(gctx, companyID, employeeID)
		if err != nil {
			return err
		}
		bundle.Appraisal = appraisal
		return nil
	})
	g.Go(func() error {
		goals, err := s.evidence.ActiveGoals(gctx, companyID, employeeID)
		if err != nil {
			return err
		}
		bundle.Goals = goals
		return nil
	})
	g.Go(func() error {
		signals, err := s.evidence.CurrentSignals(gctx, companyID, employeeID)
		if err != nil {
			return err
		}
		bundle.Signals = signals
		return nil
	})
	g.Go(func() error {
		potential, err := s.evidence.CurrentPotential(gctx, companyID, employeeID)
		if err != nil {
			return err
		}
		bundle.Potential = potential
		return nil
	})
	if err := g.Wait(); err != nil {
		s.log.Error("Evidence fetch failed", "error", err, "company_id", companyID, "employee_id", employeeID)
		return nil, fmt.Errorf("evidence fetch: %w", err)
	}

	perfWeights, err := s.registry.ResolveWeights(ctx, companyID, rating.AxisPerformance)
	if err != nil {
		return nil, fmt.Errorf("resolve performance weights: %w", err)
	}
	potWeights, err := s.registry.ResolveWeights(ctx, companyID, rating.AxisPotential)
	if err != nil {
		return nil, fmt.Errorf("resolve potential weights: %w", err)
	}

	result := &RatingResult{
		EmployeeID:  employeeID,
		Performance: rating.CalculateAxis(rating.AxisPerformance, bundle, perfWeights),
		Potential:   rating.CalculateAxis(rating.AxisPotential, bundle, potWeights),
	}
	s.log.Debug("Calculated rating",
		"company_id", companyID,
		"employee_id", employeeID,
		"has_performance", result.Performance != nil,
		"has_potential", result.Potential != nil,
	)
	return result, nil
}
