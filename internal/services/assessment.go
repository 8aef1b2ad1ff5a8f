package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ninesuite/ninesuite-backend/internal/logger"
	apperrors "github.com/ninesuite/ninesuite-backend/internal/pkg/errors"
	"github.com/ninesuite/ninesuite-backend/internal/rating"
	"github.com/ninesuite/ninesuite-backend/internal/repos"
	"github.com/ninesuite/ninesuite-backend/internal/types"
)

type SaveAssessmentInput struct {
	AssessmentID              *uuid.UUID
	CompanyID                 uuid.UUID
	EmployeeID                uuid.UUID
	IsOverridePerformance     bool
	IsOverridePotential       bool
	OverrideReasonPerformance string
	OverrideReasonPotential   string
	OverridePerformanceBand   *int
	OverridePotentialBand     *int
	Finalize                  bool
}

type SaveAssessmentResult struct {
	Assessment   *types.NineBoxAssessment `json:"assessment"`
	Rating       *RatingResult            `json:"rating"`
	EvidenceRows int                      `json:"evidence_rows"`
}

// AssessmentService drives the full save flow: calculate both axes, persist
// the 9-box record, then replace its evidence snapshot. Archiving only
// happens after a fully successful calculation, so a reader failure leaves
// any previously archived evidence untouched.
type AssessmentService interface {
	SaveAssessment(ctx context.Context, in SaveAssessmentInput) (*SaveAssessmentResult, error)
	GetAssessment(ctx context.Context, companyID, id uuid.UUID) (*types.NineBoxAssessment, []*types.AssessmentEvidence, error)
	ListByEmployee(ctx context.Context, companyID, employeeID uuid.UUID) ([]*types.NineBoxAssessment, error)
}

type assessmentService struct {
	db          *gorm.DB
	log         *logger.Logger
	assessments repos.NineBoxAssessmentRepo
	evidence    repos.AssessmentEvidenceRepo
	ratings     RatingService
	archiver    EvidenceArchiveService
}

func NewAssessmentService(
	db *gorm.DB,
	baseLog *logger.Logger,
	assessments repos.NineBoxAssessmentRepo,
	evidence repos.AssessmentEvidenceRepo,
	ratings RatingService,
	archiver EvidenceArchiveService,
) AssessmentService {
	serviceLog := baseLog.With("service", "AssessmentService")
	return &assessmentService{
		db:          db,
		log:         serviceLog,
		assessments: assessments,
		evidence:    evidence,
		ratings:     ratings,
		archiver:    archiver,
	}
}

func (s *assessmentService) SaveAssessment(ctx context.Context, in SaveAssessmentInput) (*SaveAssessmentResult, error) {
	if in.CompanyID == uuid.Nil || in.EmployeeID == uuid.Nil {
		return nil, fmt.Errorf("company id and employee id required: %w", apperrors.ErrInvalidArgument)
	}
	if in.IsOverridePerformance && in.OverrideReasonPerformance == "" {
		return nil, fmt.Errorf("performance override requires a reason: %w", apperrors.ErrInvalidArgument)
	}
	if in.IsOverridePotential && in.OverrideReasonPotential == "" {
		return nil, fmt.Errorf("potential override requires a reason: %w", apperrors.ErrInvalidArgument)
	}

	result, err := s.ratings.Calculate(ctx, in.CompanyID, in.EmployeeID)
	if err != nil {
		return nil, err
	}
	// Drafts may hold an empty rating, a finalized record may not.
	if in.Finalize && result.Performance == nil && result.Potential == nil &&
		in.OverridePerformanceBand == nil && in.OverridePotentialBand == nil {
		return nil, fmt.Errorf("finalize assessment for employee %s: %w", in.EmployeeID, apperrors.ErrNoEvidence)
	}

	perfBand, perfConfidence := bandAndConfidence(result.Performance)
	potBand, potConfidence := bandAndConfidence(result.Potential)
	if in.IsOverridePerformance && in.OverridePerformanceBand != nil {
		perfBand = in.OverridePerformanceBand
	}
	if in.IsOverridePotential && in.OverridePotentialBand != nil {
		potBand = in.OverridePotentialBand
	}

	status := types.NineBoxStatusDraft
	if in.Finalize {
		status = types.NineBoxStatusFinalized
	}

	var assessment *types.NineBoxAssessment
	if in.AssessmentID == nil {
		assessment = &types.NineBoxAssessment{
			CompanyID:               in.CompanyID,
			EmployeeID:              in.EmployeeID,
			PerformanceBand:         perfBand,
			PotentialBand:           potBand,
			PerformanceConfidence:   perfConfidence,
			PotentialConfidence:     potConfidence,
			IsOverridePerformance:   in.IsOverridePerformance,
			IsOverridePotential:     in.IsOverridePotential,
			OverrideReasonPerf:      in.OverrideReasonPerformance,
			OverrideReasonPotential: in.OverrideReasonPotential,
			Status:                  status,
			CalculatedAt:            time.Now().UTC(),
		}
		created, err := s.assessments.Create(ctx, nil, []*types.NineBoxAssessment{assessment})
		if err != nil {
			return nil, fmt.Errorf("create assessment: %w", err)
		}
		assessment = created[0]
	} else {
		existing, err := s.assessments.GetByID(ctx, nil, *in.AssessmentID)
		if err != nil {
			return nil, fmt.Errorf("load assessment: %w", err)
		}
		if existing == nil || existing.CompanyID != in.CompanyID {
			return nil, fmt.Errorf("assessment %s: %w", *in.AssessmentID, apperrors.ErrNotFound)
		}
		updates := map[string]interface{}{
			"performance_band":            perfBand,
			"potential_band":              potBand,
			"performance_confidence":      perfConfidence,
			"potential_confidence":        potConfidence,
			"is_override_performance":     in.IsOverridePerformance,
			"is_override_potential":       in.IsOverridePotential,
			"override_reason_performance": in.OverrideReasonPerformance,
			"override_reason_potential":   in.OverrideReasonPotential,
			"status":                      status,
			"calculated_at":               time.Now().UTC(),
		}
		if err := s.assessments.UpdateFields(ctx, nil, *in.AssessmentID, updates); err != nil {
			return nil, fmt.Errorf("update assessment: %w", err)
		}
		assessment, err = s.assessments.GetByID(ctx, nil, *in.AssessmentID)
		if err != nil {
			return nil, fmt.Errorf("reload assessment: %w", err)
		}
	}

	rows, err := s.archiver.Archive(ctx, ArchiveInput{
		AssessmentID:              assessment.ID,
		CompanyID:                 in.CompanyID,
		Performance:               result.Performance,
		Potential:                 result.Potential,
		IsOverridePerformance:     in.IsOverridePerformance,
		IsOverridePotential:       in.IsOverridePotential,
		OverrideReasonPerformance: in.OverrideReasonPerformance,
		OverrideReasonPotential:   in.OverrideReasonPotential,
	})
	if err != nil {
		return nil, err
	}

	return &SaveAssessmentResult{Assessment: assessment, Rating: result, EvidenceRows: rows}, nil
}

func (s *assessmentService) GetAssessment(ctx context.Context, companyID, id uuid.UUID) (*types.NineBoxAssessment, []*types.AssessmentEvidence, error) {
	assessment, err := s.assessments.GetByID(ctx, nil, id)
	if err != nil {
		return nil, nil, fmt.Errorf("load assessment: %w", err)
	}
	if assessment == nil || assessment.CompanyID != companyID {
		return nil, nil, fmt.Errorf("assessment %s: %w", id, apperrors.ErrNotFound)
	}
	evidence, err := s.evidence.GetByAssessmentID(ctx, nil, id)
	if err != nil {
		return nil, nil, fmt.Errorf("load assessment evidence: %w", err)
	}
	return assessment, evidence, nil
}

func (s *assessmentService) ListByEmployee(ctx context.Context, companyID, employeeID uuid.UUID) ([]*types.NineBoxAssessment, error) {
	return s.assessments.ListByEmployee(ctx, nil, companyID, employeeID)
}

func bandAndConfidence(r *rating.AxisRating) (*int, *float64) {
	if r == nil {
		return nil, nil
	}
	band := r.Band
	confidence := r.Confidence
	return &band, &confidence
}
