package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ninesuite/ninesuite-backend/internal/logger"
	apperrors "github.com/ninesuite/ninesuite-backend/internal/pkg/errors"
	"github.com/ninesuite/ninesuite-backend/internal/rating"
	"github.com/ninesuite/ninesuite-backend/internal/repos"
	"github.com/ninesuite/ninesuite-backend/internal/types"
)

type ArchiveInput struct {
	AssessmentID              uuid.UUID
	CompanyID                 uuid.UUID
	Performance               *rating.AxisRating
	Potential                 *rating.AxisRating
	IsOverridePerformance     bool
	IsOverridePotential       bool
	OverrideReasonPerformance string
	OverrideReasonPotential   string
}

// EvidenceArchiveService replaces the persisted evidence snapshot for an
// assessment. Delete and insert run in one transaction so a failure can never
// leave an assessment stripped of rows it previously had.
type EvidenceArchiveService interface {
	// Archive returns the number of rows written. Zero is valid and means
	// neither axis had evidence.
	Archive(ctx context.Context, in ArchiveInput) (int, error)
}

type evidenceArchiveService struct {
	db       *gorm.DB
	log      *logger.Logger
	evidence repos.AssessmentEvidenceRepo
}

func NewEvidenceArchiveService(db *gorm.DB, baseLog *logger.Logger, evidence repos.AssessmentEvidenceRepo) EvidenceArchiveService {
	serviceLog := baseLog.With("service", "EvidenceArchiveService")
	return &evidenceArchiveService{db: db, log: serviceLog, evidence: evidence}
}

func (s *evidenceArchiveService) Archive(ctx context.Context, in ArchiveInput) (int, error) {
	if in.AssessmentID == uuid.Nil || in.CompanyID == uuid.Nil {
		return 0, fmt.Errorf("assessment id and company id required: %w", apperrors.ErrInvalidArgument)
	}

	rows := make([]*types.AssessmentEvidence, 0)
	rows = append(rows, s.axisRows(in, in.Performance, in.IsOverridePerformance, in.OverrideReasonPerformance)...)
	rows = append(rows, s.axisRows(in, in.Potential, in.IsOverridePotential, in.OverrideReasonPotential)...)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.evidence.DeleteByAssessmentID(ctx, tx, in.AssessmentID); err != nil {
			return fmt.Errorf("delete prior evidence: %w", err)
		}
		if _, err := s.evidence.Create(ctx, tx, rows); err != nil {
			return fmt.Errorf("insert evidence: %w", err)
		}
		return nil
	})
	if err != nil {
		s.log.Error("Evidence archive failed", "error", err, "assessment_id", in.AssessmentID)
		return 0, err
	}

	s.log.Debug("Archived evidence snapshot", "assessment_id", in.AssessmentID, "rows", len(rows))
	return len(rows), nil
}

// axisRows expands one axis rating into its evidence rows. A nil rating
// produces no rows at all: absence of evidence, not zero-value rows. The axis
// confidence is denormalized onto every row.
func (s *evidenceArchiveService) axisRows(in ArchiveInput, axisRating *rating.AxisRating, overridden bool, reason string) []*types.AssessmentEvidence {
	if axisRating == nil {
		return nil
	}
	rows := make([]*types.AssessmentEvidence, 0, len(axisRating.Sources))
	for _, item := range axisRating.Sources {
		value := item.NormalizedValue
		summary := fmt.Sprintf("Auto-calculated from %s", item.Label)
		if overridden {
			summary = fmt.Sprintf("Override: %s", reason)
		}
		rows = append(rows, &types.AssessmentEvidence{
			AssessmentID:        in.AssessmentID,
			CompanyID:           in.CompanyID,
			Axis:                string(axisRating.Axis),
			SourceType:          string(item.SourceType),
			SourceValue:         &value,
			WeightApplied:       item.Weight,
			ConfidenceScore:     axisRating.Confidence,
			ContributionSummary: summary,
		})
	}
	return rows
}
