package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ninesuite/ninesuite-backend/internal/logger"
	"github.com/ninesuite/ninesuite-backend/internal/rating"
	"github.com/ninesuite/ninesuite-backend/internal/repos"
)

// EvidenceService is the read-only adapter layer over the evidence producers.
// Every reader distinguishes "no data" (empty result, the normal skip path)
// from a genuine query failure (error).
type EvidenceService interface {
	LatestAppraisal(ctx context.Context, companyID, employeeID uuid.UUID) (*rating.AppraisalEvidence, error)
	ActiveGoals(ctx context.Context, companyID, employeeID uuid.UUID) ([]rating.GoalEvidence, error)
	CurrentSignals(ctx context.Context, companyID, employeeID uuid.UUID) ([]rating.SignalEvidence, error)
	CurrentPotential(ctx context.Context, companyID, employeeID uuid.UUID) (*rating.PotentialEvidence, error)
}

type evidenceService struct {
	db         *gorm.DB
	log        *logger.Logger
	appraisals repos.AppraisalRepo
	goals      repos.GoalRepo
	signals    repos.SignalSnapshotRepo
	potentials repos.PotentialAssessmentRepo
}

func NewEvidenceService(
	db *gorm.DB,
	baseLog *logger.Logger,
	appraisals repos.AppraisalRepo,
	goals repos.GoalRepo,
	signals repos.SignalSnapshotRepo,
	potentials repos.PotentialAssessmentRepo,
) EvidenceService {
	serviceLog := baseLog.With("service", "EvidenceService")
	return &evidenceService{
		db:         db,
		log:        serviceLog,
		appraisals: appraisals,
		goals:      goals,
		signals:    signals,
		potentials: potentials,
	}
}

func (s *evidenceService) LatestAppraisal(ctx context.Context, companyID, employeeID uuid.UUID) (*rating.AppraisalEvidence, error) {
	appraisal, err := s.appraisals.GetLatestCompleted(ctx, nil, companyID, employeeID)
	if err != nil {
		return nil, fmt.Errorf("fetch appraisal evidence: %w", err)
	}
	if appraisal == nil {
		return nil, nil
	}
	return &rating.AppraisalEvidence{OverallScore: appraisal.OverallScore}, nil
}

func (s *evidenceService) ActiveGoals(ctx context.Context, companyID, employeeID uuid.UUID) ([]rating.GoalEvidence, error) {
	goals, err := s.goals.GetActiveByEmployee(ctx, nil, companyID, employeeID)
	if err != nil {
		return nil, fmt.Errorf("fetch goal evidence: %w", err)
	}
	out := make([]rating.GoalEvidence, 0, len(goals))
	for _, g := range goals {
		out = append(out, rating.GoalEvidence{ProgressPercentage: g.ProgressPercentage})
	}
	return out, nil
}

func (s *evidenceService) CurrentSignals(ctx context.Context, companyID, employeeID uuid.UUID) ([]rating.SignalEvidence, error) {
	snapshots, err := s.signals.GetCurrentByEmployee(ctx, nil, companyID, employeeID)
	if err != nil {
		return nil, fmt.Errorf("fetch signal evidence: %w", err)
	}
	out := make([]rating.SignalEvidence, 0, len(snapshots))
	for _, snap := range snapshots {
		out = append(out, rating.SignalEvidence{
			Name:            snap.SignalName,
			Category:        snap.Category,
			NormalizedScore: snap.NormalizedScore,
		})
	}
	return out, nil
}

func (s *evidenceService) CurrentPotential(ctx context.Context, companyID, employeeID uuid.UUID) (*rating.PotentialEvidence, error) {
	assessment, err := s.potentials.GetCurrentCompleted(ctx, nil, companyID, employeeID)
	if err != nil {
		return nil, fmt.Errorf("fetch potential evidence: %w", err)
	}
	if assessment == nil {
		return nil, nil
	}
	return &rating.PotentialEvidence{CalculatedRating: assessment.CalculatedRating}, nil
}
