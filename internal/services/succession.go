package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ninesuite/ninesuite-backend/internal/logger"
	apperrors "github.com/ninesuite/ninesuite-backend/internal/pkg/errors"
	"github.com/ninesuite/ninesuite-backend/internal/rating"
	"github.com/ninesuite/ninesuite-backend/internal/repos"
	"github.com/ninesuite/ninesuite-backend/internal/types"
)

// Leadership indicator categories for succession evidence. Deliberately
// narrower than the calculator's leadership source: strategic_thinking counts
// toward the potential axis but not toward the succession indicator summary.
var successionLeadershipCategories = map[string]bool{
	types.SignalCategoryLeadership:       true,
	types.SignalCategoryPeopleLeadership: true,
	types.SignalCategoryInfluence:        true,
}

type LinkEvidenceInput struct {
	CandidateID           uuid.UUID
	CompanyID             uuid.UUID
	SourceAssessmentID    *uuid.UUID
	Signals               []rating.SignalEvidence
	ReadinessContribution float64
}

type signalSummaryEntry struct {
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	Category string  `json:"category"`
}

type signalSummary struct {
	Count   int                  `json:"count"`
	Signals []signalSummaryEntry `json:"signals"`
}

// SuccessionService derives a leadership-indicator summary from signal
// evidence and attaches it to a succession candidate. Every link inserts a
// fresh row; links are independent audit events, never replaced.
type SuccessionService interface {
	LinkEvidence(ctx context.Context, in LinkEvidenceInput) (*types.SuccessionEvidence, error)
	ListEvidence(ctx context.Context, companyID, candidateID uuid.UUID) ([]*types.SuccessionEvidence, error)
}

type successionService struct {
	db         *gorm.DB
	log        *logger.Logger
	candidates repos.SuccessionCandidateRepo
	evidence   repos.SuccessionEvidenceRepo
}

func NewSuccessionService(db *gorm.DB, baseLog *logger.Logger, candidates repos.SuccessionCandidateRepo, evidence repos.SuccessionEvidenceRepo) SuccessionService {
	serviceLog := baseLog.With("service", "SuccessionService")
	return &successionService{db: db, log: serviceLog, candidates: candidates, evidence: evidence}
}

func (s *successionService) LinkEvidence(ctx context.Context, in LinkEvidenceInput) (*types.SuccessionEvidence, error) {
	if in.CandidateID == uuid.Nil || in.CompanyID == uuid.Nil {
		return nil, fmt.Errorf("candidate id and company id required: %w", apperrors.ErrInvalidArgument)
	}
	candidate, err := s.candidates.GetByID(ctx, nil, in.CandidateID)
	if err != nil {
		return nil, fmt.Errorf("load succession candidate: %w", err)
	}
	if candidate == nil || candidate.CompanyID != in.CompanyID {
		return nil, fmt.Errorf("succession candidate %s: %w", in.CandidateID, apperrors.ErrNotFound)
	}

	summary := signalSummary{Count: len(in.Signals), Signals: make([]signalSummaryEntry, 0, len(in.Signals))}
	var leadershipCount int
	var leadershipTotal float64
	for _, sig := range in.Signals {
		summary.Signals = append(summary.Signals, signalSummaryEntry{
			Name:     sig.Name,
			Score:    sig.NormalizedScore,
			Category: sig.Category,
		})
		if successionLeadershipCategories[sig.Category] {
			leadershipCount++
			leadershipTotal += sig.NormalizedScore
		}
	}
	// No leadership signals means no average, not a zero average.
	var avgLeadership *float64
	if leadershipCount > 0 {
		avg := leadershipTotal / float64(leadershipCount)
		avgLeadership = &avg
	}

	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return nil, fmt.Errorf("marshal signal summary: %w", err)
	}

	row := &types.SuccessionEvidence{
		CandidateID:           in.CandidateID,
		CompanyID:             in.CompanyID,
		EvidenceType:          types.EvidenceTypeNineBox,
		SourceAssessmentID:    in.SourceAssessmentID,
		SignalSummary:         datatypes.JSON(summaryJSON),
		LeadershipCount:       leadershipCount,
		AvgLeadershipScore:    avgLeadership,
		ReadinessContribution: in.ReadinessContribution,
	}
	created, err := s.evidence.Create(ctx, nil, []*types.SuccessionEvidence{row})
	if err != nil {
		return nil, fmt.Errorf("insert succession evidence: %w", err)
	}
	s.log.Debug("Linked succession evidence",
		"candidate_id", in.CandidateID,
		"leadership_count", leadershipCount,
		"readiness_contribution", in.ReadinessContribution,
	)
	return created[0], nil
}

func (s *successionService) ListEvidence(ctx context.Context, companyID, candidateID uuid.UUID) ([]*types.SuccessionEvidence, error) {
	candidate, err := s.candidates.GetByID(ctx, nil, candidateID)
	if err != nil {
		return nil, fmt.Errorf("load succession candidate: %w", err)
	}
	if candidate == nil || candidate.CompanyID != companyID {
		return nil, fmt.Errorf("succession candidate %s: %w", candidateID, apperrors.ErrNotFound)
	}
	return s.evidence.ListByCandidateID(ctx, nil, candidateID)
}
