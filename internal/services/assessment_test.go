package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/ninesuite/ninesuite-backend/internal/pkg/errors"
	"github.com/ninesuite/ninesuite-backend/internal/repos"
	"github.com/ninesuite/ninesuite-backend/internal/types"
)

// newAssessmentFixture wires the whole save pipeline over one sqlite
// database: evidence readers, registry defaults, calculator, archiver.
func newAssessmentFixture(t *testing.T) (AssessmentService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger(t)

	evidence := NewEvidenceService(
		db,
		log,
		repos.NewAppraisalRepo(db, log),
		repos.NewGoalRepo(db, log),
		repos.NewSignalSnapshotRepo(db, log),
		repos.NewPotentialAssessmentRepo(db, log),
	)
	registry := NewSourceRegistryService(db, log, repos.NewSourceConfigRepo(db, log), nil)
	ratings := NewRatingService(db, log, evidence, registry)
	evidenceRepo := repos.NewAssessmentEvidenceRepo(db, log)
	archiver := NewEvidenceArchiveService(db, log, evidenceRepo)
	svc := NewAssessmentService(db, log, repos.NewNineBoxAssessmentRepo(db, log), evidenceRepo, ratings, archiver)
	return svc, db
}

func seedCompletedAppraisal(t *testing.T, db *gorm.DB, companyID, employeeID uuid.UUID, score float64) {
	t.Helper()
	completed := time.Now().UTC()
	row := &types.Appraisal{
		CompanyID:    companyID,
		EmployeeID:   employeeID,
		OverallScore: score,
		Status:       types.AppraisalStatusCompleted,
		CompletedAt:  &completed,
	}
	if err := db.Create(row).Error; err != nil {
		t.Fatalf("seed appraisal: %v", err)
	}
}

func TestSaveAssessmentCreatesDraftWithEvidence(t *testing.T) {
	svc, db := newAssessmentFixture(t)
	companyID := uuid.New()
	employeeID := uuid.New()
	seedCompletedAppraisal(t, db, companyID, employeeID, 4.0)

	result, err := svc.SaveAssessment(context.Background(), SaveAssessmentInput{
		CompanyID:  companyID,
		EmployeeID: employeeID,
	})
	if err != nil {
		t.Fatalf("SaveAssessment: %v", err)
	}

	assessment := result.Assessment
	if assessment.Status != types.NineBoxStatusDraft {
		t.Errorf("status=%q, want draft", assessment.Status)
	}
	if assessment.PerformanceBand == nil || *assessment.PerformanceBand != 3 {
		t.Errorf("performance band=%v, want 3", assessment.PerformanceBand)
	}
	// Only the appraisal contributed, so coverage is its default weight.
	if assessment.PerformanceConfidence == nil || *assessment.PerformanceConfidence != 0.5 {
		t.Errorf("performance confidence=%v, want 0.5", assessment.PerformanceConfidence)
	}
	if assessment.PotentialBand != nil {
		t.Errorf("potential band=%v, want nil without potential evidence", assessment.PotentialBand)
	}
	if assessment.PotentialConfidence != nil {
		t.Errorf("potential confidence=%v, want nil", assessment.PotentialConfidence)
	}
	if result.EvidenceRows != 1 {
		t.Errorf("evidence rows=%d, want 1", result.EvidenceRows)
	}

	_, evidence, err := svc.GetAssessment(context.Background(), companyID, assessment.ID)
	if err != nil {
		t.Fatalf("GetAssessment: %v", err)
	}
	if len(evidence) != 1 {
		t.Fatalf("got %d evidence rows, want 1", len(evidence))
	}
	if evidence[0].SourceType != "appraisal_overall_score" {
		t.Errorf("source type=%q, want appraisal_overall_score", evidence[0].SourceType)
	}
}

func TestSaveAssessmentOverrideRequiresReason(t *testing.T) {
	svc, _ := newAssessmentFixture(t)

	_, err := svc.SaveAssessment(context.Background(), SaveAssessmentInput{
		CompanyID:             uuid.New(),
		EmployeeID:            uuid.New(),
		IsOverridePerformance: true,
	})
	if !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("err=%v, want ErrInvalidArgument", err)
	}
}

func TestSaveAssessmentOverrideBandWins(t *testing.T) {
	svc, db := newAssessmentFixture(t)
	companyID := uuid.New()
	employeeID := uuid.New()
	seedCompletedAppraisal(t, db, companyID, employeeID, 4.0)

	overrideBand := 1
	result, err := svc.SaveAssessment(context.Background(), SaveAssessmentInput{
		CompanyID:                 companyID,
		EmployeeID:                employeeID,
		IsOverridePerformance:     true,
		OverrideReasonPerformance: "Calibration committee adjustment",
		OverridePerformanceBand:   &overrideBand,
	})
	if err != nil {
		t.Fatalf("SaveAssessment: %v", err)
	}
	if result.Assessment.PerformanceBand == nil || *result.Assessment.PerformanceBand != 1 {
		t.Errorf("performance band=%v, want overridden 1", result.Assessment.PerformanceBand)
	}
	if !result.Assessment.IsOverridePerformance {
		t.Error("expected override flag to persist")
	}

	_, evidence, err := svc.GetAssessment(context.Background(), companyID, result.Assessment.ID)
	if err != nil {
		t.Fatalf("GetAssessment: %v", err)
	}
	if len(evidence) != 1 {
		t.Fatalf("got %d evidence rows, want 1", len(evidence))
	}
	if !strings.HasPrefix(evidence[0].ContributionSummary, "Override:") {
		t.Errorf("contribution summary=%q, want override annotation", evidence[0].ContributionSummary)
	}
}

func TestSaveAssessmentRecalculatesExisting(t *testing.T) {
	svc, db := newAssessmentFixture(t)
	companyID := uuid.New()
	employeeID := uuid.New()
	seedCompletedAppraisal(t, db, companyID, employeeID, 2.0)

	first, err := svc.SaveAssessment(context.Background(), SaveAssessmentInput{
		CompanyID:  companyID,
		EmployeeID: employeeID,
	})
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	if first.Assessment.PerformanceBand == nil || *first.Assessment.PerformanceBand != 2 {
		t.Fatalf("initial band=%v, want 2", first.Assessment.PerformanceBand)
	}

	// New evidence lands, the same record is recalculated in place.
	completed := time.Now().UTC().Add(time.Hour)
	newer := &types.Appraisal{
		CompanyID:    companyID,
		EmployeeID:   employeeID,
		OverallScore: 4.5,
		Status:       types.AppraisalStatusCompleted,
		CompletedAt:  &completed,
	}
	if err := db.Create(newer).Error; err != nil {
		t.Fatalf("seed newer appraisal: %v", err)
	}

	second, err := svc.SaveAssessment(context.Background(), SaveAssessmentInput{
		AssessmentID: &first.Assessment.ID,
		CompanyID:    companyID,
		EmployeeID:   employeeID,
		Finalize:     true,
	})
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if second.Assessment.ID != first.Assessment.ID {
		t.Fatalf("expected update in place, got new id %s", second.Assessment.ID)
	}
	if second.Assessment.PerformanceBand == nil || *second.Assessment.PerformanceBand != 3 {
		t.Errorf("recalculated band=%v, want 3", second.Assessment.PerformanceBand)
	}
	if second.Assessment.Status != types.NineBoxStatusFinalized {
		t.Errorf("status=%q, want finalized", second.Assessment.Status)
	}

	// Archive replaced, not appended.
	_, evidence, err := svc.GetAssessment(context.Background(), companyID, second.Assessment.ID)
	if err != nil {
		t.Fatalf("GetAssessment: %v", err)
	}
	if len(evidence) != 1 {
		t.Errorf("got %d evidence rows after recalculation, want 1", len(evidence))
	}
}

func TestSaveAssessmentRefusesToFinalizeEmptyRating(t *testing.T) {
	svc, _ := newAssessmentFixture(t)
	companyID := uuid.New()
	employeeID := uuid.New()

	// A draft with no evidence is fine.
	draft, err := svc.SaveAssessment(context.Background(), SaveAssessmentInput{
		CompanyID:  companyID,
		EmployeeID: employeeID,
	})
	if err != nil {
		t.Fatalf("draft save: %v", err)
	}
	if draft.Assessment.PerformanceBand != nil || draft.Assessment.PotentialBand != nil {
		t.Fatalf("draft bands=%v/%v, want nil/nil", draft.Assessment.PerformanceBand, draft.Assessment.PotentialBand)
	}

	// Finalizing the same empty rating is not.
	_, err = svc.SaveAssessment(context.Background(), SaveAssessmentInput{
		AssessmentID: &draft.Assessment.ID,
		CompanyID:    companyID,
		EmployeeID:   employeeID,
		Finalize:     true,
	})
	if !errors.Is(err, apperrors.ErrNoEvidence) {
		t.Fatalf("err=%v, want ErrNoEvidence", err)
	}

	// An override band makes the record finalizable without calculated data.
	band := 2
	finalized, err := svc.SaveAssessment(context.Background(), SaveAssessmentInput{
		AssessmentID:              &draft.Assessment.ID,
		CompanyID:                 companyID,
		EmployeeID:                employeeID,
		IsOverridePerformance:     true,
		OverrideReasonPerformance: "Manager judgement, no cycle data yet",
		OverridePerformanceBand:   &band,
		Finalize:                  true,
	})
	if err != nil {
		t.Fatalf("override finalize: %v", err)
	}
	if finalized.Assessment.Status != types.NineBoxStatusFinalized {
		t.Errorf("status=%q, want finalized", finalized.Assessment.Status)
	}
	if finalized.Assessment.PerformanceBand == nil || *finalized.Assessment.PerformanceBand != 2 {
		t.Errorf("band=%v, want overridden 2", finalized.Assessment.PerformanceBand)
	}
}

func TestSaveAssessmentUnknownIDNotFound(t *testing.T) {
	svc, db := newAssessmentFixture(t)
	companyID := uuid.New()
	employeeID := uuid.New()
	seedCompletedAppraisal(t, db, companyID, employeeID, 3.0)

	missing := uuid.New()
	_, err := svc.SaveAssessment(context.Background(), SaveAssessmentInput{
		AssessmentID: &missing,
		CompanyID:    companyID,
		EmployeeID:   employeeID,
	})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
}

func TestGetAssessmentWrongTenant(t *testing.T) {
	svc, db := newAssessmentFixture(t)
	companyID := uuid.New()
	employeeID := uuid.New()
	seedCompletedAppraisal(t, db, companyID, employeeID, 3.0)

	result, err := svc.SaveAssessment(context.Background(), SaveAssessmentInput{
		CompanyID:  companyID,
		EmployeeID: employeeID,
	})
	if err != nil {
		t.Fatalf("SaveAssessment: %v", err)
	}

	if _, _, err := svc.GetAssessment(context.Background(), uuid.New(), result.Assessment.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound for foreign tenant", err)
	}
}

func TestListByEmployeeReturnsAllForEmployee(t *testing.T) {
	svc, db := newAssessmentFixture(t)
	companyID := uuid.New()
	employeeID := uuid.New()
	seedCompletedAppraisal(t, db, companyID, employeeID, 3.5)

	first, err := svc.SaveAssessment(context.Background(), SaveAssessmentInput{CompanyID: companyID, EmployeeID: employeeID})
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	second, err := svc.SaveAssessment(context.Background(), SaveAssessmentInput{CompanyID: companyID, EmployeeID: employeeID})
	if err != nil {
		t.Fatalf("second save: %v", err)
	}

	assessments, err := svc.ListByEmployee(context.Background(), companyID, employeeID)
	if err != nil {
		t.Fatalf("ListByEmployee: %v", err)
	}
	if len(assessments) != 2 {
		t.Fatalf("got %d assessments, want 2", len(assessments))
	}
	seen := map[uuid.UUID]bool{}
	for _, a := range assessments {
		seen[a.ID] = true
	}
	if !seen[first.Assessment.ID] || !seen[second.Assessment.ID] {
		t.Errorf("listing missing saved assessments: %v", seen)
	}
}
