package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	apperrors "github.com/ninesuite/ninesuite-backend/internal/pkg/errors"
	"github.com/ninesuite/ninesuite-backend/internal/rating"
	"github.com/ninesuite/ninesuite-backend/internal/repos"
	"github.com/ninesuite/ninesuite-backend/internal/types"
)

// fakeRegistryCache records reads and invalidations so cache semantics can be
// asserted without a redis server.
type fakeRegistryCache struct {
	entries       map[string][]*types.SourceConfig
	invalidations []string
}

func newFakeRegistryCache() *fakeRegistryCache {
	return &fakeRegistryCache{entries: map[string][]*types.SourceConfig{}}
}

func (f *fakeRegistryCache) key(companyID, axis string) string { return companyID + ":" + axis }

func (f *fakeRegistryCache) GetSourceConfigs(ctx context.Context, companyID, axis string) ([]*types.SourceConfig, bool) {
	configs, ok := f.entries[f.key(companyID, axis)]
	return configs, ok
}

func (f *fakeRegistryCache) SetSourceConfigs(ctx context.Context, companyID, axis string, configs []*types.SourceConfig) {
	f.entries[f.key(companyID, axis)] = configs
}

func (f *fakeRegistryCache) InvalidateCompany(ctx context.Context, companyID string) error {
	f.invalidations = append(f.invalidations, companyID)
	delete(f.entries, f.key(companyID, "performance"))
	delete(f.entries, f.key(companyID, "potential"))
	return nil
}

func (f *fakeRegistryCache) Close() error { return nil }

func newRegistryService(t *testing.T, cache *fakeRegistryCache) (SourceRegistryService, uuid.UUID) {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger(t)
	repo := repos.NewSourceConfigRepo(db, log)
	if cache == nil {
		return NewSourceRegistryService(db, log, repo, nil), uuid.New()
	}
	return NewSourceRegistryService(db, log, repo, cache), uuid.New()
}

func TestUpsertSourceCreateDefaults(t *testing.T) {
	svc, companyID := newRegistryService(t, nil)
	ctx := context.Background()

	created, err := svc.UpsertSource(ctx, UpsertSourceInput{
		CompanyID:  companyID,
		Axis:       string(rating.AxisPerformance),
		SourceType: string(rating.SourceAppraisalOverall),
	})
	if err != nil {
		t.Fatalf("UpsertSource: %v", err)
	}
	if created.Weight != 1.0 || created.Priority != 0 || !created.IsActive {
		t.Fatalf("defaults not applied: %+v", created)
	}

	listed, err := svc.ListActiveSources(ctx, companyID, rating.AxisPerformance)
	if err != nil {
		t.Fatalf("ListActiveSources: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != created.ID {
		t.Fatalf("expected the created row, got %+v", listed)
	}
}

func TestUpsertSourceUpdateMutableFields(t *testing.T) {
	svc, companyID := newRegistryService(t, nil)
	ctx := context.Background()

	created, err := svc.UpsertSource(ctx, UpsertSourceInput{
		CompanyID:  companyID,
		Axis:       string(rating.AxisPerformance),
		SourceType: string(rating.SourceAppraisalOverall),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	weight := 0.7
	inactive := false
	updated, err := svc.UpsertSource(ctx, UpsertSourceInput{
		ID:         &created.ID,
		CompanyID:  companyID,
		SourceType: string(rating.SourceGoalAchievement),
		Weight:     &weight,
		IsActive:   &inactive,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.SourceType != string(rating.SourceGoalAchievement) || updated.Weight != 0.7 || updated.IsActive {
		t.Fatalf("update not applied: %+v", updated)
	}

	// Deactivated rows disappear from active listings.
	listed, err := svc.ListActiveSources(ctx, companyID, rating.AxisPerformance)
	if err != nil {
		t.Fatalf("ListActiveSources: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("expected no active rows, got %+v", listed)
	}
}

func TestDeleteSourceUnknownID(t *testing.T) {
	svc, companyID := newRegistryService(t, nil)
	err := svc.DeleteSource(context.Background(), companyID, uuid.New())
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResolveWeightsFallsBackToDefaults(t *testing.T) {
	svc, companyID := newRegistryService(t, nil)
	weights, err := svc.ResolveWeights(context.Background(), companyID, rating.AxisPerformance)
	if err != nil {
		t.Fatalf("ResolveWeights: %v", err)
	}
	if weights[rating.SourceAppraisalOverall] != 0.5 || weights[rating.SourceGoalAchievement] != 0.3 || weights[rating.SourceCompetencyAverage] != 0.2 {
		t.Fatalf("expected default weights, got %v", weights)
	}
}

func TestResolveWeightsDuplicateSourceLastWriteWins(t *testing.T) {
	svc, companyID := newRegistryService(t, nil)
	ctx := context.Background()

	lowPriority := 0
	highPriority := 5
	w1 := 0.4
	w2 := 0.9
	if _, err := svc.UpsertSource(ctx, UpsertSourceInput{
		CompanyID: companyID, Axis: string(rating.AxisPerformance),
		SourceType: string(rating.SourceAppraisalOverall), Weight: &w1, Priority: &lowPriority,
	}); err != nil {
		t.Fatalf("create first: %v", err)
	}
	if _, err := svc.UpsertSource(ctx, UpsertSourceInput{
		CompanyID: companyID, Axis: string(rating.AxisPerformance),
		SourceType: string(rating.SourceAppraisalOverall), Weight: &w2, Priority: &highPriority,
	}); err != nil {
		t.Fatalf("create second: %v", err)
	}

	weights, err := svc.ResolveWeights(ctx, companyID, rating.AxisPerformance)
	if err != nil {
		t.Fatalf("ResolveWeights: %v", err)
	}
	if weights[rating.SourceAppraisalOverall] != 0.9 {
		t.Fatalf("expected priority-ordered last write to win, got %v", weights)
	}
	// Explicit config replaces the defaults wholesale.
	if _, ok := weights[rating.SourceGoalAchievement]; ok {
		t.Fatalf("unconfigured source should not inherit a default weight: %v", weights)
	}
}

func TestMutationInvalidatesCache(t *testing.T) {
	cache := newFakeRegistryCache()
	svc, companyID := newRegistryService(t, cache)
	ctx := context.Background()

	// Prime the cache.
	if _, err := svc.ListActiveSources(ctx, companyID, rating.AxisPerformance); err != nil {
		t.Fatalf("ListActiveSources: %v", err)
	}
	if _, ok := cache.entries[cache.key(companyID.String(), "performance")]; !ok {
		t.Fatal("expected list to populate the cache")
	}

	if _, err := svc.UpsertSource(ctx, UpsertSourceInput{
		CompanyID:  companyID,
		Axis:       string(rating.AxisPerformance),
		SourceType: string(rating.SourceAppraisalOverall),
	}); err != nil {
		t.Fatalf("UpsertSource: %v", err)
	}
	if len(cache.invalidations) != 1 || cache.invalidations[0] != companyID.String() {
		t.Fatalf("expected one invalidation for the tenant, got %v", cache.invalidations)
	}

	// Fresh read repopulates with the new row.
	listed, err := svc.ListActiveSources(ctx, companyID, rating.AxisPerformance)
	if err != nil {
		t.Fatalf("ListActiveSources after mutation: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected the new row after invalidation, got %+v", listed)
	}
}

func TestListActiveSourcesServesFromCache(t *testing.T) {
	cache := newFakeRegistryCache()
	svc, companyID := newRegistryService(t, cache)
	ctx := context.Background()

	cached := []*types.SourceConfig{{
		ID:         uuid.New(),
		CompanyID:  companyID,
		Axis:       string(rating.AxisPotential),
		SourceType: string(rating.SourceValuesSignals),
		Weight:     0.2,
		IsActive:   true,
	}}
	cache.SetSourceConfigs(ctx, companyID.String(), "potential", cached)

	listed, err := svc.ListActiveSources(ctx, companyID, rating.AxisPotential)
	if err != nil {
		t.Fatalf("ListActiveSources: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != cached[0].ID {
		t.Fatalf("expected the cached entry, got %+v", listed)
	}
}
