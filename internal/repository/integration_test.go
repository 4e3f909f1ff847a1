//go:build integration

package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/legalconnect/legalconnect/internal/model"
	"github.com/legalconnect/legalconnect/internal/testutil"
)

func newTestEnv(t *testing.T) (context.Context, *Repository) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	dbURL := testutil.RequireEnv(t, "DATABASE_URL")

	repo, err := New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	t.Cleanup(func() {
		_ = unlock()
	})

	if err := testutil.ResetSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset schema: %v", err)
	}

	return ctx, repo
}

func mustCreateUser(t *testing.T, ctx context.Context, repo *Repository) *model.User {
	t.Helper()
	user := testutil.NewTestUser(t, model.RoleUser)
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return user
}

func mustCreateLawyer(t *testing.T, ctx context.Context, repo *Repository, name string) *model.Lawyer {
	t.Helper()
	lawyer := testutil.NewTestLawyer(t, name)
	if err := repo.CreateLawyer(ctx, lawyer); err != nil {
		t.Fatalf("CreateLawyer failed: %v", err)
	}
	return lawyer
}

// ============================================================================
// User Repository
// ============================================================================

func TestIntegrationUserRepository_CreateAndGet(t *testing.T) {
	ctx, repo := newTestEnv(t)

	user := mustCreateUser(t, ctx, repo)

	if user.ID == 0 {
		t.Error("ID should be populated")
	}
	if user.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	byEmail, err := repo.GetUserByEmail(ctx, user.Email)
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if byEmail.ID != user.ID {
		t.Errorf("ID mismatch: got %d, want %d", byEmail.ID, user.ID)
	}

	byID, err := repo.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if byID.Email != user.Email {
		t.Errorf("Email mismatch: got %q, want %q", byID.Email, user.Email)
	}
}

func TestIntegrationUserRepository_DuplicateEmail(t *testing.T) {
	ctx, repo := newTestEnv(t)

	user := mustCreateUser(t, ctx, repo)

	dup := testutil.NewTestUser(t, model.RoleUser)
	dup.Email = user.Email

	if err := repo.CreateUser(ctx, dup); !errors.Is(err, ErrEmailExists) {
		t.Errorf("Expected ErrEmailExists, got: %v", err)
	}
}

func TestIntegrationUserRepository_NotFound(t *testing.T) {
	ctx, repo := newTestEnv(t)

	if _, err := repo.GetUserByID(ctx, 999999); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got: %v", err)
	}
	if _, err := repo.GetUserByEmail(ctx, "missing@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got: %v", err)
	}
}

// ============================================================================
// Lawyer Repository
// ============================================================================

func TestIntegrationLawyerRepository_SeededScenario(t *testing.T) {
	ctx, repo := newTestEnv(t)

	if err := repo.Bootstrap(ctx); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}

	// Bootstrap again must not duplicate anything.
	if err := repo.Bootstrap(ctx); err != nil {
		t.Fatalf("Bootstrap (second) failed: %v", err)
	}

	all, err := repo.ListLawyers(ctx, model.SearchFilters{}, "id")
	if err != nil {
		t.Fatalf("ListLawyers failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 seeded lawyers, got %d", len(all))
	}

	nsw := "NSW"
	inNSW, err := repo.ListLawyers(ctx, model.SearchFilters{State: &nsw}, "id")
	if err != nil {
		t.Fatalf("ListLawyers(NSW) failed: %v", err)
	}
	if len(inNSW) != 1 || inNSW[0].Name != "Sarah Mitchell" {
		t.Errorf("expected only Sarah Mitchell in NSW, got %v", inNSW)
	}

	vic := "VIC"
	inVIC, err := repo.ListLawyers(ctx, model.SearchFilters{State: &vic}, "id")
	if err != nil {
		t.Fatalf("ListLawyers(VIC) failed: %v", err)
	}
	for _, l := range inVIC {
		if l.Name == "Sarah Mitchell" {
			t.Error("Sarah Mitchell should not match VIC")
		}
	}

	minExp := 20
	none, err := repo.ListLawyers(ctx, model.SearchFilters{MinExperience: &minExp}, "id")
	if err != nil {
		t.Fatalf("ListLawyers(minExperience=20) failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected empty result for minExperience=20, got %d", len(none))
	}
}

func TestIntegrationLawyerRepository_FilterIntersection(t *testing.T) {
	ctx, repo := newTestEnv(t)

	a := testutil.NewTestLawyer(t, "Alpha")
	a.ExperienceYears = 12
	a.LocationState = "NSW"
	b := testutil.NewTestLawyer(t, "Beta")
	b.ExperienceYears = 12
	b.LocationState = "VIC"
	c := testutil.NewTestLawyer(t, "Gamma")
	c.ExperienceYears = 3
	c.LocationState = "NSW"

	for _, l := range []*model.Lawyer{a, b, c} {
		if err := repo.CreateLawyer(ctx, l); err != nil {
			t.Fatalf("CreateLawyer failed: %v", err)
		}
	}

	minExp := 10
	nsw := "NSW"
	got, err := repo.ListLawyers(ctx, model.SearchFilters{MinExperience: &minExp, State: &nsw}, "id")
	if err != nil {
		t.Fatalf("ListLawyers failed: %v", err)
	}

	// Intersection, never union: only Alpha matches both predicates.
	if len(got) != 1 || got[0].Name != "Alpha" {
		t.Errorf("expected only Alpha, got %v", got)
	}
	for _, l := range got {
		if l.ExperienceYears < 10 {
			t.Errorf("lawyer %s violates minExperience filter", l.Name)
		}
	}
}

func TestIntegrationLawyerRepository_UpdatePatch(t *testing.T) {
	ctx, repo := newTestEnv(t)

	lawyer := mustCreateLawyer(t, ctx, repo, "Patchable")

	rate := 99
	specialties := []string{"Mediation", "Arbitration"}
	patch := &LawyerPatch{SuccessRate: &rate, Specialties: &specialties}

	if err := repo.UpdateLawyer(ctx, lawyer.ID, patch); err != nil {
		t.Fatalf("UpdateLawyer failed: %v", err)
	}

	updated, err := repo.GetLawyer(ctx, lawyer.ID)
	if err != nil {
		t.Fatalf("GetLawyer failed: %v", err)
	}
	if updated.SuccessRate != 99 {
		t.Errorf("SuccessRate not patched: got %d", updated.SuccessRate)
	}
	if len(updated.Specialties) != 2 || updated.Specialties[0] != "Mediation" {
		t.Errorf("Specialties not patched: got %v", updated.Specialties)
	}
	// Untouched fields must survive.
	if updated.Name != "Patchable" {
		t.Errorf("Name should be unchanged, got %q", updated.Name)
	}

	if err := repo.UpdateLawyer(ctx, lawyer.ID, &LawyerPatch{}); !errors.Is(err, ErrEmptyPatch) {
		t.Errorf("Expected ErrEmptyPatch, got: %v", err)
	}
	if err := repo.UpdateLawyer(ctx, 999999, patch); !errors.Is(err, ErrLawyerNotFound) {
		t.Errorf("Expected ErrLawyerNotFound, got: %v", err)
	}
}

func TestIntegrationLawyerRepository_Delete(t *testing.T) {
	ctx, repo := newTestEnv(t)

	lawyer := mustCreateLawyer(t, ctx, repo, "Deletable")

	if err := repo.DeleteLawyer(ctx, lawyer.ID); err != nil {
		t.Fatalf("DeleteLawyer failed: %v", err)
	}
	if _, err := repo.GetLawyer(ctx, lawyer.ID); !errors.Is(err, ErrLawyerNotFound) {
		t.Errorf("Expected ErrLawyerNotFound after delete, got: %v", err)
	}
	if err := repo.DeleteLawyer(ctx, lawyer.ID); !errors.Is(err, ErrLawyerNotFound) {
		t.Errorf("Expected ErrLawyerNotFound on second delete, got: %v", err)
	}
}

// ============================================================================
// Collections
// ============================================================================

func TestIntegrationCollection_AddRemoveCycle(t *testing.T) {
	ctx, repo := newTestEnv(t)

	user := mustCreateUser(t, ctx, repo)
	lawyer := mustCreateLawyer(t, ctx, repo, "Shortlisted")

	if err := repo.AddCollectionEntry(ctx, CollectionShortlist, user.ID, lawyer.ID); err != nil {
		t.Fatalf("first add failed: %v", err)
	}

	err := repo.AddCollectionEntry(ctx, CollectionShortlist, user.ID, lawyer.ID)
	if !errors.Is(err, ErrAlreadyInCollection) {
		t.Errorf("Expected ErrAlreadyInCollection, got: %v", err)
	}

	lawyers, err := repo.ListCollection(ctx, CollectionShortlist, user.ID)
	if err != nil {
		t.Fatalf("ListCollection failed: %v", err)
	}
	if len(lawyers) != 1 {
		t.Fatalf("expected exactly one entry, got %d", len(lawyers))
	}

	if err := repo.RemoveCollectionEntry(ctx, CollectionShortlist, user.ID, lawyer.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	// No permanent exhaustion: the pair can be re-added after removal.
	if err := repo.AddCollectionEntry(ctx, CollectionShortlist, user.ID, lawyer.ID); err != nil {
		t.Fatalf("re-add after remove failed: %v", err)
	}

	err = repo.RemoveCollectionEntry(ctx, CollectionShortlist, user.ID, 999999)
	if !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("Expected ErrEntryNotFound, got: %v", err)
	}
}

func TestIntegrationCollection_MissingLawyer(t *testing.T) {
	ctx, repo := newTestEnv(t)

	user := mustCreateUser(t, ctx, repo)

	err := repo.AddCollectionEntry(ctx, CollectionShortlist, user.ID, 999999)
	if !errors.Is(err, ErrLawyerNotFound) {
		t.Errorf("Expected ErrLawyerNotFound from FK backstop, got: %v", err)
	}
}

func TestIntegrationComparison_CapacityUnderConcurrency(t *testing.T) {
	ctx, repo := newTestEnv(t)

	user := mustCreateUser(t, ctx, repo)

	lawyers := make([]*model.Lawyer, 10)
	for i := range lawyers {
		lawyers[i] = mustCreateLawyer(t, ctx, repo, testutil.UniqueEmail("lawyer"))
	}

	var wg sync.WaitGroup
	errs := make([]error, len(lawyers))
	for i, lawyer := range lawyers {
		wg.Add(1)
		go func(i int, lawyerID int64) {
			defer wg.Done()
			errs[i] = repo.AddCollectionEntry(ctx, CollectionComparison, user.ID, lawyerID)
		}(i, lawyer.ID)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrCollectionFull):
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	if succeeded != model.ComparisonLimit {
		t.Errorf("expected exactly %d successful adds, got %d", model.ComparisonLimit, succeeded)
	}

	entries, err := repo.ListCollection(ctx, CollectionComparison, user.ID)
	if err != nil {
		t.Fatalf("ListCollection failed: %v", err)
	}
	if len(entries) > model.ComparisonLimit {
		t.Errorf("comparison set exceeded cap: %d entries", len(entries))
	}
}

func TestIntegrationComparison_Clear(t *testing.T) {
	ctx, repo := newTestEnv(t)

	user := mustCreateUser(t, ctx, repo)
	lawyer := mustCreateLawyer(t, ctx, repo, "Compared")

	if err := repo.AddCollectionEntry(ctx, CollectionComparison, user.ID, lawyer.ID); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if err := repo.ClearCollection(ctx, CollectionComparison, user.ID); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	entries, err := repo.ListCollection(ctx, CollectionComparison, user.ID)
	if err != nil {
		t.Fatalf("ListCollection failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty comparison after clear, got %d", len(entries))
	}

	// Clearing an already-empty set still succeeds.
	if err := repo.ClearCollection(ctx, CollectionComparison, user.ID); err != nil {
		t.Errorf("clear of empty set failed: %v", err)
	}
}

// ============================================================================
// Search History
// ============================================================================

func TestIntegrationHistory_ReadCapAndOrder(t *testing.T) {
	ctx, repo := newTestEnv(t)

	user := mustCreateUser(t, ctx, repo)

	total := model.HistoryReadLimit + 5
	for i := 0; i < total; i++ {
		count := i
		record := &model.SearchHistoryRecord{
			UserID:      user.ID,
			ResultCount: count,
		}
		if err := repo.CreateSearchHistory(ctx, record); err != nil {
			t.Fatalf("CreateSearchHistory failed: %v", err)
		}
	}

	records, err := repo.ListSearchHistory(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListSearchHistory failed: %v", err)
	}

	if len(records) != model.HistoryReadLimit {
		t.Errorf("expected %d records, got %d", model.HistoryReadLimit, len(records))
	}

	for i := 1; i < len(records); i++ {
		if records[i].CreatedAt.After(records[i-1].CreatedAt) {
			t.Errorf("records not newest-first at index %d", i)
		}
	}
}

func TestIntegrationHistory_NullableFilters(t *testing.T) {
	ctx, repo := newTestEnv(t)

	user := mustCreateUser(t, ctx, repo)

	record := &model.SearchHistoryRecord{UserID: user.ID}
	if err := repo.CreateSearchHistory(ctx, record); err != nil {
		t.Fatalf("CreateSearchHistory failed: %v", err)
	}

	records, err := repo.ListSearchHistory(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListSearchHistory failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	got := records[0]
	if got.PracticeArea != nil || got.State != nil || got.MinExperience != nil || got.MaxRate != nil {
		t.Errorf("absent filters should round-trip as nil, got %+v", got)
	}
	if got.ResponseGuarantee {
		t.Error("absent response_guarantee should be false")
	}
}
