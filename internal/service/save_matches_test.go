package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"opmatch/internal/domain"
)

func seededMatch(userID, oppID uuid.UUID, bookmarked, dismissed bool) domain.Match {
	b := domain.NewMatchScoreBreakdown()
	b.SemanticScore = 0.6
	return domain.Match{
		ID:                uuid.New(),
		UserID:            userID,
		OpportunityID:     oppID,
		Score:             b.TotalScore(),
		Breakdown:         b,
		EligibilityStatus: domain.EligibilityStatusEligible,
		IsBookmarked:      bookmarked,
		IsDismissed:       dismissed,
		CreatedAt:         time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:         time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

func resultFor(oppID uuid.UUID, semantic float64) domain.MatchResult {
	b := domain.NewMatchScoreBreakdown()
	b.SemanticScore = semantic
	return domain.MatchResult{
		OpportunityID: oppID,
		Score:         b.TotalScore(),
		Breakdown:     b,
	}
}

func TestSaveMatches_CreatesNewAndCounts(t *testing.T) {
	userID := uuid.New()
	profiles := newMockProfileRepo(domain.Profile{ID: userID})
	matches := newMockMatchRepo()
	svc := newTestService(profiles, &mockOpportunityRepo{}, matches)

	created, err := svc.SaveMatches(context.Background(), userID, []domain.MatchResult{
		resultFor(uuid.New(), 0.7),
		resultFor(uuid.New(), 0.8),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created != 2 {
		t.Fatalf("expected 2 created, got %d", created)
	}
	if len(matches.matches) != 2 {
		t.Fatalf("expected 2 stored matches, got %d", len(matches.matches))
	}
	if _, ok := profiles.stamped[userID]; !ok {
		t.Fatalf("expected last_match_computation to be stamped")
	}
}

func TestSaveMatches_PreservesBookmarkedStaleMatch(t *testing.T) {
	userID := uuid.New()
	bookmarkedOpp := uuid.New()
	freshOpp := uuid.New()

	matches := newMockMatchRepo(seededMatch(userID, bookmarkedOpp, true, false))
	svc := newTestService(newMockProfileRepo(domain.Profile{ID: userID}), &mockOpportunityRepo{}, matches)

	// Fresh set does not contain the bookmarked opportunity.
	if _, err := svc.SaveMatches(context.Background(), userID, []domain.MatchResult{resultFor(freshOpp, 0.7)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	kept, ok := matches.matches[matchKey{userID, bookmarkedOpp}]
	if !ok {
		t.Fatalf("bookmarked stale match must not be deleted")
	}
	if !kept.IsBookmarked {
		t.Fatalf("bookmark flag must survive reconciliation")
	}
}

func TestSaveMatches_DeletesNonActionedStaleMatch(t *testing.T) {
	userID := uuid.New()
	staleOpp := uuid.New()
	freshOpp := uuid.New()

	matches := newMockMatchRepo(seededMatch(userID, staleOpp, false, false))
	svc := newTestService(newMockProfileRepo(domain.Profile{ID: userID}), &mockOpportunityRepo{}, matches)

	if _, err := svc.SaveMatches(context.Background(), userID, []domain.MatchResult{resultFor(freshOpp, 0.7)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := matches.matches[matchKey{userID, staleOpp}]; ok {
		t.Fatalf("non-actioned stale match must be deleted")
	}
	if _, ok := matches.matches[matchKey{userID, freshOpp}]; !ok {
		t.Fatalf("fresh match must be stored")
	}
}

func TestSaveMatches_EmptyResultsStillCleansUp(t *testing.T) {
	userID := uuid.New()
	staleOpp := uuid.New()
	dismissedOpp := uuid.New()

	matches := newMockMatchRepo(
		seededMatch(userID, staleOpp, false, false),
		seededMatch(userID, dismissedOpp, false, true),
	)
	svc := newTestService(newMockProfileRepo(domain.Profile{ID: userID}), &mockOpportunityRepo{}, matches)

	created, err := svc.SaveMatches(context.Background(), userID, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created != 0 {
		t.Fatalf("expected 0 created, got %d", created)
	}
	if _, ok := matches.matches[matchKey{userID, staleOpp}]; ok {
		t.Fatalf("full cleanup must delete non-actioned matches")
	}
	if _, ok := matches.matches[matchKey{userID, dismissedOpp}]; !ok {
		t.Fatalf("dismissed match must survive full cleanup")
	}
}

func TestSaveMatches_Idempotent(t *testing.T) {
	userID := uuid.New()
	oppA := uuid.New()
	oppB := uuid.New()
	results := []domain.MatchResult{resultFor(oppA, 0.7), resultFor(oppB, 0.65)}

	matches := newMockMatchRepo()
	svc := newTestService(newMockProfileRepo(domain.Profile{ID: userID}), &mockOpportunityRepo{}, matches)

	first, err := svc.SaveMatches(context.Background(), userID, results)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != 2 {
		t.Fatalf("expected 2 created on first run, got %d", first)
	}

	second, err := svc.SaveMatches(context.Background(), userID, results)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second != 0 {
		t.Fatalf("expected 0 created on identical rerun, got %d", second)
	}
	if len(matches.matches) != 2 {
		t.Fatalf("expected identical final state with 2 matches, got %d", len(matches.matches))
	}
}

func TestSaveMatches_UpdateRefreshesScoresNotFlags(t *testing.T) {
	userID := uuid.New()
	oppID := uuid.New()

	matches := newMockMatchRepo(seededMatch(userID, oppID, true, false))
	svc := newTestService(newMockProfileRepo(domain.Profile{ID: userID}), &mockOpportunityRepo{}, matches)

	created, err := svc.SaveMatches(context.Background(), userID, []domain.MatchResult{resultFor(oppID, 0.9)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created != 0 {
		t.Fatalf("update must not count as creation, got %d", created)
	}

	updated := matches.matches[matchKey{userID, oppID}]
	if updated.Breakdown.SemanticScore != 0.9 {
		t.Fatalf("expected refreshed semantic score, got %v", updated.Breakdown.SemanticScore)
	}
	if !updated.IsBookmarked {
		t.Fatalf("scoring pass must never clear the bookmark flag")
	}
}

func TestSaveMatches_StampFailureIsBestEffort(t *testing.T) {
	userID := uuid.New()
	profiles := newMockProfileRepo(domain.Profile{ID: userID})
	profiles.stampErr = context.DeadlineExceeded

	svc := newTestService(profiles, &mockOpportunityRepo{}, newMockMatchRepo())

	created, err := svc.SaveMatches(context.Background(), userID, []domain.MatchResult{resultFor(uuid.New(), 0.7)})
	if err != nil {
		t.Fatalf("stamp failure must not fail the reconciliation: %v", err)
	}
	if created != 1 {
		t.Fatalf("expected 1 created, got %d", created)
	}
}
