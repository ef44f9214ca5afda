package matching

import (
	"testing"

	"opmatch/internal/domain"
)

func intPtr(v int) *int { return &v }

func TestApplyEligibility_TeamTooSmall(t *testing.T) {
	profile := domain.Profile{TeamSize: 2}
	opp := domain.Opportunity{TeamSizeMin: intPtr(5)}
	b := domain.NewMatchScoreBreakdown()

	issues := ApplyEligibility(profile, opp, &b)

	if b.TeamSizeEligible {
		t.Fatalf("expected team size flag cleared")
	}
	if len(issues) != 1 || issues[0] != "Team size too small: need 5, have 2" {
		t.Fatalf("unexpected issues: %v", issues)
	}
	if b.IsEligible() {
		t.Fatalf("expected breakdown ineligible")
	}
}

func TestApplyEligibility_TeamTooLarge(t *testing.T) {
	profile := domain.Profile{TeamSize: 8}
	opp := domain.Opportunity{TeamSizeMax: intPtr(4)}
	b := domain.NewMatchScoreBreakdown()

	issues := ApplyEligibility(profile, opp, &b)

	if b.TeamSizeEligible {
		t.Fatalf("expected team size flag cleared")
	}
	if len(issues) != 1 || issues[0] != "Team size too large: max 4, have 8" {
		t.Fatalf("unexpected issues: %v", issues)
	}
}

func TestApplyEligibility_DefaultTeamSizeIsOne(t *testing.T) {
	profile := domain.Profile{} // team size unset
	opp := domain.Opportunity{TeamSizeMin: intPtr(1)}
	b := domain.NewMatchScoreBreakdown()

	issues := ApplyEligibility(profile, opp, &b)
	if !b.TeamSizeEligible {
		t.Fatalf("expected solo profile to satisfy min of 1, issues: %v", issues)
	}

	opp.TeamSizeMin = intPtr(2)
	b = domain.NewMatchScoreBreakdown()
	issues = ApplyEligibility(profile, opp, &b)
	if b.TeamSizeEligible {
		t.Fatalf("expected solo profile to fail min of 2")
	}
	if issues[0] != "Team size too small: need 2, have 1" {
		t.Fatalf("unexpected issue: %v", issues[0])
	}
}

func TestApplyEligibility_NoConstraintsPass(t *testing.T) {
	profile := domain.Profile{TeamSize: 3, FundingStage: "seed"}
	opp := domain.Opportunity{Type: domain.OpportunityTypeAccelerator}
	b := domain.NewMatchScoreBreakdown()

	issues := ApplyEligibility(profile, opp, &b)

	if !b.IsEligible() {
		t.Fatalf("expected all flags to pass with no constraints, issues: %v", issues)
	}
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
	// Funding stage and location are permissive placeholders.
	if !b.FundingStageEligible || !b.LocationEligible {
		t.Fatalf("expected funding and location to remain eligible")
	}
}

func TestFixSuggestions(t *testing.T) {
	profile := domain.Profile{TeamSize: 1}
	opp := domain.Opportunity{TeamSizeMin: intPtr(3)}
	b := domain.NewMatchScoreBreakdown()
	ApplyEligibility(profile, opp, &b)

	suggestions := FixSuggestions(profile, opp, b)
	if len(suggestions) != 1 || suggestions[0] != "Grow your team to at least 3 members" {
		t.Fatalf("unexpected suggestions: %v", suggestions)
	}

	if got := FixSuggestions(profile, opp, domain.NewMatchScoreBreakdown()); got != nil {
		t.Fatalf("expected no suggestions when eligible, got %v", got)
	}
}
