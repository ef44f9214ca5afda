package matching

import (
	"fmt"

	"opmatch/internal/domain"
)

// ApplyEligibility evaluates the hard constraints between a profile and an
// opportunity. It clears the corresponding breakdown flags on failure and
// returns human-readable issues for each failed check. Pure function: no I/O,
// no mutation beyond the passed-in breakdown.
func ApplyEligibility(profile domain.Profile, opp domain.Opportunity, b *domain.MatchScoreBreakdown) []string {
	var issues []string

	teamSize := profile.EffectiveTeamSize()
	if opp.TeamSizeMin != nil && teamSize < *opp.TeamSizeMin {
		b.TeamSizeEligible = false
		issues = append(issues, fmt.Sprintf("Team size too small: need %d, have %d", *opp.TeamSizeMin, teamSize))
	}
	if opp.TeamSizeMax != nil && teamSize > *opp.TeamSizeMax {
		b.TeamSizeEligible = false
		issues = append(issues, fmt.Sprintf("Team size too large: max %d, have %d", *opp.TeamSizeMax, teamSize))
	}

	// Funding stage: no real constraint encoded yet. Accelerators with a known
	// profile stage still pass; product has not defined the rule.
	if opp.Type == domain.OpportunityTypeAccelerator && profile.FundingStage != "" {
		b.FundingStageEligible = true
	}

	// Location: always eligible, no constraint encoded.

	return issues
}

// FixSuggestions derives actionable hints from failed team-size checks.
func FixSuggestions(profile domain.Profile, opp domain.Opportunity, b domain.MatchScoreBreakdown) []string {
	if b.TeamSizeEligible {
		return nil
	}
	teamSize := profile.EffectiveTeamSize()
	var suggestions []string
	if opp.TeamSizeMin != nil && teamSize < *opp.TeamSizeMin {
		suggestions = append(suggestions, fmt.Sprintf("Grow your team to at least %d members", *opp.TeamSizeMin))
	}
	if opp.TeamSizeMax != nil && teamSize > *opp.TeamSizeMax {
		suggestions = append(suggestions, fmt.Sprintf("Enter with a smaller team of at most %d members", *opp.TeamSizeMax))
	}
	return suggestions
}
