package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	EligibilityStatusEligible   = "eligible"
	EligibilityStatusIneligible = "ineligible"
)

// Feedback actions a user can record against a match.
const (
	FeedbackActionBookmark = "bookmark"
	FeedbackActionDismiss  = "dismiss"
	FeedbackActionApply    = "apply"
	FeedbackActionView     = "view"
)

// Boost caps applied when combining the breakdown into a total score.
const (
	MaxRecencyBoost    = 0.02
	MaxPopularityBoost = 0.01
	MaxCombinedBoost   = 0.05
)

// MatchScoreBreakdown is the fixed-shape scoring record for one
// profile×opportunity pair. It is recomputed whole on every pass and
// serialized with explicit fields so the contract stays stable for any
// consuming API layer.
type MatchScoreBreakdown struct {
	SemanticScore        float64 `json:"semantic_score"`
	RecencyBoost         float64 `json:"recency_boost"`
	PopularityBoost      float64 `json:"popularity_boost"`
	TeamSizeEligible     bool    `json:"team_size_eligible"`
	FundingStageEligible bool    `json:"funding_stage_eligible"`
	LocationEligible     bool    `json:"location_eligible"`
}

// NewMatchScoreBreakdown starts from all eligibility flags set; the filter
// pass clears the ones that fail.
func NewMatchScoreBreakdown() MatchScoreBreakdown {
	return MatchScoreBreakdown{
		TeamSizeEligible:     true,
		FundingStageEligible: true,
		LocationEligible:     true,
	}
}

// IsEligible reports whether every hard filter passed.
func (b MatchScoreBreakdown) IsEligible() bool {
	return b.TeamSizeEligible && b.FundingStageEligible && b.LocationEligible
}

// EligibilityStatus maps the flags to the persisted status string.
func (b MatchScoreBreakdown) EligibilityStatus() string {
	if b.IsEligible() {
		return EligibilityStatusEligible
	}
	return EligibilityStatusIneligible
}

// TotalScore combines the semantic score with the capped boosts. Any failed
// eligibility flag zeroes the total regardless of similarity.
func (b MatchScoreBreakdown) TotalScore() float64 {
	if !b.IsEligible() {
		return 0
	}
	boost := b.RecencyBoost + b.PopularityBoost
	if boost > MaxCombinedBoost {
		boost = MaxCombinedBoost
	}
	total := b.SemanticScore + boost
	if total > 1 {
		return 1
	}
	if total < 0 {
		return 0
	}
	return total
}

// MatchExplanation is display-only context for a match. It never influences
// the total score.
type MatchExplanation struct {
	Summary              string   `json:"summary"`
	MatchingThemes       []string `json:"matching_themes"`
	MatchingTechnologies []string `json:"matching_technologies"`
}

// MatchResult is the ephemeral outcome of scoring one opportunity for one
// profile. It lives for a single computation pass and is consumed by the
// persistence step; it is never stored itself.
type MatchResult struct {
	OpportunityID uuid.UUID           `json:"opportunity_id"`
	Score         float64             `json:"score"`
	Breakdown     MatchScoreBreakdown `json:"breakdown"`
	Explanation   MatchExplanation    `json:"explanation"`
	Reasons       []string            `json:"reasons"`
	Issues        []string            `json:"issues"`
	Suggestions   []string            `json:"suggestions"`
}

// Match is the persistent record for a (user, opportunity) pair. Scores and
// eligibility fields are overwritten on every recomputation; IsBookmarked and
// IsDismissed belong to the user and are only ever set through feedback.
type Match struct {
	ID                uuid.UUID           `json:"id"`
	UserID            uuid.UUID           `json:"user_id"`
	OpportunityID     uuid.UUID           `json:"opportunity_id"`
	Score             float64             `json:"score"`
	Breakdown         MatchScoreBreakdown `json:"breakdown"`
	EligibilityStatus string              `json:"eligibility_status"`
	EligibilityIssues []string            `json:"eligibility_issues"`
	FixSuggestions    []string            `json:"fix_suggestions"`
	IsBookmarked      bool                `json:"is_bookmarked"`
	IsDismissed       bool                `json:"is_dismissed"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}
