package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"opmatch/internal/domain"
	"opmatch/internal/matching"
	"opmatch/internal/metrics"
	"opmatch/internal/repository"
)

// ctxCheckEvery is the candidate-loop checkpoint cadence: every N scored
// opportunities the loop re-checks context cancellation, so an abandoned
// computation stops at a clean boundary with nothing persisted.
const ctxCheckEvery = 50

// Boost thresholds for candidate scoring.
const (
	recencyWindowFull = 7 * 24 * time.Hour
	recencyWindowHalf = 14 * 24 * time.Hour
	popularityMin     = 100
)

// ComputeOptions controls a single match computation pass.
type ComputeOptions struct {
	Limit            int
	MinScore         float64
	OnlyActive       bool
	ApplyHardFilters bool
}

// MatchService computes matches for a profile and reconciles them into the
// match store. All collaborators are injected once at startup; the service
// holds no mutable state of its own.
type MatchService struct {
	logger        *zap.Logger
	profiles      repository.ProfileRepository
	opportunities repository.OpportunityRepository
	matches       repository.MatchRepository
	nowFn         func() time.Time
}

func NewMatchService(
	logger *zap.Logger,
	profiles repository.ProfileRepository,
	opportunities repository.OpportunityRepository,
	matches repository.MatchRepository,
) *MatchService {
	return &MatchService{
		logger:        logger,
		profiles:      profiles,
		opportunities: opportunities,
		matches:       matches,
		nowFn:         time.Now,
	}
}

// WithClock overrides the time provider (used primarily in tests).
func (s *MatchService) WithClock(nowFn func() time.Time) {
	if nowFn != nil {
		s.nowFn = nowFn
	}
}

// ComputeMatches scores every candidate opportunity for the given profile and
// returns the surviving results sorted by score descending, truncated to the
// limit. A missing profile yields an empty result, not an error. Ties keep
// candidate iteration order, so output is deterministic for a fixed store.
func (s *MatchService) ComputeMatches(ctx context.Context, profileID uuid.UUID, opts ComputeOptions) ([]domain.MatchResult, error) {
	profile, found, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if !found {
		s.logger.Debug("profile not found, no matches to compute", zap.String("profile_id", profileID.String()))
		return nil, nil
	}

	candidates, err := s.opportunities.ListCandidates(ctx, opts.OnlyActive)
	if err != nil {
		return nil, fmt.Errorf("list opportunities: %w", err)
	}

	metrics.ComputationsTotal.Inc()
	now := s.nowFn().UTC()

	var results []domain.MatchResult
	for i, opp := range candidates {
		if i%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("computation cancelled: %w", err)
			}
		}

		result := s.scoreCandidate(profile, opp, now)
		metrics.CandidatesScored.Inc()

		if opts.ApplyHardFilters && !result.Breakdown.IsEligible() {
			continue
		}
		if result.Score < opts.MinScore {
			continue
		}
		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}

	s.logger.Info("computed matches",
		zap.String("profile_id", profileID.String()),
		zap.Int("candidates", len(candidates)),
		zap.Int("results", len(results)),
	)
	return results, nil
}

// scoreCandidate builds the full MatchResult for one profile×opportunity
// pair. Pure with respect to storage; degraded inputs take documented
// defaults instead of failing the pass.
func (s *MatchService) scoreCandidate(profile domain.Profile, opp domain.Opportunity, now time.Time) domain.MatchResult {
	breakdown := domain.NewMatchScoreBreakdown()
	issues := matching.ApplyEligibility(profile, opp, &breakdown)

	semantic, degradation := matching.SemanticScore(profile.EmbeddingSlice(), opp.EmbeddingSlice())
	if degradation != matching.DegradationNone {
		metrics.DegradedSimilarity.WithLabelValues(string(degradation)).Inc()
		s.logger.Warn("similarity degraded to default",
			zap.String("opportunity_id", opp.ID.String()),
			zap.String("reason", string(degradation)),
		)
	}
	breakdown.SemanticScore = semantic
	breakdown.RecencyBoost = recencyBoost(opp, now)
	breakdown.PopularityBoost = popularityBoost(opp)

	score := breakdown.TotalScore()
	suggestions := matching.FixSuggestions(profile, opp, breakdown)

	return domain.MatchResult{
		OpportunityID: opp.ID,
		Score:         score,
		Breakdown:     breakdown,
		Explanation:   s.explain(profile, opp, score),
		Reasons:       scoreReasons(score),
		Issues:        issues,
		Suggestions:   suggestions,
	}
}

// explain assembles the display-only context: overlapping themes via the
// fuzzy tag matcher and overlapping technologies via plain intersection.
func (s *MatchService) explain(profile domain.Profile, opp domain.Opportunity, score float64) domain.MatchExplanation {
	_, themes := matching.MatchTags(profile.Interests, opp.Themes)
	technologies := matching.Intersect(profile.TechStack, opp.Technologies)

	summary := fmt.Sprintf("%.0f%% match", score*100)
	if len(themes) > 0 {
		summary = fmt.Sprintf("%.0f%% match, shared interest in %s", score*100, themes[0])
	}

	return domain.MatchExplanation{
		Summary:              summary,
		MatchingThemes:       themes,
		MatchingTechnologies: technologies,
	}
}

// SaveMatches reconciles a computation pass into the store and returns how
// many match records were newly created. Stale cleanup runs first and runs
// even when results is empty; bookmarked or dismissed records are never
// deleted and their flags are never written by this path.
func (s *MatchService) SaveMatches(ctx context.Context, userID uuid.UUID, results []domain.MatchResult) (int, error) {
	fresh := make([]uuid.UUID, 0, len(results))
	for _, r := range results {
		fresh = append(fresh, r.OpportunityID)
	}

	deleted, err := s.matches.DeleteStaleExcept(ctx, userID, fresh)
	if err != nil {
		return 0, fmt.Errorf("delete stale matches: %w", err)
	}
	if deleted > 0 {
		metrics.StaleMatchesDeleted.Add(float64(deleted))
		s.logger.Info("deleted stale matches",
			zap.String("user_id", userID.String()),
			zap.Int64("count", deleted),
		)
	}

	now := s.nowFn().UTC()
	created := 0
	for _, r := range results {
		match := domain.Match{
			ID:                uuid.New(),
			UserID:            userID,
			OpportunityID:     r.OpportunityID,
			Score:             r.Score,
			Breakdown:         r.Breakdown,
			EligibilityStatus: r.Breakdown.EligibilityStatus(),
			EligibilityIssues: r.Issues,
			FixSuggestions:    r.Suggestions,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		wasCreated, err := s.matches.Upsert(ctx, match)
		if err != nil {
			return created, fmt.Errorf("upsert match for opportunity %s: %w", r.OpportunityID, err)
		}
		if wasCreated {
			created++
			metrics.MatchesCreated.Inc()
		}
	}

	// Best-effort stamp; a failure here must not fail the reconciliation.
	if err := s.profiles.SetLastMatchComputation(ctx, userID, now); err != nil {
		s.logger.Warn("stamp last match computation",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}

	return created, nil
}

func recencyBoost(opp domain.Opportunity, now time.Time) float64 {
	age := opp.Age(now)
	switch {
	case age <= recencyWindowFull:
		return domain.MaxRecencyBoost
	case age <= recencyWindowHalf:
		return 0.01
	default:
		return 0
	}
}

func popularityBoost(opp domain.Opportunity) float64 {
	if opp.ParticipantCount != nil && *opp.ParticipantCount > popularityMin {
		return domain.MaxPopularityBoost
	}
	return 0
}

// scoreReasons derives the primary human-readable reason from the total score.
func scoreReasons(score float64) []string {
	switch {
	case score >= 0.80:
		return []string{"Excellent match"}
	case score >= 0.75:
		return []string{"Strong alignment"}
	case score >= 0.70:
		return []string{"Good match"}
	case score >= 0.65:
		return []string{"Moderate fit"}
	default:
		return nil
	}
}
