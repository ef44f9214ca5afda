package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"opmatch/internal/domain"
)

type MatchRepository interface {
	Get(ctx context.Context, userID, opportunityID uuid.UUID) (domain.Match, bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Match, error)
	// Upsert inserts or refreshes the match keyed by (user_id, opportunity_id)
	// and reports whether a new row was created. Updates never touch the
	// user-owned bookmark/dismiss flags.
	Upsert(ctx context.Context, match domain.Match) (bool, error)
	// DeleteStaleExcept removes all non-actioned matches for the user whose
	// opportunity is not in keep. An empty keep deletes every non-actioned
	// match.
	DeleteStaleExcept(ctx context.Context, userID uuid.UUID, keep []uuid.UUID) (int64, error)
	SetBookmarked(ctx context.Context, userID, opportunityID uuid.UUID, bookmarked bool) (bool, error)
	SetDismissed(ctx context.Context, userID, opportunityID uuid.UUID, dismissed bool) (bool, error)
}

type PgMatchRepository struct {
	pool *pgxpool.Pool
}

func NewPgMatchRepository(pool *pgxpool.Pool) *PgMatchRepository {
	return &PgMatchRepository{pool: pool}
}

const matchColumns = `id, user_id, opportunity_id, score, semantic_score, recency_boost, popularity_boost,
		team_size_eligible, funding_stage_eligible, location_eligible,
		eligibility_status, eligibility_issues, fix_suggestions,
		is_bookmarked, is_dismissed, created_at, updated_at`

func (r *PgMatchRepository) Get(ctx context.Context, userID, opportunityID uuid.UUID) (domain.Match, bool, error) {
	const query = `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE user_id = $1 AND opportunity_id = $2
	`
	row := r.pool.QueryRow(ctx, query, userID, opportunityID)
	match, err := scanMatch(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Match{}, false, nil
	}
	if err != nil {
		return domain.Match{}, false, err
	}
	return match, true, nil
}

func (r *PgMatchRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Match, error) {
	const query = `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE user_id = $1
		ORDER BY score DESC, created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []domain.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (r *PgMatchRepository) Upsert(ctx context.Context, match domain.Match) (bool, error) {
	// xmax = 0 only holds for freshly inserted rows, which lets one atomic
	// statement distinguish create from refresh without a prior read.
	const query = `
		INSERT INTO matches (
			id, user_id, opportunity_id, score, semantic_score, recency_boost, popularity_boost,
			team_size_eligible, funding_stage_eligible, location_eligible,
			eligibility_status, eligibility_issues, fix_suggestions,
			is_bookmarked, is_dismissed, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, false, false, $14, $15)
		ON CONFLICT (user_id, opportunity_id) DO UPDATE SET
			score = EXCLUDED.score,
			semantic_score = EXCLUDED.semantic_score,
			recency_boost = EXCLUDED.recency_boost,
			popularity_boost = EXCLUDED.popularity_boost,
			team_size_eligible = EXCLUDED.team_size_eligible,
			funding_stage_eligible = EXCLUDED.funding_stage_eligible,
			location_eligible = EXCLUDED.location_eligible,
			eligibility_status = EXCLUDED.eligibility_status,
			eligibility_issues = EXCLUDED.eligibility_issues,
			fix_suggestions = EXCLUDED.fix_suggestions,
			updated_at = EXCLUDED.updated_at
		RETURNING (xmax = 0)
	`
	var created bool
	err := r.pool.QueryRow(ctx, query,
		match.ID,
		match.UserID,
		match.OpportunityID,
		match.Score,
		match.Breakdown.SemanticScore,
		match.Breakdown.RecencyBoost,
		match.Breakdown.PopularityBoost,
		match.Breakdown.TeamSizeEligible,
		match.Breakdown.FundingStageEligible,
		match.Breakdown.LocationEligible,
		match.EligibilityStatus,
		match.EligibilityIssues,
		match.FixSuggestions,
		match.CreatedAt,
		match.UpdatedAt,
	).Scan(&created)
	return created, err
}

func (r *PgMatchRepository) DeleteStaleExcept(ctx context.Context, userID uuid.UUID, keep []uuid.UUID) (int64, error) {
	const query = `
		DELETE FROM matches
		WHERE user_id = $1
		  AND NOT (opportunity_id = ANY($2))
		  AND is_bookmarked = false
		  AND is_dismissed = false
	`
	if keep == nil {
		keep = []uuid.UUID{}
	}
	tag, err := r.pool.Exec(ctx, query, userID, keep)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *PgMatchRepository) SetBookmarked(ctx context.Context, userID, opportunityID uuid.UUID, bookmarked bool) (bool, error) {
	const query = `
		UPDATE matches
		SET is_bookmarked = $3, updated_at = now()
		WHERE user_id = $1 AND opportunity_id = $2
	`
	tag, err := r.pool.Exec(ctx, query, userID, opportunityID, bookmarked)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgMatchRepository) SetDismissed(ctx context.Context, userID, opportunityID uuid.UUID, dismissed bool) (bool, error) {
	const query = `
		UPDATE matches
		SET is_dismissed = $3, updated_at = now()
		WHERE user_id = $1 AND opportunity_id = $2
	`
	tag, err := r.pool.Exec(ctx, query, userID, opportunityID, dismissed)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanMatch(row pgx.Row) (domain.Match, error) {
	var m domain.Match
	err := row.Scan(
		&m.ID,
		&m.UserID,
		&m.OpportunityID,
		&m.Score,
		&m.Breakdown.SemanticScore,
		&m.Breakdown.RecencyBoost,
		&m.Breakdown.PopularityBoost,
		&m.Breakdown.TeamSizeEligible,
		&m.Breakdown.FundingStageEligible,
		&m.Breakdown.LocationEligible,
		&m.EligibilityStatus,
		&m.EligibilityIssues,
		&m.FixSuggestions,
		&m.IsBookmarked,
		&m.IsDismissed,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}
