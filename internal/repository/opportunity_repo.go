package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"opmatch/internal/domain"
)

type OpportunityRepository interface {
	// ListCandidates returns the full candidate set, newest first. The order
	// is the canonical tie-break for equal match scores.
	ListCandidates(ctx context.Context, onlyActive bool) ([]domain.Opportunity, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Opportunity, bool, error)
}

type PgOpportunityRepository struct {
	pool *pgxpool.Pool
}

func NewPgOpportunityRepository(pool *pgxpool.Pool) *PgOpportunityRepository {
	return &PgOpportunityRepository{pool: pool}
}

const opportunityColumns = `id, title, opportunity_type, embedding, is_active, team_size_min, team_size_max, themes, technologies, participant_count, created_at`

func (r *PgOpportunityRepository) ListCandidates(ctx context.Context, onlyActive bool) ([]domain.Opportunity, error) {
	query := `
		SELECT ` + opportunityColumns + `
		FROM opportunities
		ORDER BY created_at DESC, id
	`
	if onlyActive {
		query = `
		SELECT ` + opportunityColumns + `
		FROM opportunities
		WHERE is_active = true
		ORDER BY created_at DESC, id
	`
	}

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var opportunities []domain.Opportunity
	for rows.Next() {
		opp, err := scanOpportunity(rows)
		if err != nil {
			return nil, err
		}
		opportunities = append(opportunities, opp)
	}
	return opportunities, rows.Err()
}

func (r *PgOpportunityRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Opportunity, bool, error) {
	const query = `
		SELECT ` + opportunityColumns + `
		FROM opportunities
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	opp, err := scanOpportunity(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Opportunity{}, false, nil
	}
	if err != nil {
		return domain.Opportunity{}, false, err
	}
	return opp, true, nil
}

func scanOpportunity(row pgx.Row) (domain.Opportunity, error) {
	var (
		opp       domain.Opportunity
		embedding *pgvector.Vector
	)
	err := row.Scan(
		&opp.ID,
		&opp.Title,
		&opp.Type,
		&embedding,
		&opp.IsActive,
		&opp.TeamSizeMin,
		&opp.TeamSizeMax,
		&opp.Themes,
		&opp.Technologies,
		&opp.ParticipantCount,
		&opp.CreatedAt,
	)
	if err != nil {
		return domain.Opportunity{}, err
	}
	opp.Embedding = embedding
	return opp, nil
}
