package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"opmatch/internal/domain"
)

type ProfileRepository interface {
	// GetByID returns the profile, or found=false when no row exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Profile, bool, error)
	SetLastMatchComputation(ctx context.Context, id uuid.UUID, at time.Time) error
}

type PgProfileRepository struct {
	pool *pgxpool.Pool
}

func NewPgProfileRepository(pool *pgxpool.Pool) *PgProfileRepository {
	return &PgProfileRepository{pool: pool}
}

func (r *PgProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Profile, bool, error) {
	const query = `
		SELECT id, embedding, team_size, funding_stage, interests, tech_stack, last_match_computation, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`
	var (
		p            domain.Profile
		embedding    *pgvector.Vector
		fundingStage *string
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&embedding,
		&p.TeamSize,
		&fundingStage,
		&p.Interests,
		&p.TechStack,
		&p.LastMatchComputation,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Profile{}, false, nil
	}
	if err != nil {
		return domain.Profile{}, false, err
	}
	p.Embedding = embedding
	if fundingStage != nil {
		p.FundingStage = *fundingStage
	}
	return p, true, nil
}

func (r *PgProfileRepository) SetLastMatchComputation(ctx context.Context, id uuid.UUID, at time.Time) error {
	const query = `
		UPDATE profiles
		SET last_match_computation = $2, updated_at = $2
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, id, at)
	return err
}
