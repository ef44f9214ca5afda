package domain

import (
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
)

// Profile is the matchable view of a user. The embedding is produced by an
// external pipeline whenever the relevant attributes change; this package only
// consumes it.
type Profile struct {
	ID                   uuid.UUID        `json:"id"`
	Embedding            *pgvector.Vector `json:"-"`
	TeamSize             int              `json:"team_size"`
	FundingStage         string           `json:"funding_stage,omitempty"`
	Interests            []string         `json:"interests"`
	TechStack            []string         `json:"tech_stack"`
	LastMatchComputation *time.Time       `json:"last_match_computation,omitempty"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

// EffectiveTeamSize treats an unset team size as a solo founder.
func (p Profile) EffectiveTeamSize() int {
	if p.TeamSize <= 0 {
		return 1
	}
	return p.TeamSize
}

// EmbeddingSlice returns the raw vector, or nil when no embedding is stored.
func (p Profile) EmbeddingSlice() []float32 {
	if p.Embedding == nil {
		return nil
	}
	return p.Embedding.Slice()
}
