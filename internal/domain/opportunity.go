package domain

import (
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
)

const (
	OpportunityTypeHackathon   = "hackathon"
	OpportunityTypeGrant       = "grant"
	OpportunityTypeAccelerator = "accelerator"
)

// Opportunity is a candidate for matching: a hackathon, grant or accelerator
// ingested by an external pipeline. Read-only from this package's perspective.
type Opportunity struct {
	ID               uuid.UUID        `json:"id"`
	Title            string           `json:"title"`
	Type             string           `json:"opportunity_type"`
	Embedding        *pgvector.Vector `json:"-"`
	IsActive         bool             `json:"is_active"`
	TeamSizeMin      *int             `json:"team_size_min,omitempty"`
	TeamSizeMax      *int             `json:"team_size_max,omitempty"`
	Themes           []string         `json:"themes"`
	Technologies     []string         `json:"technologies"`
	ParticipantCount *int             `json:"participant_count,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
}

// EmbeddingSlice returns the raw vector, or nil when no embedding is stored.
func (o Opportunity) EmbeddingSlice() []float32 {
	if o.Embedding == nil {
		return nil
	}
	return o.Embedding.Slice()
}

// Age reports how long ago the opportunity was ingested.
func (o Opportunity) Age(now time.Time) time.Duration {
	return now.Sub(o.CreatedAt)
}
