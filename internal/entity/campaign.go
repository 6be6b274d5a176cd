package entity

import (
	"time"

	"github.com/google/uuid"
)

// Campaign is one persisted pipeline run: the profile and value proposition it
// ran with, plus the per-prospect results stored alongside it.
type Campaign struct {
	ID               uuid.UUID `json:"id"`
	ValueProposition string    `json:"value_proposition"`
	Profile          Profile   `json:"profile"`
	Send             bool      `json:"send"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewCampaign starts a campaign record for the given run parameters.
func NewCampaign(profile Profile, valueProposition string, send bool) *Campaign {
	return &Campaign{
		ID:               uuid.New(),
		ValueProposition: valueProposition,
		Profile:          profile,
		Send:             send,
		CreatedAt:        time.Now().UTC(),
	}
}
