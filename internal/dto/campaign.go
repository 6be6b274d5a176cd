package dto

import (
	"time"

	"github.com/octobees/sdr-agent/internal/entity"
)

// ProfilePayload carries the ideal customer profile of a campaign request.
type ProfilePayload struct {
	Industry     string   `json:"industry"`
	MinHeadcount *int     `json:"min_headcount,omitempty"`
	MaxHeadcount *int     `json:"max_headcount,omitempty"`
	JobTitles    []string `json:"job_titles"`
	Geography    string   `json:"geography,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	RevenueRange string   `json:"revenue_range,omitempty"`
}

// ToProfile validates the payload and builds the domain profile.
func (p ProfilePayload) ToProfile() (entity.Profile, error) {
	profile, err := entity.NewProfile(p.Industry, p.MinHeadcount, p.MaxHeadcount, p.JobTitles)
	if err != nil {
		return entity.Profile{}, err
	}
	profile.Geography = p.Geography
	profile.Technologies = p.Technologies
	profile.RevenueRange = p.RevenueRange
	return profile, nil
}

// ProspectPayload identifies one company to process.
type ProspectPayload struct {
	Name    string `json:"name"`
	Website string `json:"website,omitempty"`
}

// RunCampaignRequest starts a batch pipeline run.
type RunCampaignRequest struct {
	Profile          ProfilePayload    `json:"profile"`
	ValueProposition string            `json:"value_proposition"`
	Prospects        []ProspectPayload `json:"prospects"`
	Send             bool              `json:"send"`
}

// ProcessProspectRequest runs the pipeline for a single company.
type ProcessProspectRequest struct {
	Profile          ProfilePayload  `json:"profile"`
	ValueProposition string          `json:"value_proposition"`
	Prospect         ProspectPayload `json:"prospect"`
	Send             bool            `json:"send"`
}

// CampaignSummaryPayload aggregates the result counts of a run.
type CampaignSummaryPayload struct {
	TotalProspects  int `json:"total_prospects"`
	Processed       int `json:"processed"`
	Skipped         int `json:"skipped"`
	TotalContacts   int `json:"total_contacts"`
	TotalMessages   int `json:"total_messages"`
	TotalEmailsSent int `json:"total_emails_sent"`
}

// CampaignResponse is the full outcome of a campaign run or lookup.
type CampaignResponse struct {
	ID        string                     `json:"id"`
	Send      bool                       `json:"send"`
	CreatedAt time.Time                  `json:"created_at"`
	Profile   ProfilePayload             `json:"profile"`
	Summary   CampaignSummaryPayload     `json:"summary"`
	Results   []*entity.ProcessingResult `json:"results"`
}

// ProspectResponse is the outcome of a single-prospect run.
type ProspectResponse struct {
	CampaignID string                   `json:"campaign_id"`
	Result     *entity.ProcessingResult `json:"result"`
}

// ReportResponse carries the rendered campaign report.
type ReportResponse struct {
	CampaignID string `json:"campaign_id"`
	Report     string `json:"report"`
}
