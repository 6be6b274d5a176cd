package service

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/octobees/sdr-agent/internal/entity"
	"github.com/octobees/sdr-agent/internal/repository"
)

// ProspectRunner runs prospects through the pipeline. Satisfied by
// *Orchestrator; faked in tests.
type ProspectRunner interface {
	ProcessProspect(ctx context.Context, companyName string, profile entity.Profile, valueProp, website string, send bool) *entity.ProcessingResult
	ProcessBatch(ctx context.Context, prospects []Prospect, profile entity.Profile, valueProp string, send bool) []*entity.ProcessingResult
}

// CampaignsService runs campaigns and persists their outcomes.
type CampaignsService struct {
	runner ProspectRunner
	repo   repository.CampaignsRepository
}

// NewCampaignsService creates a new instance of CampaignsService.
func NewCampaignsService(runner ProspectRunner, repo repository.CampaignsRepository) *CampaignsService {
	return &CampaignsService{runner: runner, repo: repo}
}

// RunCampaign processes the prospect list and persists the campaign with its
// results. Persistence is best-effort once the pipeline has run: emails may
// already be sent, so a storage failure is logged rather than discarding the
// outcome.
func (s *CampaignsService) RunCampaign(ctx context.Context, prospects []Prospect, profile entity.Profile, valueProp string, send bool) (*entity.Campaign, []*entity.ProcessingResult, error) {
	campaign := entity.NewCampaign(profile, valueProp, send)
	if err := s.repo.Create(ctx, campaign); err != nil {
		return nil, nil, err
	}

	results := s.runner.ProcessBatch(ctx, prospects, profile, valueProp, send)

	if err := s.repo.SaveResults(ctx, campaign.ID, results); err != nil {
		log.Printf("save results campaign=%s failed: %v", campaign.ID, err)
	}

	return campaign, results, nil
}

// RunProspect processes a single prospect as a one-entry campaign.
func (s *CampaignsService) RunProspect(ctx context.Context, prospect Prospect, profile entity.Profile, valueProp string, send bool) (*entity.Campaign, *entity.ProcessingResult, error) {
	campaign := entity.NewCampaign(profile, valueProp, send)
	if err := s.repo.Create(ctx, campaign); err != nil {
		return nil, nil, err
	}

	result := s.runner.ProcessProspect(ctx, prospect.Name, profile, valueProp, prospect.Website, send)

	if err := s.repo.SaveResults(ctx, campaign.ID, []*entity.ProcessingResult{result}); err != nil {
		log.Printf("save results campaign=%s failed: %v", campaign.ID, err)
	}

	return campaign, result, nil
}

// GetCampaign returns a campaign with its stored results.
func (s *CampaignsService) GetCampaign(ctx context.Context, id uuid.UUID) (*entity.Campaign, []*entity.ProcessingResult, error) {
	campaign, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	results, err := s.repo.ListResults(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return campaign, results, nil
}

// Report renders the formatted campaign report from stored results. The
// campaign's creation time stamps the report, so repeated requests for the
// same campaign return identical text.
func (s *CampaignsService) Report(ctx context.Context, id uuid.UUID) (string, error) {
	campaign, err := s.repo.Get(ctx, id)
	if err != nil {
		return "", err
	}
	results, err := s.repo.ListResults(ctx, id)
	if err != nil {
		return "", err
	}
	return CampaignReport(results, campaign.CreatedAt), nil
}
