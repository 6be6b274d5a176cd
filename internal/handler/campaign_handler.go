package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/octobees/sdr-agent/internal/dto"
	"github.com/octobees/sdr-agent/internal/entity"
	"github.com/octobees/sdr-agent/internal/repository"
	"github.com/octobees/sdr-agent/internal/service"
)

// CampaignHandler exposes the prospect pipeline over HTTP.
type CampaignHandler struct {
	campaigns *service.CampaignsService
}

// NewCampaignHandler constructs a CampaignHandler.
func NewCampaignHandler(campaigns *service.CampaignsService) *CampaignHandler {
	return &CampaignHandler{campaigns: campaigns}
}

// Run handles POST /campaigns requests: it processes the prospect list and
// returns every result with an aggregate summary.
func (h *CampaignHandler) Run(c echo.Context) error {
	var req dto.RunCampaignRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	profile, err := req.Profile.ToProfile()
	if err != nil {
		return Error(c, http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.ValueProposition) == "" {
		return Error(c, http.StatusBadRequest, "value_proposition is required")
	}
	if len(req.Prospects) == 0 {
		return Error(c, http.StatusBadRequest, "at least one prospect is required")
	}

	prospects := make([]service.Prospect, 0, len(req.Prospects))
	for _, p := range req.Prospects {
		prospects = append(prospects, service.Prospect{Name: strings.TrimSpace(p.Name), Website: p.Website})
	}

	campaign, results, err := h.campaigns.RunCampaign(c.Request().Context(), prospects, profile, req.ValueProposition, req.Send)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "unable to run campaign")
	}

	return Success(c, http.StatusCreated, "campaign processed", campaignResponse(campaign, results))
}

// RunProspect handles POST /campaigns/prospect requests for one company.
func (h *CampaignHandler) RunProspect(c echo.Context) error {
	var req dto.ProcessProspectRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	profile, err := req.Profile.ToProfile()
	if err != nil {
		return Error(c, http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.ValueProposition) == "" {
		return Error(c, http.StatusBadRequest, "value_proposition is required")
	}
	if strings.TrimSpace(req.Prospect.Name) == "" {
		return Error(c, http.StatusBadRequest, "prospect name is required")
	}

	prospect := service.Prospect{Name: strings.TrimSpace(req.Prospect.Name), Website: req.Prospect.Website}
	campaign, result, err := h.campaigns.RunProspect(c.Request().Context(), prospect, profile, req.ValueProposition, req.Send)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "unable to process prospect")
	}

	return Success(c, http.StatusCreated, "prospect processed", dto.ProspectResponse{
		CampaignID: campaign.ID.String(),
		Result:     result,
	})
}

// Get handles GET /campaigns/:id requests.
func (h *CampaignHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid campaign id")
	}

	campaign, results, err := h.campaigns.GetCampaign(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return Error(c, http.StatusNotFound, "campaign not found")
		}
		return Error(c, http.StatusInternalServerError, "unable to load campaign")
	}

	return Success(c, http.StatusOK, "campaign retrieved", campaignResponse(campaign, results))
}

// Report handles GET /campaigns/:id/report requests.
func (h *CampaignHandler) Report(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid campaign id")
	}

	report, err := h.campaigns.Report(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return Error(c, http.StatusNotFound, "campaign not found")
		}
		return Error(c, http.StatusInternalServerError, "unable to build report")
	}

	return Success(c, http.StatusOK, "report generated", dto.ReportResponse{
		CampaignID: id.String(),
		Report:     report,
	})
}

func campaignResponse(campaign *entity.Campaign, results []*entity.ProcessingResult) dto.CampaignResponse {
	summary := service.Summarize(results)
	if results == nil {
		results = []*entity.ProcessingResult{}
	}
	return dto.CampaignResponse{
		ID:        campaign.ID.String(),
		Send:      campaign.Send,
		CreatedAt: campaign.CreatedAt,
		Profile: dto.ProfilePayload{
			Industry:     campaign.Profile.Industry,
			MinHeadcount: campaign.Profile.MinHeadcount,
			MaxHeadcount: campaign.Profile.MaxHeadcount,
			JobTitles:    campaign.Profile.JobTitles,
			Geography:    campaign.Profile.Geography,
			Technologies: campaign.Profile.Technologies,
			RevenueRange: campaign.Profile.RevenueRange,
		},
		Summary: dto.CampaignSummaryPayload{
			TotalProspects:  summary.TotalProspects,
			Processed:       summary.Processed,
			Skipped:         summary.Skipped,
			TotalContacts:   summary.TotalContacts,
			TotalMessages:   summary.TotalMessages,
			TotalEmailsSent: summary.TotalEmailsSent,
		},
		Results: results,
	}
}
