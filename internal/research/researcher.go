package research

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/octobees/sdr-agent/internal/entity"
	"github.com/octobees/sdr-agent/internal/llm"
)

// Researcher gathers company intelligence: a base profile, trigger events and
// recent news. All lookups are best-effort; a model failure degrades to a bare
// Company or an empty list instead of propagating.
type Researcher struct {
	llm        llm.Completer
	newsWorker NewsPoster
}

// NewsPoster posts JSON payloads to the optional news worker service.
type NewsPoster interface {
	PostJSON(ctx context.Context, path string, payload any) (map[string]any, error)
}

// NewResearcher wires a researcher. newsWorker may be nil, in which case news
// is sourced from the model like everything else.
func NewResearcher(completer llm.Completer, newsWorker NewsPoster) *Researcher {
	return &Researcher{llm: completer, newsWorker: newsWorker}
}

type companyResearch struct {
	Industry    string `json:"industry"`
	Size        int    `json:"size"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// ResearchCompany builds a Company record for the given name. On model
// failure it returns a bare record carrying only the inputs; an error is
// returned only when the request itself is unusable.
func (r *Researcher) ResearchCompany(ctx context.Context, name, website string) (entity.Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return entity.Company{}, fmt.Errorf("research: company name is required")
	}

	prompt := fmt.Sprintf(`Research and provide information about the company: %s
%s
Provide the following information in JSON format:
- industry: Industry sector
- size: Approximate number of employees (integer)
- location: Headquarters location
- description: Brief company description (1-2 sentences)

Be realistic and if you don't know, use your best judgment based on the company name.`,
		name, websiteLine(website))

	var data companyResearch
	err := r.llm.CompleteJSON(ctx, llm.Request{
		System:      "You are a business research analyst. Respond in valid JSON format.",
		User:        prompt,
		Temperature: 0.5,
	}, &data)
	if err != nil {
		log.Printf("research company=%q degraded to bare record: %v", name, err)
		return entity.Company{Name: name, Website: website}, nil
	}

	return entity.Company{
		Name:        name,
		Website:     website,
		Industry:    data.Industry,
		Headcount:   data.Size,
		Location:    data.Location,
		Description: data.Description,
	}, nil
}

// TriggerEvents asks for 2-3 sales-relevant events and attaches them to the
// company. Failures return an empty list.
func (r *Researcher) TriggerEvents(ctx context.Context, company *entity.Company) []string {
	prompt := fmt.Sprintf(`Based on the company information below, suggest 2-3 realistic trigger events that would
be good sales opportunities (e.g., funding rounds, new product launches, expansions,
leadership changes, acquisitions).

Company: %s
Industry: %s
Description: %s

Provide a JSON object with a "trigger_events" array of strings.
Each event should be a brief, realistic statement.`,
		company.Name, orUnknown(company.Industry), orDefault(company.Description, "N/A"))

	var data struct {
		TriggerEvents []string `json:"trigger_events"`
	}
	err := r.llm.CompleteJSON(ctx, llm.Request{
		System:      "You are a business intelligence analyst. Respond in valid JSON format.",
		User:        prompt,
		Temperature: 0.7,
	}, &data)
	if err != nil {
		log.Printf("trigger events company=%q failed: %v", company.Name, err)
		return nil
	}

	company.TriggerEvents = data.TriggerEvents
	return data.TriggerEvents
}

// CompanyNews gathers recent headlines, preferring the news worker when one is
// configured. Failures return an empty list.
func (r *Researcher) CompanyNews(ctx context.Context, company *entity.Company) []string {
	if r.newsWorker != nil {
		if headlines := r.workerNews(ctx, company); len(headlines) > 0 {
			company.RecentNews = headlines
			return headlines
		}
	}

	prompt := fmt.Sprintf(`Generate 2-3 realistic recent news headlines about %s,
a company in the %s industry.

Provide a JSON object with a "news" array of strings.
Each headline should be professional and realistic.`,
		company.Name, orDefault(company.Industry, "technology"))

	var data struct {
		News []string `json:"news"`
	}
	err := r.llm.CompleteJSON(ctx, llm.Request{
		System:      "You are a business news analyst. Respond in valid JSON format.",
		User:        prompt,
		Temperature: 0.7,
	}, &data)
	if err != nil {
		log.Printf("company news company=%q failed: %v", company.Name, err)
		return nil
	}

	company.RecentNews = data.News
	return data.News
}

func (r *Researcher) workerNews(ctx context.Context, company *entity.Company) []string {
	payload := map[string]any{
		"company":  company.Name,
		"industry": company.Industry,
	}
	data, err := r.newsWorker.PostJSON(ctx, "/news", payload)
	if err != nil {
		log.Printf("news worker company=%q failed, falling back to model: %v", company.Name, err)
		return nil
	}

	raw, ok := data["headlines"].([]any)
	if !ok {
		return nil
	}
	headlines := make([]string, 0, len(raw))
	for _, item := range raw {
		if headline, ok := item.(string); ok && strings.TrimSpace(headline) != "" {
			headlines = append(headlines, headline)
		}
	}
	return headlines
}

func websiteLine(website string) string {
	if strings.TrimSpace(website) == "" {
		return ""
	}
	return "Website: " + website
}

func orUnknown(value string) string {
	return orDefault(value, "Unknown")
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
