package icp

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/octobees/sdr-agent/internal/entity"
	"github.com/octobees/sdr-agent/internal/llm"
)

// Identifier scores companies against an ideal customer profile and surfaces
// likely decision makers.
type Identifier struct {
	llm llm.Completer
}

// NewIdentifier wires an identifier on top of a completion client.
func NewIdentifier(completer llm.Completer) *Identifier {
	return &Identifier{llm: completer}
}

// FitAnalysis is the scored outcome of comparing a company to a profile.
type FitAnalysis struct {
	FitScore       int    `json:"fit_score"`
	Reasoning      string `json:"reasoning"`
	Recommendation string `json:"recommendation"`
}

// AnalyzeFit scores how well the company matches the profile. A model failure
// or schema violation falls back to score zero with a manual-review
// recommendation; it never propagates an error.
func (i *Identifier) AnalyzeFit(ctx context.Context, company entity.Company, profile entity.Profile) FitAnalysis {
	prompt := fmt.Sprintf(`You are an expert sales analyst. Analyze if the following company matches the ideal customer profile.

Company Information:
- Name: %s
- Industry: %s
- Size: %s employees
- Location: %s
- Description: %s

Ideal Customer Profile:
- Target Industry: %s
- Company Size: %s - %s employees
- Geography: %s
- Technologies: %s

Provide a fit score (0-100) and brief reasoning for the score.
Format your response as JSON with keys: "fit_score" (integer), "reasoning" (string), "recommendation" (string).`,
		company.Name,
		orAny(company.Industry, "Unknown"),
		headcountLabel(company.Headcount),
		orAny(company.Location, "Unknown"),
		orAny(company.Description, "Not available"),
		profile.Industry,
		boundLabel(profile.MinHeadcount),
		boundLabel(profile.MaxHeadcount),
		orAny(profile.Geography, "Any"),
		listLabel(profile.Technologies),
	)

	var analysis FitAnalysis
	err := i.llm.CompleteJSON(ctx, llm.Request{
		System:      "You are a sales analyst expert. Always respond in valid JSON format.",
		User:        prompt,
		Temperature: 0.3,
	}, &analysis)
	if err != nil {
		log.Printf("icp analysis company=%q failed: %v", company.Name, err)
		return FitAnalysis{
			FitScore:       0,
			Reasoning:      fmt.Sprintf("Error during analysis: %v", err),
			Recommendation: "Manual review required",
		}
	}

	if analysis.FitScore < 0 {
		analysis.FitScore = 0
	}
	if analysis.FitScore > 100 {
		analysis.FitScore = 100
	}
	return analysis
}

type candidate struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	JobTitle    string `json:"job_title"`
	Email       string `json:"email"`
	LinkedInURL string `json:"linkedin_url"`
	Phone       string `json:"phone"`
}

// IdentifyDecisionMakers surfaces candidate contacts at the company for the
// given job titles. Candidates that fail contact validation (malformed email)
// are dropped here rather than passed downstream; a model failure yields an
// empty list.
func (i *Identifier) IdentifyDecisionMakers(ctx context.Context, company entity.Company, jobTitles []string) []entity.Contact {
	prompt := fmt.Sprintf(`Based on the company '%s' in the %s industry,
suggest 3 typical decision-maker contacts with the following job titles: %s.

Provide realistic example names and titles. Format as JSON object with a "contacts" array; each entry has keys:
"first_name", "last_name", "job_title", "email", "linkedin_url".`,
		company.Name, orAny(company.Industry, "unknown"), strings.Join(jobTitles, ", "))

	var data struct {
		Contacts []candidate `json:"contacts"`
	}
	err := i.llm.CompleteJSON(ctx, llm.Request{
		System:      "You are a B2B sales expert. Respond in valid JSON format.",
		User:        prompt,
		Temperature: 0.7,
	}, &data)
	if err != nil {
		log.Printf("decision makers company=%q failed: %v", company.Name, err)
		return nil
	}

	contacts := make([]entity.Contact, 0, len(data.Contacts))
	for _, c := range data.Contacts {
		contact, err := entity.NewContact(c.FirstName, c.LastName, c.Email, c.JobTitle, company.Name)
		if err != nil {
			log.Printf("decision makers company=%q dropped candidate %s %s: %v", company.Name, c.FirstName, c.LastName, err)
			continue
		}
		contact = contact.WithLinkedInURL(c.LinkedInURL).WithPhone(c.Phone)
		contacts = append(contacts, contact)
	}
	return contacts
}

func headcountLabel(size int) string {
	if size <= 0 {
		return "Unknown"
	}
	return fmt.Sprintf("%d", size)
}

func boundLabel(bound *int) string {
	if bound == nil {
		return "Any"
	}
	return fmt.Sprintf("%d", *bound)
}

func listLabel(values []string) string {
	if len(values) == 0 {
		return "Any"
	}
	return strings.Join(values, ", ")
}

func orAny(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
