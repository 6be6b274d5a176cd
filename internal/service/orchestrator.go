package service

import (
	"context"
	"fmt"
	"log"

	"github.com/octobees/sdr-agent/internal/entity"
	"github.com/octobees/sdr-agent/internal/icp"
	"github.com/octobees/sdr-agent/internal/integration"
)

// fitThreshold is the minimum ICP fit score a company must reach before any
// outreach work happens. It is a fixed policy constant, not per-call
// configurable: it bounds drafting and CRM cost to qualified prospects.
const fitThreshold = 50

// maxTriggerContext caps how many trigger events are woven into a draft.
const maxTriggerContext = 2

// CompanyResearcher gathers company intelligence.
type CompanyResearcher interface {
	ResearchCompany(ctx context.Context, name, website string) (entity.Company, error)
	TriggerEvents(ctx context.Context, company *entity.Company) []string
	CompanyNews(ctx context.Context, company *entity.Company) []string
}

// ProfileMatcher scores companies against a profile and surfaces contacts.
type ProfileMatcher interface {
	AnalyzeFit(ctx context.Context, company entity.Company, profile entity.Profile) icp.FitAnalysis
	IdentifyDecisionMakers(ctx context.Context, company entity.Company, jobTitles []string) []entity.Contact
}

// MessageDrafter produces outreach copy for one contact.
type MessageDrafter interface {
	ColdEmail(ctx context.Context, contact entity.Contact, company entity.Company, valueProp string, triggerEvents []string) entity.Message
}

// MessageDispatcher delivers drafted messages.
type MessageDispatcher interface {
	SendBulk(ctx context.Context, msgs []entity.Message) integration.DispatchSummary
}

// CRM is the backend-neutral surface the pipeline logs into. Salesforce
// creates leads and tasks, HubSpot contacts and notes; the orchestrator does
// not care which.
type CRM interface {
	UpsertRecord(ctx context.Context, contact entity.Contact, company entity.Company) (string, error)
	LogActivity(ctx context.Context, activity entity.ActivityRecord, recordID string) error
}

// Prospect is one batch entry: a company name and an optional website.
type Prospect struct {
	Name    string `json:"name"`
	Website string `json:"website,omitempty"`
}

// Orchestrator runs the prospect pipeline: research, fit scoring, enrichment,
// contact identification, drafting, optional dispatch and CRM logging. The
// collaborators are long-lived and reused across prospects; execution is
// strictly sequential.
type Orchestrator struct {
	researcher CompanyResearcher
	matcher    ProfileMatcher
	drafter    MessageDrafter
	dispatcher MessageDispatcher
	crm        CRM
}

// NewOrchestrator wires the pipeline collaborators.
func NewOrchestrator(researcher CompanyResearcher, matcher ProfileMatcher, drafter MessageDrafter, dispatcher MessageDispatcher, crm CRM) *Orchestrator {
	return &Orchestrator{
		researcher: researcher,
		matcher:    matcher,
		drafter:    drafter,
		dispatcher: dispatcher,
		crm:        crm,
	}
}

// ProcessProspect runs one company through the full pipeline and always
// returns a result: a stage failure surfaces in the result's error list with
// the progress of earlier stages preserved, never as a returned error.
func (o *Orchestrator) ProcessProspect(ctx context.Context, companyName string, profile entity.Profile, valueProp, website string, send bool) *entity.ProcessingResult {
	result := entity.NewProcessingResult(companyName)
	log.Printf("processing prospect company=%q send=%t", companyName, send)

	// Step 1: research. The only hard abort in the pipeline.
	company, err := o.researcher.ResearchCompany(ctx, companyName, website)
	if err != nil {
		log.Printf("research company=%q failed: %v", companyName, err)
		result.RecordError(err.Error())
		return result
	}
	result.CompleteStep(entity.StepResearchCompany)

	// Step 2: ICP fit analysis.
	analysis := o.matcher.AnalyzeFit(ctx, company, profile)
	result.FitScore = analysis.FitScore
	result.FitReasoning = analysis.Reasoning
	result.CompleteStep(entity.StepAnalyzeICP)

	// Step 3: fit gate.
	if analysis.FitScore < fitThreshold {
		log.Printf("company=%q below fit threshold score=%d, skipping", companyName, analysis.FitScore)
		result.Skipped = true
		result.SkipReason = entity.SkipReasonLowFit
		return result
	}

	// Step 4: enrichment, best-effort.
	result.TriggerEvents = o.researcher.TriggerEvents(ctx, &company)
	result.CompleteStep(entity.StepIdentifyTriggers)

	result.CompanyNews = o.researcher.CompanyNews(ctx, &company)
	result.CompleteStep(entity.StepGatherNews)

	// Step 5: decision makers.
	contacts := o.matcher.IdentifyDecisionMakers(ctx, company, profile.JobTitles)
	result.ContactsIdentified = len(contacts)
	result.CompleteStep(entity.StepIdentifyContacts)

	if len(contacts) == 0 {
		log.Printf("company=%q produced no contacts", companyName)
		result.RecordError("No contacts identified")
		return result
	}

	// Step 6: one drafted message per contact.
	triggerContext := result.TriggerEvents
	if len(triggerContext) > maxTriggerContext {
		triggerContext = triggerContext[:maxTriggerContext]
	}
	messages := make([]entity.Message, 0, len(contacts))
	for _, contact := range contacts {
		messages = append(messages, o.drafter.ColdEmail(ctx, contact, company, valueProp, triggerContext))
	}
	result.MessagesGenerated = len(messages)
	result.CompleteStep(entity.StepGenerateMessages)

	// Step 7: dispatch, or stage previews for caller review. Delivery is
	// opt-in; staging is the default safety posture.
	activityStatus := "drafted"
	if send {
		summary := o.dispatcher.SendBulk(ctx, messages)
		result.EmailsSent = summary.Sent
		result.Errors = append(result.Errors, summary.Errors...)
		result.CompleteStep(entity.StepSendEmails)
		activityStatus = ""
	} else {
		log.Printf("company=%q staging %d messages without sending", companyName, len(messages))
		for _, msg := range messages {
			email := msg.Contact.Email
			if email == "" {
				email = "N/A"
			}
			result.Messages = append(result.Messages, entity.MessagePreview{
				To:      msg.Contact.FullName(),
				Email:   email,
				Subject: msg.Subject,
				Body:    msg.Body,
			})
		}
	}

	// Step 8: CRM logging, attempted for every contact regardless of whether
	// dispatch ran. Activity association is by exact email match, so two
	// contacts sharing an address are both logged against each message.
	crmFailures := 0
	for _, contact := range contacts {
		recordID, err := o.crm.UpsertRecord(ctx, contact, company)
		if err != nil {
			crmFailures++
			result.RecordError(fmt.Sprintf("crm upsert for %s failed: %v", contact.FullName(), err))
			continue
		}
		for _, msg := range messages {
			if msg.Contact.Email != contact.Email {
				continue
			}
			activity := integration.ActivityFromMessage(msg, activityStatus)
			if err := o.crm.LogActivity(ctx, activity, recordID); err != nil {
				crmFailures++
				result.RecordError(fmt.Sprintf("crm activity for %s failed: %v", contact.FullName(), err))
			}
		}
	}
	if crmFailures == 0 {
		result.CRMLogged = true
		result.CompleteStep(entity.StepLogCRM)
	}

	log.Printf("prospect complete company=%q score=%d contacts=%d sent=%d", companyName, result.FitScore, result.ContactsIdentified, result.EmailsSent)
	return result
}

// ProcessBatch runs prospects sequentially and returns one result per named
// prospect, in input order. Entries without a name are dropped from the
// output entirely; one prospect's failure never aborts the rest.
func (o *Orchestrator) ProcessBatch(ctx context.Context, prospects []Prospect, profile entity.Profile, valueProp string, send bool) []*entity.ProcessingResult {
	results := make([]*entity.ProcessingResult, 0, len(prospects))
	for _, prospect := range prospects {
		if prospect.Name == "" {
			log.Printf("skipping prospect without a name")
			continue
		}
		results = append(results, o.ProcessProspect(ctx, prospect.Name, profile, valueProp, prospect.Website, send))
	}
	return results
}
