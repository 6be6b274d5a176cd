package entity

import (
	"time"

	"github.com/google/uuid"
)

// Pipeline step names recorded in ProcessingResult.StepsCompleted, in the
// order the orchestrator runs them.
const (
	StepResearchCompany  = "research_company"
	StepAnalyzeICP       = "analyze_icp"
	StepIdentifyTriggers = "identify_triggers"
	StepGatherNews       = "gather_news"
	StepIdentifyContacts = "identify_contacts"
	StepGenerateMessages = "generate_messages"
	StepSendEmails       = "send_emails"
	StepLogCRM           = "log_crm"
)

// SkipReasonLowFit is recorded when the fit gate stops a prospect.
const SkipReasonLowFit = "Low ICP fit score"

// MessagePreview exposes a drafted-but-unsent message for caller review.
type MessagePreview struct {
	To      string `json:"to"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ProcessingResult accumulates the outcome of one prospect's run through the
// pipeline. Partial progress is always visible: a stage failure leaves the
// counts and completed steps of earlier stages intact.
type ProcessingResult struct {
	ID                 uuid.UUID        `json:"id"`
	Company            string           `json:"company"`
	Timestamp          time.Time        `json:"timestamp"`
	StepsCompleted     []string         `json:"steps_completed"`
	FitScore           int              `json:"fit_score"`
	FitReasoning       string           `json:"fit_reasoning,omitempty"`
	TriggerEvents      []string         `json:"trigger_events,omitempty"`
	CompanyNews        []string         `json:"company_news,omitempty"`
	ContactsIdentified int              `json:"contacts_identified"`
	MessagesGenerated  int              `json:"messages_generated"`
	EmailsSent         int              `json:"emails_sent"`
	CRMLogged          bool             `json:"crm_logged"`
	Skipped            bool             `json:"skipped"`
	SkipReason         string           `json:"skip_reason,omitempty"`
	Errors             []string         `json:"errors"`
	Messages           []MessagePreview `json:"messages,omitempty"`
}

// NewProcessingResult starts an empty result for the named company.
func NewProcessingResult(company string) *ProcessingResult {
	return &ProcessingResult{
		ID:             uuid.New(),
		Company:        company,
		Timestamp:      time.Now().UTC(),
		StepsCompleted: []string{},
		Errors:         []string{},
	}
}

// CompleteStep appends a step name to the ordered completion log.
func (r *ProcessingResult) CompleteStep(step string) {
	r.StepsCompleted = append(r.StepsCompleted, step)
}

// RecordError appends an error message without aborting anything.
func (r *ProcessingResult) RecordError(msg string) {
	r.Errors = append(r.Errors, msg)
}
