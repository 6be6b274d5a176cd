package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/octobees/sdr-agent/internal/entity"
)

// CampaignSummary aggregates a batch of processing results.
type CampaignSummary struct {
	TotalProspects  int `json:"total_prospects"`
	Processed       int `json:"processed"`
	Skipped         int `json:"skipped"`
	TotalContacts   int `json:"total_contacts"`
	TotalMessages   int `json:"total_messages"`
	TotalEmailsSent int `json:"total_emails_sent"`
}

// Summarize is a pure aggregation over a result list. Processed plus skipped
// always equals the total.
func Summarize(results []*entity.ProcessingResult) CampaignSummary {
	summary := CampaignSummary{TotalProspects: len(results)}
	for _, result := range results {
		if result.Skipped {
			summary.Skipped++
		} else {
			summary.Processed++
		}
		summary.TotalContacts += result.ContactsIdentified
		summary.TotalMessages += result.MessagesGenerated
		summary.TotalEmailsSent += result.EmailsSent
	}
	return summary
}

// CampaignReport renders a human-readable summary of a campaign run. The
// caller supplies the generation timestamp, so the same result list and
// timestamp always render identical text.
func CampaignReport(results []*entity.ProcessingResult, generatedAt time.Time) string {
	summary := Summarize(results)

	var b strings.Builder
	b.WriteString("\nSDR Campaign Report\n")
	b.WriteString("==================\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", generatedAt.UTC().Format("2006-01-02 15:04:05"))
	b.WriteString("Summary:\n")
	b.WriteString("--------\n")
	fmt.Fprintf(&b, "Total Prospects: %d\n", summary.TotalProspects)
	fmt.Fprintf(&b, "Processed: %d\n", summary.Processed)
	fmt.Fprintf(&b, "Skipped (Low ICP Fit): %d\n", summary.Skipped)
	fmt.Fprintf(&b, "Total Contacts Identified: %d\n", summary.TotalContacts)
	fmt.Fprintf(&b, "Total Messages Generated: %d\n", summary.TotalMessages)
	fmt.Fprintf(&b, "Total Emails Sent: %d\n\n", summary.TotalEmailsSent)
	b.WriteString("Prospect Details:\n")
	b.WriteString("----------------\n")

	for _, result := range results {
		fmt.Fprintf(&b, "\n%s:\n", result.Company)
		fmt.Fprintf(&b, "  ICP Fit Score: %d\n", result.FitScore)
		fmt.Fprintf(&b, "  Contacts: %d\n", result.ContactsIdentified)
		fmt.Fprintf(&b, "  Messages: %d\n", result.MessagesGenerated)
		if result.Skipped {
			reason := result.SkipReason
			if reason == "" {
				reason = "Unknown"
			}
			fmt.Fprintf(&b, "  Status: SKIPPED - %s\n", reason)
		} else {
			b.WriteString("  Status: PROCESSED\n")
		}
	}

	return b.String()
}
