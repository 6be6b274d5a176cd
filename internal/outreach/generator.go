package outreach

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/octobees/sdr-agent/internal/entity"
	"github.com/octobees/sdr-agent/internal/llm"
)

// Generator drafts personalized outreach copy. Drafting never fails hard: a
// model failure or schema violation produces a deterministic fallback draft so
// the pipeline can keep moving.
type Generator struct {
	llm        llm.Completer
	senderName string
	senderOrg  string
}

// NewGenerator wires a generator. senderName and senderOrg appear in fallback
// drafts and sign-offs.
func NewGenerator(completer llm.Completer, senderName, senderOrg string) *Generator {
	return &Generator{llm: completer, senderName: senderName, senderOrg: senderOrg}
}

type draft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ColdEmail drafts a personalized cold email, weaving in up to the provided
// trigger events.
func (g *Generator) ColdEmail(ctx context.Context, contact entity.Contact, company entity.Company, valueProp string, triggerEvents []string) entity.Message {
	triggerContext := ""
	if len(triggerEvents) > 0 {
		lines := make([]string, 0, len(triggerEvents))
		for _, event := range triggerEvents {
			lines = append(lines, "- "+event)
		}
		triggerContext = "\n\nRecent company developments:\n" + strings.Join(lines, "\n")
	}

	prompt := fmt.Sprintf(`You are an expert sales development representative. Write a highly personalized cold email.

Contact Information:
- Name: %s
- Title: %s
- Company: %s

Company Information:
- Industry: %s
- Description: %s%s

Value Proposition:
%s

Requirements:
1. Keep it concise (150-200 words max)
2. Reference specific trigger events or company context if available
3. Focus on value, not features
4. Include a clear, low-friction call-to-action
5. Professional but conversational tone
6. Avoid hype or overselling

Provide your response as JSON with keys:
- "subject": Email subject line (compelling, under 50 characters)
- "body": Email body (personalized, value-focused)`,
		contact.FullName(),
		orDefault(contact.JobTitle, "Decision Maker"),
		contact.Company,
		orDefault(company.Industry, "Unknown"),
		orDefault(company.Description, "N/A"),
		triggerContext,
		valueProp,
	)

	var d draft
	err := g.llm.CompleteJSON(ctx, llm.Request{
		System:      "You are an expert B2B sales development representative. Respond in valid JSON format.",
		User:        prompt,
		Temperature: 0.7,
	}, &d)
	if err != nil {
		log.Printf("cold email draft contact=%q failed, using fallback: %v", contact.FullName(), err)
		return g.fallback(contact, "Quick question", valueProp, entity.ChannelEmail)
	}

	return entity.NewMessage(contact, orDefault(d.Subject, "Quick question"), d.Body, entity.ChannelEmail)
}

// LinkedInMessage drafts a brief connection note for the contact.
func (g *Generator) LinkedInMessage(ctx context.Context, contact entity.Contact, company entity.Company, valueProp string) entity.Message {
	prompt := fmt.Sprintf(`You are an expert at LinkedIn networking. Write a brief, personalized LinkedIn connection message.

Contact Information:
- Name: %s
- Title: %s
- Company: %s

Company Information:
- Industry: %s

Value Proposition:
%s

Requirements:
1. Keep it very brief (under 300 characters for connection request OR under 200 words for InMail)
2. Be genuine and professional
3. Reference their role or company
4. Soft value mention without being salesy
5. Create curiosity

Provide your response as JSON with keys:
- "subject": Message subject (for InMail, under 40 characters)
- "body": Message body (brief and personalized)`,
		contact.FullName(),
		orDefault(contact.JobTitle, "Professional"),
		contact.Company,
		orDefault(company.Industry, "Unknown"),
		valueProp,
	)

	var d draft
	err := g.llm.CompleteJSON(ctx, llm.Request{
		System:      "You are a LinkedIn networking expert. Respond in valid JSON format.",
		User:        prompt,
		Temperature: 0.7,
	}, &d)
	if err != nil {
		log.Printf("linkedin draft contact=%q failed, using fallback: %v", contact.FullName(), err)
		return g.fallback(contact, "Let's connect", valueProp, entity.ChannelLinkedIn)
	}

	return entity.NewMessage(contact, orDefault(d.Subject, "Let's connect"), d.Body, entity.ChannelLinkedIn)
}

// FollowUp drafts a no-response follow-up referencing the previous message.
func (g *Generator) FollowUp(ctx context.Context, contact entity.Contact, previousBody string, daysElapsed int) entity.Message {
	prompt := fmt.Sprintf(`Generate a brief follow-up email for a cold outreach that received no response.

Contact: %s
Days since last contact: %d

Previous message:
%s

Requirements:
1. Keep it very brief (under 100 words)
2. Add new value or insight
3. Make it easy to respond
4. Don't be pushy
5. Consider timing (adjust tone based on days passed)

Provide JSON with keys: "subject", "body"`,
		contact.FullName(), daysElapsed, previousBody)

	var d draft
	err := g.llm.CompleteJSON(ctx, llm.Request{
		System:      "You are a sales follow-up expert. Respond in valid JSON format.",
		User:        prompt,
		Temperature: 0.7,
	}, &d)
	if err != nil {
		log.Printf("follow-up draft contact=%q failed, using fallback: %v", contact.FullName(), err)
		return g.fallback(contact, "Following up", "", entity.ChannelEmail)
	}

	return entity.NewMessage(contact, orDefault(d.Subject, "Following up"), d.Body, entity.ChannelEmail)
}

// fallback produces a minimal deterministic draft when the model cannot.
func (g *Generator) fallback(contact entity.Contact, subject, valueProp string, channel entity.Channel) entity.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", contact.FirstName)
	if valueProp != "" {
		fmt.Fprintf(&b, "%s\n\n", valueProp)
	}
	b.WriteString("Would you be open to a short conversation?\n\n")
	fmt.Fprintf(&b, "Best,\n%s\n%s\n", g.senderName, g.senderOrg)
	return entity.NewMessage(contact, subject, b.String(), channel)
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
