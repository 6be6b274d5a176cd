package integration

import (
	"context"
	"fmt"
	"log"

	"github.com/octobees/sdr-agent/internal/entity"
)

// DispatchSummary reports the outcome of a bulk send.
type DispatchSummary struct {
	Sent   int      `json:"sent"`
	Failed int      `json:"failed"`
	Errors []string `json:"errors"`
}

// MessageSender delivers a single message on one channel.
type MessageSender interface {
	Send(ctx context.Context, msg entity.Message) error
}

// Dispatcher routes drafted messages to the sender matching their channel.
// One message's delivery failure never aborts the rest of the batch.
type Dispatcher struct {
	email    MessageSender
	linkedin MessageSender
}

// NewDispatcher wires channel senders. A nil linkedin sender falls back to
// the demo LinkedIn sender.
func NewDispatcher(email, linkedin MessageSender) *Dispatcher {
	if linkedin == nil {
		linkedin = LinkedInSender{}
	}
	return &Dispatcher{email: email, linkedin: linkedin}
}

// Send delivers one message via its channel's sender.
func (d *Dispatcher) Send(ctx context.Context, msg entity.Message) error {
	switch msg.Channel {
	case entity.ChannelEmail:
		return d.email.Send(ctx, msg)
	case entity.ChannelLinkedIn:
		return d.linkedin.Send(ctx, msg)
	default:
		return fmt.Errorf("unsupported channel %q", msg.Channel)
	}
}

// SendBulk delivers every message, accumulating per-message outcomes.
func (d *Dispatcher) SendBulk(ctx context.Context, msgs []entity.Message) DispatchSummary {
	summary := DispatchSummary{Errors: []string{}}
	for _, msg := range msgs {
		if err := d.Send(ctx, msg); err != nil {
			summary.Failed++
			summary.Errors = append(summary.Errors, fmt.Sprintf("failed to send to %s: %v", recipientLabel(msg), err))
			continue
		}
		summary.Sent++
	}
	log.Printf("bulk dispatch complete sent=%d failed=%d", summary.Sent, summary.Failed)
	return summary
}

// LinkedInSender is a demo-only sender: LinkedIn has no sanctioned messaging
// API for this use, so deliveries are logged and counted as successful.
type LinkedInSender struct{}

// Send logs the would-be LinkedIn delivery.
func (LinkedInSender) Send(_ context.Context, msg entity.Message) error {
	log.Printf("demo mode: would send linkedin message to=%s subject=%q", msg.Contact.FullName(), msg.Subject)
	return nil
}

// ActivityFromMessage builds the CRM activity record describing a message.
// The description carries the full drafted content so unsent drafts remain
// auditable in the CRM.
func ActivityFromMessage(msg entity.Message, status string) entity.ActivityRecord {
	kind := entity.ActivityEmailSent
	verb := "Sent cold email to"
	if msg.Channel == entity.ChannelLinkedIn {
		kind = entity.ActivityLinkedInMessage
		verb = "Sent LinkedIn message to"
	}
	if status == "drafted" {
		verb = "Drafted outreach for"
	}

	description := fmt.Sprintf("%s %s\n\nSubject: %s\n\nBody:\n%s", verb, msg.Contact.FullName(), msg.Subject, msg.Body)
	record := entity.NewActivityRecord(msg.Contact.Email, kind, msg.Subject, description)
	if status != "" && status != entity.ActivityStatusCompleted {
		record.Status = status
	}
	return record
}

func recipientLabel(msg entity.Message) string {
	if msg.Contact.Email != "" {
		return msg.Contact.Email
	}
	return msg.Contact.FullName()
}
