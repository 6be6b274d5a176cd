package integration

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/octobees/sdr-agent/internal/entity"
)

type fakeSender struct {
	sent []entity.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg entity.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func emailMessage(t *testing.T, email string) entity.Message {
	t.Helper()
	contact, err := entity.NewContact("Jane", "Doe", email, "CTO", "Acme")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return entity.NewMessage(contact, "Subject", "Body", entity.ChannelEmail)
}

func TestDispatcherRoutesByChannel(t *testing.T) {
	email := &fakeSender{}
	linkedin := &fakeSender{}
	dispatcher := NewDispatcher(email, linkedin)

	msg := emailMessage(t, "jane@acme.com")
	if err := dispatcher.Send(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	liMsg := msg
	liMsg.Channel = entity.ChannelLinkedIn
	if err := dispatcher.Send(context.Background(), liMsg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(email.sent) != 1 || len(linkedin.sent) != 1 {
		t.Fatalf("expected one message per channel, got email=%d linkedin=%d", len(email.sent), len(linkedin.sent))
	}

	badChannel := msg
	badChannel.Channel = "carrier-pigeon"
	if err := dispatcher.Send(context.Background(), badChannel); err == nil {
		t.Fatalf("expected error for unsupported channel")
	}
}

func TestSendBulk_OneFailureDoesNotAbortBatch(t *testing.T) {
	email := &fakeSender{err: errors.New("smtp rejected")}
	dispatcher := NewDispatcher(email, &fakeSender{})

	msgs := []entity.Message{emailMessage(t, "a@acme.com"), emailMessage(t, "b@acme.com")}
	liMsg := msgs[0]
	liMsg.Channel = entity.ChannelLinkedIn
	msgs = append(msgs, liMsg)

	summary := dispatcher.SendBulk(context.Background(), msgs)
	if summary.Sent != 1 || summary.Failed != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(summary.Errors) != 2 || !strings.Contains(summary.Errors[0], "a@acme.com") {
		t.Fatalf("unexpected errors: %v", summary.Errors)
	}
}

func TestActivityFromMessage(t *testing.T) {
	msg := emailMessage(t, "jane@acme.com")

	record := ActivityFromMessage(msg, "sent")
	if record.Kind != entity.ActivityEmailSent {
		t.Fatalf("expected email_sent kind, got %s", record.Kind)
	}
	if record.ContactEmail != "jane@acme.com" {
		t.Fatalf("unexpected contact email %q", record.ContactEmail)
	}
	if !strings.Contains(record.Description, "Sent cold email to Jane Doe") {
		t.Fatalf("unexpected description: %q", record.Description)
	}
	if record.Status != "sent" {
		t.Fatalf("expected sent status, got %q", record.Status)
	}

	liMsg := msg
	liMsg.Channel = entity.ChannelLinkedIn
	liRecord := ActivityFromMessage(liMsg, "")
	if liRecord.Kind != entity.ActivityLinkedInMessage {
		t.Fatalf("expected linkedin kind, got %s", liRecord.Kind)
	}
	if liRecord.Status != entity.ActivityStatusCompleted {
		t.Fatalf("expected completed status, got %q", liRecord.Status)
	}

	draftRecord := ActivityFromMessage(msg, "drafted")
	if !strings.Contains(draftRecord.Description, "Drafted outreach for Jane Doe") {
		t.Fatalf("unexpected drafted description: %q", draftRecord.Description)
	}
}

func TestActivityFromMessage_NoEmail(t *testing.T) {
	msg := emailMessage(t, "")
	record := ActivityFromMessage(msg, "sent")
	if record.ContactEmail != "unknown" {
		t.Fatalf("expected unknown contact email, got %q", record.ContactEmail)
	}
}
