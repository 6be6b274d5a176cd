package entity

import "time"

// ActivityKind enumerates the CRM activity types the pipeline records.
type ActivityKind string

const (
	ActivityEmailSent       ActivityKind = "email_sent"
	ActivityLinkedInMessage ActivityKind = "linkedin_message"
	ActivityCall            ActivityKind = "call"
	ActivityNote            ActivityKind = "note"
	ActivityTask            ActivityKind = "task"
)

// ActivityStatusCompleted is the default status for new activity records.
const ActivityStatusCompleted = "completed"

// ActivityRecord is an append-only CRM log entry. Records are never mutated
// after creation.
type ActivityRecord struct {
	ContactEmail string       `json:"contact_email"`
	Kind         ActivityKind `json:"kind"`
	Subject      string       `json:"subject"`
	Description  string       `json:"description"`
	Timestamp    time.Time    `json:"timestamp"`
	Status       string       `json:"status"`
}

// NewActivityRecord builds a timestamped record with the completed status.
func NewActivityRecord(contactEmail string, kind ActivityKind, subject, description string) ActivityRecord {
	if contactEmail == "" {
		contactEmail = "unknown"
	}
	return ActivityRecord{
		ContactEmail: contactEmail,
		Kind:         kind,
		Subject:      subject,
		Description:  description,
		Timestamp:    time.Now().UTC(),
		Status:       ActivityStatusCompleted,
	}
}
