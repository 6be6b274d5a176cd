package entity

import "time"

// Channel identifies the delivery medium for an outreach message.
type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelLinkedIn Channel = "linkedin"
)

// Message is a drafted outreach message. Immutable once generated.
type Message struct {
	Contact     Contact   `json:"contact"`
	Subject     string    `json:"subject"`
	Body        string    `json:"body"`
	Channel     Channel   `json:"channel"`
	GeneratedAt time.Time `json:"generated_at"`
}

// NewMessage stamps a drafted message with its creation time.
func NewMessage(contact Contact, subject, body string, channel Channel) Message {
	return Message{
		Contact:     contact,
		Subject:     subject,
		Body:        body,
		Channel:     channel,
		GeneratedAt: time.Now().UTC(),
	}
}
