package entity

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"
)

var emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-']+@[a-z0-9.-]+\.[a-z]{2,}$`)

const defaultPhoneRegion = "US"

// ErrInvalidEmail is returned when a contact email fails shape validation.
var ErrInvalidEmail = errors.New("invalid email address")

// Contact is a decision maker identified at a prospect company. Contacts are
// read-only after construction; the company back-reference is by name.
type Contact struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email,omitempty"`
	JobTitle    string `json:"job_title,omitempty"`
	Company     string `json:"company"`
	LinkedInURL string `json:"linkedin_url,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

// NewContact validates and constructs a Contact. An empty email is allowed
// (email-channel delivery will fail closed for such contacts); a malformed one
// is rejected rather than dropped. Phone numbers are normalized to E.164 when
// they parse, and discarded otherwise.
func NewContact(firstName, lastName, email, jobTitle, company string) (Contact, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return Contact{}, errors.New("contact first and last name are required")
	}
	if strings.TrimSpace(company) == "" {
		return Contact{}, errors.New("contact company is required")
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email != "" {
		if err := validateEmail(email); err != nil {
			return Contact{}, err
		}
	}

	return Contact{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		JobTitle:  strings.TrimSpace(jobTitle),
		Company:   strings.TrimSpace(company),
	}, nil
}

// FullName returns the contact's display name.
func (c Contact) FullName() string {
	return c.FirstName + " " + c.LastName
}

// WithPhone returns a copy of the contact carrying the normalized phone
// number, or the receiver unchanged when the number does not parse.
func (c Contact) WithPhone(raw string) Contact {
	if normalized := normalizePhone(raw, defaultPhoneRegion); normalized != "" {
		c.Phone = normalized
	}
	return c
}

// WithLinkedInURL returns a copy of the contact carrying the profile URL.
func (c Contact) WithLinkedInURL(raw string) Contact {
	c.LinkedInURL = strings.TrimSpace(raw)
	return c
}

func validateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	parts := strings.SplitN(email, "@", 2)
	domain := parts[1]
	if !isDomainValid(domain) {
		return fmt.Errorf("%w: bad domain %q", ErrInvalidEmail, domain)
	}
	if ascii, err := idna.Lookup.ToASCII(domain); err != nil || ascii == "" {
		return fmt.Errorf("%w: domain %q is not resolvable to ASCII", ErrInvalidEmail, domain)
	}
	return nil
}

func isDomainValid(domain string) bool {
	if strings.Count(domain, ".") == 0 {
		return false
	}
	for _, part := range strings.Split(domain, ".") {
		if part == "" || strings.HasPrefix(part, "-") || strings.HasSuffix(part, "-") {
			return false
		}
	}
	return true
}

func normalizePhone(raw, region string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	number, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return ""
	}
	if !phonenumbers.IsPossibleNumber(number) || !phonenumbers.IsValidNumber(number) {
		return ""
	}
	return phonenumbers.Format(number, phonenumbers.E164)
}
