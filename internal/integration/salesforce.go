package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/octobees/sdr-agent/internal/config"
	"github.com/octobees/sdr-agent/internal/entity"
)

// SalesforceClient upserts leads and logs tasks in Salesforce. Incomplete
// credentials put the client into demo mode: writes are logged and synthetic
// record IDs are returned so the rest of the pipeline behaves identically.
type SalesforceClient struct {
	client *http.Client
	cfg    config.SalesforceConfig
}

// NewSalesforceClient builds a Salesforce CRM client.
func NewSalesforceClient(client *http.Client, cfg config.SalesforceConfig) *SalesforceClient {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &SalesforceClient{client: client, cfg: cfg}
}

// DemoMode reports whether the client is operating without full credentials.
func (c *SalesforceClient) DemoMode() bool {
	return c.cfg.Username == "" || c.cfg.Password == "" || c.cfg.SecurityToken == ""
}

// UpsertRecord creates or updates a lead for the contact and returns its ID.
func (c *SalesforceClient) UpsertRecord(ctx context.Context, contact entity.Contact, company entity.Company) (string, error) {
	if c.DemoMode() {
		log.Printf("demo mode: would create salesforce lead contact=%q", contact.FullName())
		return demoRecordID("lead", contact), nil
	}

	fields := map[string]string{
		"FirstName":  contact.FirstName,
		"LastName":   contact.LastName,
		"Company":    contact.Company,
		"Title":      contact.JobTitle,
		"Email":      contact.Email,
		"Phone":      contact.Phone,
		"LeadSource": "AI SDR Agent",
	}
	if company.Industry != "" {
		fields["Industry"] = company.Industry
	}
	if company.Website != "" {
		fields["Website"] = company.Website
	}

	id, err := c.post(ctx, "/services/data/v59.0/sobjects/Lead", fields)
	if err != nil {
		return "", fmt.Errorf("create salesforce lead: %w", err)
	}
	return id, nil
}

// LogActivity appends a task describing the activity, associated with the
// lead when a record ID is known.
func (c *SalesforceClient) LogActivity(ctx context.Context, activity entity.ActivityRecord, recordID string) error {
	if c.DemoMode() {
		log.Printf("demo mode: would log salesforce activity kind=%s contact=%s", activity.Kind, activity.ContactEmail)
		return nil
	}

	fields := map[string]string{
		"Subject":      activity.Subject,
		"Description":  activity.Description,
		"Status":       activity.Status,
		"ActivityDate": activity.Timestamp.Format("2006-01-02"),
		"Type":         string(activity.Kind),
	}
	if recordID != "" {
		fields["WhoId"] = recordID
	}

	if _, err := c.post(ctx, "/services/data/v59.0/sobjects/Task", fields); err != nil {
		return fmt.Errorf("log salesforce activity: %w", err)
	}
	return nil
}

func (c *SalesforceClient) post(ctx context.Context, path string, fields map[string]string) (string, error) {
	body, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.SecurityToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return result.ID, nil
}

func demoRecordID(kind string, contact entity.Contact) string {
	suffix := contact.Email
	if suffix == "" {
		suffix = "noemail"
	}
	return "demo_" + kind + "_" + suffix
}
