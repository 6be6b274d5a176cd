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

// HubSpotClient upserts contacts and logs notes in HubSpot. A missing API key
// puts the client into demo mode, mirroring the Salesforce client.
type HubSpotClient struct {
	client *http.Client
	cfg    config.HubSpotConfig
}

// NewHubSpotClient builds a HubSpot CRM client.
func NewHubSpotClient(client *http.Client, cfg config.HubSpotConfig) *HubSpotClient {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &HubSpotClient{client: client, cfg: cfg}
}

// DemoMode reports whether the client is operating without credentials.
func (c *HubSpotClient) DemoMode() bool {
	return c.cfg.APIKey == ""
}

// UpsertRecord creates or updates a contact and returns its record ID.
func (c *HubSpotClient) UpsertRecord(ctx context.Context, contact entity.Contact, company entity.Company) (string, error) {
	if c.DemoMode() {
		log.Printf("demo mode: would create hubspot contact contact=%q", contact.FullName())
		return demoRecordID("contact", contact), nil
	}

	properties := map[string]string{
		"firstname": contact.FirstName,
		"lastname":  contact.LastName,
		"email":     contact.Email,
		"jobtitle":  contact.JobTitle,
		"company":   contact.Company,
		"phone":     contact.Phone,
	}
	if company.Industry != "" {
		properties["industry"] = company.Industry
	}
	if company.Website != "" {
		properties["website"] = company.Website
	}

	id, err := c.post(ctx, "/crm/v3/objects/contacts", map[string]any{"properties": properties})
	if err != nil {
		return "", fmt.Errorf("create hubspot contact: %w", err)
	}
	return id, nil
}

// LogActivity appends a note describing the activity, associated with the
// contact when a record ID is known.
func (c *HubSpotClient) LogActivity(ctx context.Context, activity entity.ActivityRecord, recordID string) error {
	if c.DemoMode() {
		log.Printf("demo mode: would log hubspot activity kind=%s contact=%s", activity.Kind, activity.ContactEmail)
		return nil
	}

	payload := map[string]any{
		"properties": map[string]string{
			"hs_note_body":     activity.Description,
			"hs_timestamp":     activity.Timestamp.Format(time.RFC3339),
			"hs_activity_type": string(activity.Kind),
		},
	}
	if recordID != "" {
		payload["associations"] = []map[string]any{
			{"to": map[string]string{"id": recordID}},
		}
	}

	if _, err := c.post(ctx, "/crm/v3/objects/notes", payload); err != nil {
		return fmt.Errorf("log hubspot activity: %w", err)
	}
	return nil
}

func (c *HubSpotClient) post(ctx context.Context, path string, payload any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

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
