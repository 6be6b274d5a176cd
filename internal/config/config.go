package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// OpenAIConfig carries the LLM provider settings shared by the research,
// scoring and drafting collaborators.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// SendGridConfig carries email dispatch settings. An empty APIKey or
// FromEmail puts the sender into demo mode.
type SendGridConfig struct {
	APIKey    string
	FromEmail string
	BaseURL   string
}

// SalesforceConfig carries Salesforce CRM credentials. Incomplete credentials
// put the integration into demo mode.
type SalesforceConfig struct {
	Username      string
	Password      string
	SecurityToken string
	BaseURL       string
}

// HubSpotConfig carries HubSpot CRM credentials.
type HubSpotConfig struct {
	APIKey  string
	BaseURL string
}

// AgentConfig identifies the sending organisation in generated copy.
type AgentConfig struct {
	Name    string
	Company string
}

// Config aggregates application-wide configuration values.
type Config struct {
	DatabaseURL       string
	JWTSecret         string
	Port              string
	TokenTTL          time.Duration
	RateLimitCampaign RateLimitConfig
	CRMBackend        string
	NewsWorkerBaseURL string
	OpenAI            OpenAIConfig
	SendGrid          SendGridConfig
	Salesforce        SalesforceConfig
	HubSpot           HubSpotConfig
	Agent             AgentConfig
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		JWTSecret:         getEnv("JWT_SECRET", "dev-secret"),
		Port:              getEnv("PORT", "8080"),
		CRMBackend:        strings.ToLower(getEnv("CRM_BACKEND", "salesforce")),
		NewsWorkerBaseURL: os.Getenv("NEWS_WORKER_BASE_URL"),
		OpenAI: OpenAIConfig{
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			Model:   getEnv("OPENAI_MODEL", "gpt-4"),
			BaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		},
		SendGrid: SendGridConfig{
			APIKey:    os.Getenv("SENDGRID_API_KEY"),
			FromEmail: os.Getenv("SENDGRID_FROM_EMAIL"),
			BaseURL:   getEnv("SENDGRID_BASE_URL", "https://api.sendgrid.com"),
		},
		Salesforce: SalesforceConfig{
			Username:      os.Getenv("SALESFORCE_USERNAME"),
			Password:      os.Getenv("SALESFORCE_PASSWORD"),
			SecurityToken: os.Getenv("SALESFORCE_SECURITY_TOKEN"),
			BaseURL:       getEnv("SALESFORCE_BASE_URL", "https://login.salesforce.com"),
		},
		HubSpot: HubSpotConfig{
			APIKey:  os.Getenv("HUBSPOT_API_KEY"),
			BaseURL: getEnv("HUBSPOT_BASE_URL", "https://api.hubapi.com"),
		},
		Agent: AgentConfig{
			Name:    getEnv("SDR_AGENT_NAME", "AI SDR Agent"),
			Company: getEnv("SDR_AGENT_COMPANY", "Your Company"),
		},
	}

	if cfg.CRMBackend != "salesforce" && cfg.CRMBackend != "hubspot" {
		return nil, fmt.Errorf("unsupported CRM_BACKEND value: %s", cfg.CRMBackend)
	}

	ttl, err := time.ParseDuration(getEnv("JWT_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL value: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("JWT_TTL must be positive, got %s", ttl)
	}
	cfg.TokenTTL = ttl

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_CAMPAIGN", "5/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_CAMPAIGN value: %w", err)
	}
	cfg.RateLimitCampaign = rl

	return cfg, nil
}

// MissingRequired lists configuration keys the pipeline needs for live runs.
// Demo mode works without them, so missing keys warn rather than fail.
func (c *Config) MissingRequired() []string {
	var missing []string
	if c.OpenAI.APIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	return missing
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}
