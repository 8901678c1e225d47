package config

import (
	"os"
	"strconv"
	"time"
)

const (
	emailAPIURLEnv = "EMAIL_API_URL"
	emailAPIKeyEnv = "EMAIL_API_KEY"
	emailFromEnv   = "EMAIL_FROM"
	emailPaceMsEnv = "EMAIL_PACE_MS"

	defaultEmailAPIURL = "https://api.resend.com"
	defaultEmailPaceMs = 500
)

type EmailConfig struct {
	APIURL string
	APIKey string
	From   string
	// Pace is the delay between consecutive recipients in a reminder
	// run, keeping sends under the provider's burst limits.
	Pace time.Duration
}

func LoadEmailConfig() *EmailConfig {
	apiURL := os.Getenv(emailAPIURLEnv)
	if apiURL == "" {
		apiURL = defaultEmailAPIURL
	}

	paceMs := defaultEmailPaceMs
	if v := os.Getenv(emailPaceMsEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			paceMs = parsed
		}
	}

	return &EmailConfig{
		APIURL: apiURL,
		APIKey: os.Getenv(emailAPIKeyEnv),
		From:   os.Getenv(emailFromEnv),
		Pace:   time.Duration(paceMs) * time.Millisecond,
	}
}

func (c *EmailConfig) Validate() error {
	if c == nil || c.APIKey == "" {
		return ErrEmailAPIKeyMissing
	}
	if c.From == "" {
		return ErrEmailFromMissing
	}
	return nil
}
