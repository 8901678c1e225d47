package config

import "os"

const (
	calendarClientIDEnv     = "GOOGLE_CALENDAR_CLIENT_ID"
	calendarClientSecretEnv = "GOOGLE_CALENDAR_CLIENT_SECRET"
	calendarRefreshTokenEnv = "GOOGLE_CALENDAR_REFRESH_TOKEN"
	calendarIDEnv           = "GOOGLE_CALENDAR_ID"
)

// CalendarConfig holds the OAuth credentials for Google Calendar sync.
// Sync is optional: without credentials the service runs with it
// disabled.
type CalendarConfig struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	CalendarID   string
}

func LoadCalendarConfig() *CalendarConfig {
	return &CalendarConfig{
		ClientID:     os.Getenv(calendarClientIDEnv),
		ClientSecret: os.Getenv(calendarClientSecretEnv),
		RefreshToken: os.Getenv(calendarRefreshTokenEnv),
		CalendarID:   os.Getenv(calendarIDEnv),
	}
}

func (c *CalendarConfig) Enabled() bool {
	return c != nil && c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
}
