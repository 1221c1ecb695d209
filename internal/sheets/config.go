// Package sheets reads a product catalog from a Google Sheets range.
package sheets

import (
	"fmt"
	"os"
	"time"

	"github.com/Veraticus/pricelist/internal/common"
)

// DefaultRange is read when no range is configured. The first row holds the
// column names.
const DefaultRange = "Productos!A:H"

// Config holds the configuration for the Google Sheets catalog source.
type Config struct {
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	TokenFile          string
	ServiceAccountPath string
	SpreadsheetID      string
	Range              string
	RetryAttempts      int
	RetryDelay         time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Range:         DefaultRange,
		RetryAttempts: 3,
		RetryDelay:    time.Second,
	}
}

// LoadFromEnv fills unset fields from GOOGLE_SHEETS_* environment variables.
func (c *Config) LoadFromEnv() {
	setFromEnv(&c.ClientID, "GOOGLE_SHEETS_CLIENT_ID")
	setFromEnv(&c.ClientSecret, "GOOGLE_SHEETS_CLIENT_SECRET")
	setFromEnv(&c.RefreshToken, "GOOGLE_SHEETS_REFRESH_TOKEN")
	setFromEnv(&c.ServiceAccountPath, "GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH")
	setFromEnv(&c.SpreadsheetID, "GOOGLE_SHEETS_SPREADSHEET_ID")
	setFromEnv(&c.Range, "GOOGLE_SHEETS_RANGE")
}

func setFromEnv(field *string, name string) {
	if *field != "" {
		return
	}
	*field = os.Getenv(name)
}

// hasOAuth reports whether OAuth2 client credentials are set. The refresh
// token may come from the config or from TokenFile.
func (c *Config) hasOAuth() bool {
	return c.ClientID != "" && c.ClientSecret != "" && (c.RefreshToken != "" || c.TokenFile != "")
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	hasServiceAccount := c.ServiceAccountPath != ""

	if !c.hasOAuth() && !hasServiceAccount {
		return fmt.Errorf("%w: no Google Sheets authentication method configured", common.ErrMissingConfig)
	}

	if c.hasOAuth() && hasServiceAccount {
		return fmt.Errorf("%w: multiple authentication methods configured; use either OAuth2 or service account", common.ErrInvalidConfig)
	}

	if c.SpreadsheetID == "" {
		return fmt.Errorf("%w: spreadsheet id", common.ErrMissingConfig)
	}

	if c.Range == "" {
		return fmt.Errorf("%w: sheet range", common.ErrMissingConfig)
	}

	if c.RetryAttempts < 0 {
		return fmt.Errorf("%w: retry attempts cannot be negative", common.ErrInvalidConfig)
	}

	if c.RetryDelay < 0 {
		return fmt.Errorf("%w: retry delay cannot be negative", common.ErrInvalidConfig)
	}

	return nil
}
