package config

import (
	"github.com/Veraticus/pricelist/internal/sheets"
	"github.com/spf13/viper"
)

// LoadSheetsConfig loads Google Sheets configuration from Viper and environment variables.
// It follows this precedence:
// 1. Viper configuration (from config file or PRICELIST_ env vars)
// 2. Direct environment variables (GOOGLE_SHEETS_*)
// 3. Default values
func LoadSheetsConfig(v *viper.Viper) (*sheets.Config, error) {
	config := sheets.DefaultConfig()

	config.ServiceAccountPath = ExpandPath(v.GetString("sheets.service_account_path"))
	config.ClientID = v.GetString("sheets.client_id")
	config.ClientSecret = v.GetString("sheets.client_secret")
	config.RefreshToken = v.GetString("sheets.refresh_token")
	config.TokenFile = ExpandPath(v.GetString("sheets.token_file"))
	config.SpreadsheetID = v.GetString("sheets.spreadsheet_id")
	if r := v.GetString("sheets.range"); r != "" {
		config.Range = r
	}

	config.LoadFromEnv()
	config.ServiceAccountPath = ExpandPath(config.ServiceAccountPath)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}
