package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/pricelist/internal/common"
	"github.com/Veraticus/pricelist/internal/config"
	"github.com/Veraticus/pricelist/internal/sheets"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func sheetsAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets-auth",
		Short: "Authenticate with Google Sheets",
		Long: `Authenticate with Google Sheets using OAuth2.

This command will:
1. Print a Google sign-in URL and wait for the redirect
2. Save the token for future use
3. Update your config file with the token location

Run it once before using catalog.source: sheets with OAuth2 credentials.`,
		RunE: runSheetsAuth,
	}

	cmd.Flags().String("client-id", "", "OAuth2 Client ID (overrides config)")
	cmd.Flags().String("client-secret", "", "OAuth2 Client Secret (overrides config)")

	return cmd
}

func runSheetsAuth(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	clientID := viper.GetString("sheets.client_id")
	clientSecret := viper.GetString("sheets.client_secret")

	if flagID, _ := cmd.Flags().GetString("client-id"); flagID != "" {
		clientID = flagID
	}
	if flagSecret, _ := cmd.Flags().GetString("client-secret"); flagSecret != "" {
		clientSecret = flagSecret
	}

	if clientID == "" {
		clientID = os.Getenv("GOOGLE_SHEETS_CLIENT_ID")
	}
	if clientSecret == "" {
		clientSecret = os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")
	}

	if clientID == "" || clientSecret == "" {
		return common.NewUserError(
			"OAuth2 credentials not found. Set sheets.client_id and sheets.client_secret in config or use --client-id and --client-secret",
			common.ErrMissingConfig,
		)
	}

	tokenFile, err := sheetsTokenFile()
	if err != nil {
		return err
	}

	slog.Info("Starting Google Sheets authentication", "token_file", tokenFile)

	token, err := sheets.AuthenticateOAuth2Interactive(ctx, sheets.OAuth2Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenFile:    tokenFile,
	})
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	viper.Set("sheets.client_id", clientID)
	viper.Set("sheets.client_secret", clientSecret)
	viper.Set("sheets.token_file", tokenFile)
	viper.Set("sheets.refresh_token", token.RefreshToken)

	if err := saveConfig(); err != nil {
		slog.Warn("Failed to update config file", "error", err)
		slog.Info("Please add this to your config.yaml manually:")
		slog.Info(fmt.Sprintf("sheets:\n  token_file: %q\n  refresh_token: %q", tokenFile, token.RefreshToken))
	} else {
		slog.Info("Updated config file with Google Sheets credentials")
	}

	slog.Info("Google Sheets is ready. Set catalog.source to sheets and sheets.spreadsheet_id to use it.")
	return nil
}

func sheetsTokenFile() (string, error) {
	if path := config.ExpandPath(viper.GetString("sheets.token_file")); path != "" {
		return path, nil
	}
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sheets-token.json"), nil
}

func configDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "pricelist"), nil
}

func saveConfig() error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		dir, err := configDir()
		if err != nil {
			return err
		}
		configFile = filepath.Join(dir, "config.yaml")
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0750); err != nil {
		return err
	}

	return viper.WriteConfigAs(configFile)
}
