package sheets

import (
	"testing"
	"time"

	"github.com/Veraticus/pricelist/internal/common"
	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		config  Config
	}{
		{
			name: "valid oauth config",
			config: Config{
				ClientID:      "test-client",
				ClientSecret:  "test-secret",
				RefreshToken:  "test-token",
				SpreadsheetID: "sheet-1",
				Range:         DefaultRange,
				RetryAttempts: 3,
				RetryDelay:    time.Second,
			},
		},
		{
			name: "oauth with saved token file",
			config: Config{
				ClientID:      "test-client",
				ClientSecret:  "test-secret",
				TokenFile:     "/tmp/token.json",
				SpreadsheetID: "sheet-1",
				Range:         DefaultRange,
			},
		},
		{
			name: "valid service account config",
			config: Config{
				ServiceAccountPath: "/path/to/key.json",
				SpreadsheetID:      "sheet-1",
				Range:              DefaultRange,
			},
		},
		{
			name: "missing auth",
			config: Config{
				SpreadsheetID: "sheet-1",
				Range:         DefaultRange,
			},
			wantErr: common.ErrMissingConfig,
		},
		{
			name: "partial oauth credentials",
			config: Config{
				ClientID:      "test-client",
				RefreshToken:  "test-token",
				SpreadsheetID: "sheet-1",
				Range:         DefaultRange,
			},
			wantErr: common.ErrMissingConfig,
		},
		{
			name: "multiple auth methods",
			config: Config{
				ClientID:           "test-client",
				ClientSecret:       "test-secret",
				RefreshToken:       "test-token",
				ServiceAccountPath: "/path/to/key.json",
				SpreadsheetID:      "sheet-1",
				Range:              DefaultRange,
			},
			wantErr: common.ErrInvalidConfig,
		},
		{
			name: "missing spreadsheet",
			config: Config{
				ServiceAccountPath: "/path/to/key.json",
				Range:              DefaultRange,
			},
			wantErr: common.ErrMissingConfig,
		},
		{
			name: "missing range",
			config: Config{
				ServiceAccountPath: "/path/to/key.json",
				SpreadsheetID:      "sheet-1",
			},
			wantErr: common.ErrMissingConfig,
		},
		{
			name: "negative retry delay",
			config: Config{
				ServiceAccountPath: "/path/to/key.json",
				SpreadsheetID:      "sheet-1",
				Range:              DefaultRange,
				RetryDelay:         -time.Second,
			},
			wantErr: common.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestConfig_LoadFromEnv(t *testing.T) {
	t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "/keys/sa.json")
	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "from-env")
	t.Setenv("GOOGLE_SHEETS_RANGE", "")

	config := DefaultConfig()
	config.SpreadsheetID = "from-config"
	config.LoadFromEnv()

	assert.Equal(t, "/keys/sa.json", config.ServiceAccountPath)
	assert.Equal(t, "from-config", config.SpreadsheetID, "explicit settings win over the environment")
	assert.Equal(t, DefaultRange, config.Range)
	assert.NoError(t, config.Validate())
}
