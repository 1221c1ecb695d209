package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/Veraticus/pricelist/internal/common"
	"github.com/Veraticus/pricelist/internal/model"
	"github.com/Veraticus/pricelist/internal/service"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

var _ service.CatalogSource = (*Source)(nil)

// Source loads the catalog from a spreadsheet range.
type Source struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewSource creates a Google Sheets catalog source.
func NewSource(ctx context.Context, config Config, logger *slog.Logger) (*Source, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	srv, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return newSourceWithService(srv, config, logger), nil
}

func newSourceWithService(srv *sheets.Service, config Config, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{
		service: srv,
		config:  config,
		logger:  logger,
	}
}

// Name implements service.CatalogSource.
func (s *Source) Name() string {
	return "sheets:" + s.config.SpreadsheetID
}

// Load implements service.CatalogSource.
func (s *Source) Load(ctx context.Context) ([]model.Product, error) {
	s.logger.Info("reading catalog from spreadsheet",
		"spreadsheet_id", s.config.SpreadsheetID,
		"range", s.config.Range)

	retryOpts := service.RetryOptions{
		MaxAttempts:  max(1, s.config.RetryAttempts),
		InitialDelay: s.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}

	var rows [][]any
	err := common.WithRetry(ctx, func() error {
		resp, err := s.service.Spreadsheets.Values.Get(s.config.SpreadsheetID, s.config.Range).
			ValueRenderOption("UNFORMATTED_VALUE").
			Context(ctx).
			Do()
		if err != nil {
			return classifyAPIError(err)
		}
		rows = resp.Values
		return nil
	}, retryOpts)
	if err != nil {
		return nil, common.LoadFailure(s.Name(), err)
	}

	products, err := rowsToProducts(rows)
	if err != nil {
		return nil, common.LoadFailure(s.Name(), err)
	}

	s.logger.Info("catalog read from spreadsheet",
		"spreadsheet_id", s.config.SpreadsheetID,
		"products", len(products))
	return products, nil
}

// classifyAPIError maps Sheets API failures onto the retry policy: rate
// limits and server errors are retried, other client errors are not.
func classifyAPIError(err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	switch {
	case apiErr.Code == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", common.ErrRateLimit, err)
	case apiErr.Code >= 500:
		return err
	default:
		return common.Permanent(err)
	}
}

// createSheetsService creates a Google Sheets API service.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsReadonlyScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		oauthConfig := OAuth2Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			TokenFile:    config.TokenFile,
		}

		token := &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		}
		if token.RefreshToken == "" {
			saved, err := LoadToken(config.TokenFile)
			if err != nil {
				return nil, fmt.Errorf("%w: no refresh token and no saved token at %s: %w",
					common.ErrMissingConfig, config.TokenFile, err)
			}
			token = saved
		}

		tokenSource = oauthConfig.oauth2().TokenSource(ctx, token)
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}
