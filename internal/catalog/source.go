package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/Veraticus/pricelist/internal/common"
	"github.com/Veraticus/pricelist/internal/model"
	"github.com/Veraticus/pricelist/internal/service"
)

// Decode reads a JSON catalog. A document that is valid JSON but not an
// array is an empty catalog.
func Decode(r io.Reader) ([]model.Product, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty catalog document")
	}
	if trimmed[0] != '[' {
		if !json.Valid(trimmed) {
			return nil, fmt.Errorf("catalog is not valid JSON")
		}
		return []model.Product{}, nil
	}

	var products []model.Product
	if err := json.Unmarshal(trimmed, &products); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return products, nil
}

// FileSource reads a JSON catalog from disk.
type FileSource struct {
	Path string
}

var _ service.CatalogSource = (*FileSource)(nil)

// Name implements service.CatalogSource.
func (s *FileSource) Name() string { return s.Path }

// Load implements service.CatalogSource.
func (s *FileSource) Load(_ context.Context) ([]model.Product, error) {
	f, err := os.Open(s.Path) // #nosec G304 -- path comes from user config
	if err != nil {
		return nil, common.LoadFailure(s.Name(), err)
	}
	defer func() { _ = f.Close() }()

	products, err := Decode(f)
	if err != nil {
		return nil, common.LoadFailure(s.Name(), err)
	}
	return products, nil
}

// HTTPSource fetches a JSON catalog over HTTP.
type HTTPSource struct {
	Client *http.Client
	URL    string
}

var _ service.CatalogSource = (*HTTPSource)(nil)

// NewHTTPSource creates a source with a bounded client timeout.
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPSource{
		URL:    url,
		Client: &http.Client{Timeout: timeout},
	}
}

// Name implements service.CatalogSource.
func (s *HTTPSource) Name() string { return s.URL }

// Load implements service.CatalogSource.
func (s *HTTPSource) Load(ctx context.Context) ([]model.Product, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, common.LoadFailure(s.Name(), err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, common.LoadFailure(s.Name(), err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, common.LoadFailure(s.Name(), fmt.Errorf("unexpected status %s", resp.Status))
	}

	products, err := Decode(resp.Body)
	if err != nil {
		return nil, common.LoadFailure(s.Name(), err)
	}
	return products, nil
}
