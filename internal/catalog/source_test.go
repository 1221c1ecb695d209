package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/pricelist/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `[
  {"code":"10001","description":"Látex interior","brand":"Alba","currency":"1","tes":"503","price":50000,"price_usd":0,"rate":1},
  {"code":"Z10","description":"Rodillo","currency":"2","tes":"501","price":0,"price_usd":10}
]`

func TestDecode(t *testing.T) {
	t.Run("array", func(t *testing.T) {
		products, err := Decode(strings.NewReader(sampleCatalog))
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "Z10", products[1].Code)
	})

	t.Run("non array document is empty", func(t *testing.T) {
		products, err := Decode(strings.NewReader(`{"products":[]}`))
		require.NoError(t, err)
		assert.Empty(t, products)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := Decode(strings.NewReader(`[{"code":`))
		assert.Error(t, err)
	})

	t.Run("empty body", func(t *testing.T) {
		_, err := Decode(strings.NewReader("  "))
		assert.Error(t, err)
	})
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "products.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0o600))

	products, err := (&FileSource{Path: path}).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 2)

	_, err = (&FileSource{Path: filepath.Join(dir, "missing.json")}).Load(context.Background())
	assert.ErrorIs(t, err, common.ErrLoadFailure)
}

func TestHTTPSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products.json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(sampleCatalog))
		case "/broken.json":
			_, _ = w.Write([]byte(`[{"code":`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	products, err := NewHTTPSource(server.URL+"/products.json", 0).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 2)

	_, err = NewHTTPSource(server.URL+"/missing.json", 0).Load(context.Background())
	assert.ErrorIs(t, err, common.ErrLoadFailure)
	assert.Contains(t, err.Error(), "404")

	_, err = NewHTTPSource(server.URL+"/broken.json", 0).Load(context.Background())
	assert.ErrorIs(t, err, common.ErrLoadFailure)
}
