package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Veraticus/pricelist/internal/cart"
	"github.com/Veraticus/pricelist/internal/common"
	"github.com/spf13/viper"
)

// Catalog source kinds.
const (
	SourceFile   = "file"
	SourceHTTP   = "http"
	SourceSQLite = "sqlite"
	SourceSheets = "sheets"
)

// Cart backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Settings is the resolved application configuration.
type Settings struct {
	LogLevel       string
	LogFormat      string
	LogFile        string
	CatalogSource  string
	CatalogPath    string
	CatalogURL     string
	DatabasePath   string
	CartBackend    string
	CartKey        string
	RedisURL       string
	RedisPrefix    string
	RateBillete    string
	RateDivisas    string
	CatalogTimeout time.Duration
}

// SetDefaults registers default values for every key Load reads.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("catalog.source", SourceFile)
	v.SetDefault("catalog.path", "products.json")
	v.SetDefault("catalog.timeout", 30*time.Second)
	v.SetDefault("cart.backend", BackendSQLite)
	v.SetDefault("cart.key", cart.DefaultKey)
	v.SetDefault("redis.url", "redis://localhost:6379/0")
	v.SetDefault("redis.prefix", "pricelist:")
}

// Load reads Settings from v. Paths have ~ and $VARS expanded; the database
// path defaults to ~/.local/share/pricelist/pricelist.db.
func Load(v *viper.Viper) (*Settings, error) {
	s := &Settings{
		LogLevel:       v.GetString("logging.level"),
		LogFormat:      v.GetString("logging.format"),
		LogFile:        ExpandPath(v.GetString("logging.file")),
		CatalogSource:  v.GetString("catalog.source"),
		CatalogPath:    ExpandPath(v.GetString("catalog.path")),
		CatalogURL:     v.GetString("catalog.url"),
		CatalogTimeout: v.GetDuration("catalog.timeout"),
		DatabasePath:   ExpandPath(v.GetString("database.path")),
		CartBackend:    v.GetString("cart.backend"),
		CartKey:        v.GetString("cart.key"),
		RedisURL:       v.GetString("redis.url"),
		RedisPrefix:    v.GetString("redis.prefix"),
		RateBillete:    v.GetString("rates.billete"),
		RateDivisas:    v.GetString("rates.divisas"),
	}

	if s.DatabasePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		s.DatabasePath = filepath.Join(home, ".local", "share", "pricelist", "pricelist.db")
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the enumerated settings and the values each choice needs.
func (s *Settings) Validate() error {
	switch s.CatalogSource {
	case SourceFile:
		if s.CatalogPath == "" {
			return fmt.Errorf("%w: catalog.path", common.ErrMissingConfig)
		}
	case SourceHTTP:
		if s.CatalogURL == "" {
			return fmt.Errorf("%w: catalog.url", common.ErrMissingConfig)
		}
	case SourceSQLite, SourceSheets:
	default:
		return fmt.Errorf("%w: catalog.source %q (want file, http, sqlite or sheets)", common.ErrInvalidConfig, s.CatalogSource)
	}

	switch s.CartBackend {
	case BackendSQLite, BackendMemory:
	case BackendRedis:
		if s.RedisURL == "" {
			return fmt.Errorf("%w: redis.url", common.ErrMissingConfig)
		}
	default:
		return fmt.Errorf("%w: cart.backend %q (want sqlite, redis or memory)", common.ErrInvalidConfig, s.CartBackend)
	}

	if s.CatalogTimeout < 0 {
		return fmt.Errorf("%w: catalog.timeout cannot be negative", common.ErrInvalidConfig)
	}

	return nil
}
