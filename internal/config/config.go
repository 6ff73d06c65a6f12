// Package config assembles runtime settings from defaults, an optional YAML
// file and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"assetdirectory/internal/querystate"
	"assetdirectory/pkg/roles"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	BackendHTTP     = "http"
	BackendPostgres = "postgres"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	CatalogBackend string        `yaml:"catalog_backend"`
	CatalogURL     string        `yaml:"catalog_url"`
	CatalogToken   string        `yaml:"catalog_token"`
	CatalogTimeout time.Duration `yaml:"catalog_timeout"`
	DatabaseURL    string        `yaml:"database_url"`
	MigrationsDir  string        `yaml:"migrations_dir"`

	AppHost        string        `yaml:"app_host"`
	JWTSecret      string        `yaml:"jwt_secret"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	PageSize       int           `yaml:"page_size"`
	ExportRoles    []string      `yaml:"export_roles"`

	// Resolve endpoint rate limiting
	ResolveLimit  int           `yaml:"resolve_limit"`
	ResolveWindow time.Duration `yaml:"resolve_window"`

	// Google Sheets export
	GoogleSheetsCredentialsJSON string `yaml:"google_sheets_credentials_json"`
	GoogleSheetsCredentialsFile string `yaml:"google_sheets_credentials_file"`
	SpreadsheetID               string `yaml:"spreadsheet_id"`
	SheetRange                  string `yaml:"sheet_range"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		CatalogBackend: BackendHTTP,
		CatalogTimeout: 30 * time.Second,
		MigrationsDir:  "migrations",
		AppHost:        ":8080",
		RequestTimeout: 30 * time.Second,
		PageSize:       querystate.DefaultPageSize,
		ExportRoles:    []string{string(roles.DistrictAdmin), string(roles.StateAdmin)},
		ResolveLimit:   60,
		ResolveWindow:  time.Minute,
		SheetRange:     "Assets!A1",
	}
}

// Load reads .env without overriding the environment, then the YAML file at
// path when it exists, then environment variables.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"CATALOG_BACKEND":                &c.CatalogBackend,
		"CATALOG_URL":                    &c.CatalogURL,
		"CATALOG_TOKEN":                  &c.CatalogToken,
		"DATABASE_URL":                   &c.DatabaseURL,
		"MIGRATIONS_DIR":                 &c.MigrationsDir,
		"APP_HOST":                       &c.AppHost,
		"JWT_SECRET":                     &c.JWTSecret,
		"GOOGLE_SHEETS_CREDENTIALS_JSON": &c.GoogleSheetsCredentialsJSON,
		"GOOGLE_SHEETS_CREDENTIALS_FILE": &c.GoogleSheetsCredentialsFile,
		"SPREADSHEET_ID":                 &c.SpreadsheetID,
		"SHEET_RANGE":                    &c.SheetRange,
	}
	for key, target := range strs {
		if v, ok := lookup(key); ok && v != "" {
			*target = v
		}
	}

	durations := map[string]*time.Duration{
		"CATALOG_TIMEOUT": &c.CatalogTimeout,
		"REQUEST_TIMEOUT": &c.RequestTimeout,
		"RESOLVE_WINDOW":  &c.ResolveWindow,
	}
	for key, target := range durations {
		if v, ok := lookup(key); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, key, v, err)
			}
			*target = d
		}
	}

	ints := map[string]*int{
		"PAGE_SIZE":     &c.PageSize,
		"RESOLVE_LIMIT": &c.ResolveLimit,
	}
	for key, target := range ints {
		if v, ok := lookup(key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, key, v, err)
			}
			*target = n
		}
	}

	if v, ok := lookup("EXPORT_ROLES"); ok && v != "" {
		var names []string
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
		c.ExportRoles = names
	}

	return nil
}

// Validate checks the settings a catalog backend needs.
func (c *Config) Validate() error {
	switch c.CatalogBackend {
	case BackendHTTP:
		if c.CatalogURL == "" {
			return fmt.Errorf("%w: CATALOG_URL is required for the http backend", ErrInvalidConfig)
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("%w: DATABASE_URL is required for the postgres backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown catalog backend %q", ErrInvalidConfig, c.CatalogBackend)
	}

	if c.PageSize <= 0 {
		return fmt.Errorf("%w: page size must be positive", ErrInvalidConfig)
	}

	return nil
}

// AllowedExportRoles returns the configured export roles that are known.
// Read-only roles never export.
func (c *Config) AllowedExportRoles() []roles.Role {
	parsed := roles.Parse(c.ExportRoles)
	allowed := parsed[:0]
	for _, role := range parsed {
		if !role.IsReadOnly() {
			allowed = append(allowed, role)
		}
	}
	return allowed
}
