// Package config loads the sidecar's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nstehr/vimy/tactics-core/model"
	"github.com/nstehr/vimy/tactics-core/pathfind"
	"github.com/nstehr/vimy/tactics-core/rules"
)

// Config is the top-level sidecar configuration.
type Config struct {
	SocketPath     string         `yaml:"socket_path"`
	HTTPAddr       string         `yaml:"http_addr"`
	LogLevel       string         `yaml:"log_level"`
	SearchBudget   int            `yaml:"search_budget"`
	StallThreshold int            `yaml:"stall_threshold"`
	CatalogueFile  string         `yaml:"catalogue_file"`
	Doctrine       rules.Doctrine `yaml:"doctrine"`

	// Catalogue is loaded from CatalogueFile, or the stock table when unset.
	Catalogue model.ActionTable `yaml:"-"`
}

// CatalogueConfig is the on-disk form of a unit action catalogue.
type CatalogueConfig struct {
	Units model.ActionTable `yaml:"units"`
}

func Default() Config {
	return Config{
		SocketPath:     "/tmp/tactics.sock",
		HTTPAddr:       ":8080",
		LogLevel:       "info",
		SearchBudget:   pathfind.DefaultMaxExpansions,
		StallThreshold: 5,
		Doctrine:       rules.DefaultDoctrine(),
		Catalogue:      model.DefaultActionTable(),
	}
}

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// Load reads path over the defaults. An empty path yields the defaults.
// A relative catalogue_file is resolved against the config file's directory.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if err := loadYAML(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}

	if cfg.CatalogueFile != "" {
		file := cfg.CatalogueFile
		if !filepath.IsAbs(file) {
			file = filepath.Join(filepath.Dir(path), file)
		}
		table, err := LoadCatalogue(file)
		if err != nil {
			return Config{}, err
		}
		cfg.Catalogue = table
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadCatalogue reads a unit action catalogue.
func LoadCatalogue(path string) (model.ActionTable, error) {
	var cc CatalogueConfig
	if err := loadYAML(path, &cc); err != nil {
		return nil, fmt.Errorf("load catalogue %s: %w", path, err)
	}
	if len(cc.Units) == 0 {
		return nil, fmt.Errorf("catalogue %s: no units defined", path)
	}
	return cc.Units, nil
}

// Validate rejects values the sidecar cannot run with and clamps the doctrine.
func (c *Config) Validate() error {
	var errs []error
	if c.SocketPath == "" && c.HTTPAddr == "" {
		errs = append(errs, errors.New("one of socket_path or http_addr is required"))
	}
	if c.SearchBudget <= 0 {
		errs = append(errs, fmt.Errorf("search_budget must be positive, got %d", c.SearchBudget))
	}
	if c.StallThreshold < 0 {
		errs = append(errs, fmt.Errorf("stall_threshold must not be negative, got %d", c.StallThreshold))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	c.Doctrine.Validate()
	return errors.Join(errs...)
}

// ParseLevel maps debug|info|warn|error onto slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}
