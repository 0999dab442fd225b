// Package config resolves roadmap settings from defaults, an optional
// ~/.roadmap/config.jsonc file and ROADMAP_* environment variables, in
// that order.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mitchellh/go-homedir"
	"github.com/tailscale/hujson"

	"github.com/alexanderramin/roadmap/internal/calendar"
	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/timeline"
	"github.com/alexanderramin/roadmap/internal/viewstate"
)

// Config holds every user-tunable setting.
type Config struct {
	DBPath      string           `json:"db_path"`
	MaxVisible  int              `json:"max_visible_items"`
	Range       domain.RangeUnit `json:"range"`
	Zoom        int              `json:"zoom"`
	ColumnWidth int              `json:"column_width"`
	LogUseCases bool             `json:"log_use_cases"`
	LogFile     string           `json:"log_file"`
}

// DefaultPath is where Load looks for a config file when ROADMAP_CONFIG is unset.
const DefaultPath = "~/.roadmap/config.jsonc"

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		DBPath:      "~/.roadmap/roadmap.db",
		MaxVisible:  calendar.DefaultMaxVisible,
		Range:       domain.RangeMonthly,
		Zoom:        timeline.DefaultZoom,
		ColumnWidth: int(timeline.DefaultColumnWidth),
	}
}

// Load builds the effective config. A missing config file is not an error.
func Load() (Config, error) {
	cfg := DefaultConfig()

	path := DefaultPath
	if v := os.Getenv("ROADMAP_CONFIG"); v != "" {
		path = v
	}
	if err := cfg.mergeFile(path); err != nil {
		return cfg, err
	}

	cfg.applyEnv()
	if u, err := domain.ParseRangeUnit(string(cfg.Range)); err == nil {
		cfg.Range = u
	}
	if err := cfg.expandPaths(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) mergeFile(path string) error {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}
	data, err := os.ReadFile(expanded)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	return c.merge(data)
}

// merge overlays the keys present in a JSON-with-comments document.
func (c *Config) merge(data []byte) error {
	std, err := hujson.Standardize(data)
	if err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	if err := json.Unmarshal(std, c); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("ROADMAP_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("ROADMAP_MAX_VISIBLE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxVisible = n
		}
	}
	if v := os.Getenv("ROADMAP_ZOOM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Zoom = n
		}
	}
	if v := os.Getenv("ROADMAP_RANGE"); v != "" {
		if u, err := domain.ParseRangeUnit(v); err == nil {
			c.Range = u
		}
	}
	if v := os.Getenv("ROADMAP_LOG_USECASES"); v != "" {
		c.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("ROADMAP_LOG_FILE"); v != "" {
		c.LogFile = v
	}
}

func (c *Config) expandPaths() error {
	for _, p := range []*string{&c.DBPath, &c.LogFile} {
		if *p == "" || *p == ":memory:" {
			continue
		}
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("expanding %q: %w", *p, err)
		}
		*p = filepath.Clean(expanded)
	}
	return nil
}

// Validate reports settings no widget can work with.
func (c Config) Validate() error {
	var errs []error
	if c.DBPath == "" {
		errs = append(errs, errors.New("db_path is required"))
	}
	if _, err := domain.ParseRangeUnit(string(c.Range)); err != nil {
		errs = append(errs, err)
	}
	if c.Zoom < viewstate.MinZoom || c.Zoom > viewstate.MaxZoom {
		errs = append(errs, fmt.Errorf("zoom %d out of range %d..%d", c.Zoom, viewstate.MinZoom, viewstate.MaxZoom))
	}
	if c.ColumnWidth <= 0 {
		errs = append(errs, fmt.Errorf("column_width must be positive, got %d", c.ColumnWidth))
	}
	return errors.Join(errs...)
}
