package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the defaults of the icswriter command.
type Config struct {
	// ProductName and ProductVersion form the PRODID of every calendar.
	ProductName    string `yaml:"product_name" json:"product_name"`
	ProductVersion string `yaml:"product_version" json:"product_version"`

	ICalVersion string `yaml:"ical_version" json:"ical_version"`
	Calscale    string `yaml:"calscale" json:"calscale"`

	// Timezone is the IANA zone used for events that do not name one.
	Timezone string `yaml:"timezone" json:"timezone"`

	// WeekStart is the WKST hint of recurrence rules. Supported values:
	//   - "" (no WKST)
	//   - "monday"
	//   - "sunday"
	WeekStart string `yaml:"week_start" json:"week_start"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" json:"log_level"`
	NoColor  bool   `yaml:"no_color" json:"no_color"`

	// NewLine is "crlf" (default) or "lf".
	NewLine string `yaml:"newline" json:"newline"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		ProductName:    "Proton Calendar",
		ProductVersion: "1.0.0",
		ICalVersion:    "2.0",
		Calscale:       "GREGORIAN",
		Timezone:       "UTC",
		WeekStart:      "",
		LogLevel:       "info",
		NewLine:        "crlf",
	}
}

// Normalize fills in missing values so that partially filled files still
// behave.
func (c *Config) Normalize() {
	d := DefaultConfig()
	if c.ProductName == "" {
		c.ProductName = d.ProductName
	}
	if c.ProductVersion == "" {
		c.ProductVersion = d.ProductVersion
	}
	if c.ICalVersion == "" {
		c.ICalVersion = d.ICalVersion
	}
	if c.Calscale == "" {
		c.Calscale = d.Calscale
	}
	if c.Timezone == "" {
		c.Timezone = d.Timezone
	}
	c.WeekStart = strings.ToLower(c.WeekStart)
	switch c.WeekStart {
	case "", "monday", "sunday":
	default:
		c.WeekStart = ""
	}
	c.LogLevel = strings.ToLower(c.LogLevel)
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		c.LogLevel = d.LogLevel
	}
	c.NewLine = strings.ToLower(c.NewLine)
	if c.NewLine != "lf" {
		c.NewLine = "crlf"
	}
}

// WeekStartDay returns the WKST hint, nil when none is configured.
func (c *Config) WeekStartDay() *time.Weekday {
	var d time.Weekday
	switch c.WeekStart {
	case "monday":
		d = time.Monday
	case "sunday":
		d = time.Sunday
	default:
		return nil
	}
	return &d
}

func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c *Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// LineEnding returns the newline sequence of serialized calendars.
func (c *Config) LineEnding() string {
	if c.NewLine == "lf" {
		return "\n"
	}
	return "\r\n"
}

// envPrefix prefixes every environment override.
const envPrefix = "ICSWRITER_"

// ApplyEnv overrides fields with the ICSWRITER_* variables that are set.
func (c *Config) ApplyEnv() {
	for name, field := range map[string]*string{
		"PRODUCT_NAME":    &c.ProductName,
		"PRODUCT_VERSION": &c.ProductVersion,
		"ICAL_VERSION":    &c.ICalVersion,
		"CALSCALE":        &c.Calscale,
		"TIMEZONE":        &c.Timezone,
		"WEEK_START":      &c.WeekStart,
		"LOG_LEVEL":       &c.LogLevel,
		"NEWLINE":         &c.NewLine,
	} {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			*field = v
		}
	}
	if v, ok := os.LookupEnv(envPrefix + "NO_COLOR"); ok {
		c.NoColor = v != "" && v != "0" && !strings.EqualFold(v, "false")
	}
	c.Normalize()
}

// LoadDotEnv loads variables from the given .env files, ".env" when none is
// given. A missing file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("load env: %w", err)
	}
	return nil
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist, a default config is written there with
//     0600 perms and returned.
//   - Otherwise the YAML is read and normalized.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.Normalize()
	return &cfg, nil
}

// Save writes cfg to path through a temp file and a rename, so readers never
// see a partial file.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".icswriter-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

func (c *Config) Save(path string) error {
	return Save(path, c)
}
