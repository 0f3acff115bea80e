// Package config holds the static settings read once at startup: detection
// endpoint, timeout, upload limits, and alert thresholds.
//
// Precedence, lowest to highest: built-in defaults, config file, .env file
// plus DEEPSCAN_* environment variables, command flags. There is no dynamic
// reconfiguration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"deepscan/internal/classify"
)

// DefaultPath is the default config file location (per-workspace).
const DefaultPath = ".deepscan/config.yaml"

// Config is the full runtime configuration.
type Config struct {
	// Endpoint is the detection service base URL. The tool refuses to run
	// without it; there is no meaningful default.
	Endpoint string `json:"endpoint" yaml:"endpoint"`
	// TimeoutSeconds bounds the whole upload-and-classify HTTP call.
	TimeoutSeconds int `json:"timeout_seconds" yaml:"timeout_seconds"`
	// MaxFileSizeMB caps the size of videos accepted for upload.
	MaxFileSizeMB int64 `json:"max_file_size_mb" yaml:"max_file_size_mb"`
	// SupportedFormats lists accepted video file extensions (no dot).
	SupportedFormats []string `json:"supported_formats" yaml:"supported_formats"`
	// HighThreshold and MediumThreshold are alert-tier percentage cut-offs.
	HighThreshold   float64 `json:"high_threshold" yaml:"high_threshold"`
	MediumThreshold float64 `json:"medium_threshold" yaml:"medium_threshold"`
	// DBPath is the analysis-history SQLite file.
	DBPath string `json:"db_path" yaml:"db_path"`
	// OutputDir receives CSV exports when no explicit path is given.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		TimeoutSeconds:   60,
		MaxFileSizeMB:    100,
		SupportedFormats: []string{"mp4", "avi", "mov", "mkv", "webm", "flv"},
		HighThreshold:    70,
		MediumThreshold:  40,
		DBPath:           ".deepscan/deepscan.db",
		OutputDir:        ".deepscan/output",
	}
}

// Resolve builds the effective configuration: defaults, overlaid with the
// config file at path (skipped silently when the default path is absent),
// overlaid with .env and DEEPSCAN_* environment variables.
func Resolve(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := cfg.merge(data, filepath.Ext(path)); err != nil {
			return nil, err
		}
	case os.IsNotExist(err) && !explicit:
		// No config file is fine; defaults plus env apply.
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	_ = godotenv.Load() // .env is optional
	cfg.applyEnv()
	return cfg, nil
}

// merge parses data over the current values. ext is the file extension for
// format hint (".yaml"/".yml" or ".json"); empty = detect from content.
func (c *Config) merge(data []byte, ext string) error {
	ext = strings.ToLower(ext)
	if ext == ".yml" {
		ext = ".yaml"
	}
	if ext != ".yaml" && ext != ".json" {
		// Detect: JSON starts with {, else YAML.
		if strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
			ext = ".json"
		} else {
			ext = ".yaml"
		}
	}
	if ext == ".json" {
		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse config json: %w", err)
		}
		return nil
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config yaml: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DEEPSCAN_ENDPOINT"); v != "" {
		c.Endpoint = v
	}
	if v := os.Getenv("DEEPSCAN_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("DEEPSCAN_MAX_FILE_SIZE_MB"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			c.MaxFileSizeMB = n
		}
	}
	if v := os.Getenv("DEEPSCAN_SUPPORTED_FORMATS"); v != "" {
		var formats []string
		for _, f := range strings.Split(v, ",") {
			if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
				formats = append(formats, strings.TrimPrefix(f, "."))
			}
		}
		if len(formats) > 0 {
			c.SupportedFormats = formats
		}
	}
	if v := os.Getenv("DEEPSCAN_HIGH_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			c.HighThreshold = f
		}
	}
	if v := os.Getenv("DEEPSCAN_MEDIUM_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			c.MediumThreshold = f
		}
	}
	if v := os.Getenv("DEEPSCAN_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("DEEPSCAN_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
}

// Timeout returns the HTTP call timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// MaxFileBytes returns the upload size cap in bytes.
func (c *Config) MaxFileBytes() int64 {
	return c.MaxFileSizeMB << 20
}

// Thresholds returns the alert-tier cut-offs.
func (c *Config) Thresholds() classify.Thresholds {
	return classify.Thresholds{High: c.HighThreshold, Medium: c.MediumThreshold}
}
