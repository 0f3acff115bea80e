package main

import (
	"fmt"
	"os"

	"deepscan/internal/config"
	"deepscan/internal/store"
)

// loadConfig resolves the effective config from the --config flag,
// the default config file, .env, and DEEPSCAN_* environment variables.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Resolve(rootFlags.configPath)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveEndpoint returns the endpoint from the given flag value, falling
// back to the config. Errors with setup guidance when neither is set.
func resolveEndpoint(cfg *config.Config, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if cfg.Endpoint != "" {
		return cfg.Endpoint, nil
	}
	return "", fmt.Errorf("detection service endpoint is not configured\n\n" +
		"Set it via environment variable:\n" +
		"  export DEEPSCAN_ENDPOINT=https://your-detection-service.example.com\n\n" +
		"Or in .deepscan/config.yaml:\n" +
		"  endpoint: https://your-detection-service.example.com\n\n" +
		"Or use the --endpoint flag.")
}

// openStore opens the history DB at path, falling back to the config value.
func openStore(cfg *config.Config, flagValue string) (*store.SqlStore, error) {
	path := flagValue
	if path == "" {
		path = cfg.DBPath
	}
	if path == "" {
		path = store.DefaultDBPath
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open history store: %w", err)
	}
	return st, nil
}

// fileExists reports whether path names an existing regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
