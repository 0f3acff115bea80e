package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.TimeoutSeconds != 60 {
		t.Errorf("TimeoutSeconds = %d, want 60", cfg.TimeoutSeconds)
	}
	if cfg.MaxFileSizeMB != 100 {
		t.Errorf("MaxFileSizeMB = %d, want 100", cfg.MaxFileSizeMB)
	}
	if cfg.HighThreshold != 70 || cfg.MediumThreshold != 40 {
		t.Errorf("thresholds = %v/%v, want 70/40", cfg.HighThreshold, cfg.MediumThreshold)
	}
	want := []string{"mp4", "avi", "mov", "mkv", "webm", "flv"}
	if diff := cmp.Diff(want, cfg.SupportedFormats); diff != "" {
		t.Errorf("formats mismatch (-want +got):\n%s", diff)
	}
	if cfg.Endpoint != "" {
		t.Errorf("default endpoint should be empty, got %q", cfg.Endpoint)
	}
}

func TestResolve_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := "endpoint: https://detector.example.com\ntimeout_seconds: 30\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Resolve(path)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Endpoint != "https://detector.example.com" {
		t.Errorf("Endpoint = %q", cfg.Endpoint)
	}
	if cfg.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %d, want 30", cfg.TimeoutSeconds)
	}
	// Untouched fields keep their defaults.
	if cfg.MaxFileSizeMB != 100 {
		t.Errorf("MaxFileSizeMB = %d, want default 100", cfg.MaxFileSizeMB)
	}
}

func TestResolve_JSONByContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config") // no extension, detect from content
	data := `{"endpoint": "https://json.example.com", "max_file_size_mb": 50}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Resolve(path)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Endpoint != "https://json.example.com" {
		t.Errorf("Endpoint = %q", cfg.Endpoint)
	}
	if cfg.MaxFileSizeMB != 50 {
		t.Errorf("MaxFileSizeMB = %d, want 50", cfg.MaxFileSizeMB)
	}
}

func TestResolve_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("endpoint: https://from-file.example.com\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DEEPSCAN_ENDPOINT", "https://from-env.example.com")
	t.Setenv("DEEPSCAN_TIMEOUT_SECONDS", "15")

	cfg, err := Resolve(path)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Endpoint != "https://from-env.example.com" {
		t.Errorf("env should win over file, got %q", cfg.Endpoint)
	}
	if cfg.TimeoutSeconds != 15 {
		t.Errorf("TimeoutSeconds = %d, want 15", cfg.TimeoutSeconds)
	}
}

func TestResolve_EnvCoversWholeConfig(t *testing.T) {
	t.Setenv("DEEPSCAN_HIGH_THRESHOLD", "85")
	t.Setenv("DEEPSCAN_MEDIUM_THRESHOLD", "55")
	t.Setenv("DEEPSCAN_SUPPORTED_FORMATS", "mp4, .MOV,webm")
	t.Setenv("DEEPSCAN_MAX_FILE_SIZE_MB", "25")
	t.Setenv("DEEPSCAN_DB", "/tmp/history.db")
	t.Setenv("DEEPSCAN_OUTPUT_DIR", "/tmp/out")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("endpoint: https://x.example.com\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Resolve(path)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.HighThreshold != 85 || cfg.MediumThreshold != 55 {
		t.Errorf("thresholds = %v/%v, want 85/55", cfg.HighThreshold, cfg.MediumThreshold)
	}
	// Entries are trimmed, lower-cased, and stripped of a leading dot.
	if diff := cmp.Diff([]string{"mp4", "mov", "webm"}, cfg.SupportedFormats); diff != "" {
		t.Errorf("formats mismatch (-want +got):\n%s", diff)
	}
	if cfg.MaxFileSizeMB != 25 || cfg.DBPath != "/tmp/history.db" || cfg.OutputDir != "/tmp/out" {
		t.Errorf("unexpected env overrides: %+v", cfg)
	}
}

func TestResolve_MissingExplicitFileFails(t *testing.T) {
	if _, err := Resolve(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestResolve_MissingDefaultFileIsFine(t *testing.T) {
	// Run from a dir with no .deepscan/config.yaml.
	wd, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(wd) })
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}

	cfg, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.TimeoutSeconds != 60 {
		t.Errorf("expected defaults, got timeout %d", cfg.TimeoutSeconds)
	}
}

func TestTimeoutAndMaxBytes(t *testing.T) {
	cfg := Default()
	if cfg.Timeout().Seconds() != 60 {
		t.Errorf("Timeout = %v", cfg.Timeout())
	}
	if cfg.MaxFileBytes() != 100<<20 {
		t.Errorf("MaxFileBytes = %d", cfg.MaxFileBytes())
	}
}
