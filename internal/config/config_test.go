package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"NFCTERM_API_URL", "NFCTERM_TIMEOUT", "NFCTERM_RETRY_COUNT",
		"NFCTERM_EXPORT_DIR", "NFCTERM_LOG", "NFCTERM_DEBUG",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("expected default api_url %q, got %q", DefaultAPIURL, cfg.APIURL)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("expected default timeout %v, got %v", DefaultTimeout, cfg.Timeout)
	}
	if cfg.RetryCount != DefaultRetryCount {
		t.Errorf("expected default retry_count %d, got %d", DefaultRetryCount, cfg.RetryCount)
	}
	if cfg.ExportDir == "" {
		t.Error("expected a default export_dir")
	}
}

func TestLoadFrom_ReadsFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
api_url = "http://store.local:9000"
timeout = "10s"
retry_count = 5
export_dir = "/tmp/exports"
debug = true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.APIURL != "http://store.local:9000" {
		t.Errorf("unexpected api_url: %q", cfg.APIURL)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("expected timeout 10s, got %v", cfg.Timeout)
	}
	if cfg.RetryCount != 5 {
		t.Errorf("expected retry_count 5, got %d", cfg.RetryCount)
	}
	if cfg.ExportDir != "/tmp/exports" {
		t.Errorf("unexpected export_dir: %q", cfg.ExportDir)
	}
	if !cfg.Debug {
		t.Error("expected debug to be enabled")
	}
}

func TestLoadFrom_InvalidTimeout(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`timeout = "soon"`), 0644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("expected an error for an unparseable timeout")
	}
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_url = "http://from-file:9000"`), 0644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	t.Setenv("NFCTERM_API_URL", "http://from-env:9001")
	t.Setenv("NFCTERM_TIMEOUT", "5s")
	t.Setenv("NFCTERM_RETRY_COUNT", "7")
	t.Setenv("NFCTERM_DEBUG", "1")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.APIURL != "http://from-env:9001" {
		t.Errorf("expected env api_url to win, got %q", cfg.APIURL)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("expected timeout 5s, got %v", cfg.Timeout)
	}
	if cfg.RetryCount != 7 {
		t.Errorf("expected retry_count 7, got %d", cfg.RetryCount)
	}
	if !cfg.Debug {
		t.Error("expected debug to be enabled via env")
	}
}

func TestLoadFrom_ExpandsExportDir(t *testing.T) {
	clearEnv(t)
	t.Setenv("NFCTERM_EXPORT_DIR", "~/exports")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	home, _ := os.UserHomeDir()
	if cfg.ExportDir != filepath.Join(home, "exports") {
		t.Errorf("expected ~ to expand to home, got %q", cfg.ExportDir)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid",
			cfg:  Config{APIURL: "http://localhost:8001", Timeout: time.Second, RetryCount: 3, ExportDir: "/tmp"},
		},
		{
			name:    "empty api_url",
			cfg:     Config{Timeout: time.Second, RetryCount: 3, ExportDir: "/tmp"},
			wantErr: true,
		},
		{
			name:    "zero timeout",
			cfg:     Config{APIURL: "http://localhost:8001", RetryCount: 3, ExportDir: "/tmp"},
			wantErr: true,
		},
		{
			name:    "negative retry_count",
			cfg:     Config{APIURL: "http://localhost:8001", Timeout: time.Second, RetryCount: -1, ExportDir: "/tmp"},
			wantErr: true,
		},
		{
			name:    "empty export_dir",
			cfg:     Config{APIURL: "http://localhost:8001", Timeout: time.Second, RetryCount: 3},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected an error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
