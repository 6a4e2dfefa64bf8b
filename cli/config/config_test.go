package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()

	if path == "" {
		t.Error("DefaultConfigPath() returned empty string")
	}

	// Should end with config.yaml
	if filepath.Base(path) != "config.yaml" {
		t.Errorf("DefaultConfigPath() = %q, should end with config.yaml", path)
	}

	// Should contain .lightblue directory
	dir := filepath.Dir(path)
	if filepath.Base(dir) != ".lightblue" {
		t.Errorf("DefaultConfigPath() = %q, should be in .lightblue directory", path)
	}
}

func TestDefaultConfigPathPlatform(t *testing.T) {
	path := DefaultConfigPath()

	if runtime.GOOS == "windows" {
		userProfile := os.Getenv("USERPROFILE")
		if userProfile != "" && !strings.HasPrefix(path, userProfile) {
			t.Logf("Note: path %q doesn't start with USERPROFILE %q", path, userProfile)
		}
	} else {
		home := os.Getenv("HOME")
		if home != "" && !strings.HasPrefix(path, home) {
			t.Logf("Note: path %q doesn't start with HOME %q", path, home)
		}
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.yaml")

	if err != nil {
		t.Errorf("LoadConfig() error = %v, want nil for missing file", err)
	}

	if cfg == nil {
		t.Fatal("LoadConfig() returned nil config")
	}

	if cfg.URL != "" {
		t.Errorf("URL = %q, want empty", cfg.URL)
	}
}

func TestLoadConfigValid(t *testing.T) {
	content := `
url: https://host.example/db/data
cert_file: /etc/pki/client.pem
insecure_skip_verify: true
timeout: 30s
`
	path := writeTempConfig(t, content)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.URL != "https://host.example/db/data" {
		t.Errorf("URL = %q", cfg.URL)
	}
	if cfg.CertFile != "/etc/pki/client.pem" {
		t.Errorf("CertFile = %q", cfg.CertFile)
	}
	if !cfg.InsecureSkipVerify {
		t.Error("InsecureSkipVerify = false, want true")
	}
	if time.Duration(cfg.Timeout) != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", time.Duration(cfg.Timeout))
	}
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	path := writeTempConfig(t, "url: [not closed")

	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() error = nil, want parse error")
	}
}

func TestLoadConfigBadDuration(t *testing.T) {
	path := writeTempConfig(t, "timeout: soon")

	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() error = nil, want duration parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"empty config", Config{}, false},
		{"valid url", Config{URL: "https://host.example/db/data"}, false},
		{"invalid url", Config{URL: "::not a url::"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}
