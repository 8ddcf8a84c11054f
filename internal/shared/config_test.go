package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.API.BaseURL == "" {
			t.Error("expected default base URL to be set")
		}
		if config.API.TimeoutSeconds <= 0 {
			t.Error("expected default timeout to be positive")
		}
		if config.Database.Path == "" {
			t.Error("expected default database path to be set")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		t.Run("Valid File", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			content := `
[api]
base_url = "https://insure.example.com"
timeout_seconds = 10
requests_per_second = 2.5

[database]
path = "test.db"
max_open_conns = 3
max_idle_conns = 1
`
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatalf("failed to write config file: %v", err)
			}

			config, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("failed to load config: %v", err)
			}

			if config.API.BaseURL != "https://insure.example.com" {
				t.Errorf("expected base URL 'https://insure.example.com', got %s", config.API.BaseURL)
			}
			if config.API.TimeoutSeconds != 10 {
				t.Errorf("expected timeout 10, got %d", config.API.TimeoutSeconds)
			}
			if config.API.RequestsPerSecond != 2.5 {
				t.Errorf("expected rate 2.5, got %f", config.API.RequestsPerSecond)
			}
			if config.Database.Path != "test.db" {
				t.Errorf("expected database path 'test.db', got %s", config.Database.Path)
			}
		})

		t.Run("Missing File", func(t *testing.T) {
			_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
			if err == nil {
				t.Error("expected error for missing config file")
			}
		})

		t.Run("Invalid TOML", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte("not [valid toml"), 0644); err != nil {
				t.Fatalf("failed to write config file: %v", err)
			}

			_, err := LoadConfig(path)
			if err == nil {
				t.Error("expected error for invalid TOML")
			}
		})
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		t.Run("Creates From Template", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")

			if err := CreateConfigFile(path); err != nil {
				t.Fatalf("failed to create config file: %v", err)
			}

			config, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("failed to load created config: %v", err)
			}
			if config.API.BaseURL == "" {
				t.Error("expected created config to have base URL")
			}
		})

		t.Run("Refuses To Overwrite", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte("existing"), 0644); err != nil {
				t.Fatalf("failed to write config file: %v", err)
			}

			if err := CreateConfigFile(path); err == nil {
				t.Error("expected error when config file already exists")
			}
		})
	})
}
