package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_EnvOverridesYAML(t *testing.T) {
	// Create a temp directory with a config.yaml
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
port: "3443"
env: "test"
llm:
  provider: "anthropic"
  model: "claude-sonnet-4-5"
store:
  driver: "postgres"
database:
  host: "db.example.com"
  port: 5432
  user: "testuser"
  database: "testdb"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Change to temp directory so Load() finds config.yaml
	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() {
		os.Chdir(originalDir)
	})

	// Clear env vars that might interfere with test
	os.Unsetenv("PGHOST")
	os.Unsetenv("BASE_URL")
	os.Unsetenv("STORE_DRIVER")

	// Set env vars to override YAML values
	t.Setenv("PORT", "4443")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LLM_MODEL", "claude-opus-4")

	cfg, err := Load("test-version")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Verify env vars override YAML
	if cfg.Port != "4443" {
		t.Errorf("expected Port=4443 (from env), got %s", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Errorf("expected Env=production (from env), got %s", cfg.Env)
	}
	if cfg.LLM.Model != "claude-opus-4" {
		t.Errorf("expected LLM.Model=claude-opus-4 (from env), got %s", cfg.LLM.Model)
	}

	// Verify version was set
	if cfg.Version != "test-version" {
		t.Errorf("expected Version=test-version, got %s", cfg.Version)
	}

	// Verify BaseURL was auto-derived from PORT
	if cfg.BaseURL != "http://localhost:4443" {
		t.Errorf("expected BaseURL=http://localhost:4443 (auto-derived from PORT), got %s", cfg.BaseURL)
	}

	// Verify YAML values were read where no env override exists
	if cfg.Database.Host != "db.example.com" {
		t.Errorf("expected Database.Host=db.example.com (from yaml), got %s", cfg.Database.Host)
	}
	if cfg.LLM.Provider != "anthropic" {
		t.Errorf("expected LLM.Provider=anthropic (from yaml), got %s", cfg.LLM.Provider)
	}
	if cfg.Store.Driver != "postgres" {
		t.Errorf("expected Store.Driver=postgres (from yaml), got %s", cfg.Store.Driver)
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() {
		os.Chdir(originalDir)
	})

	os.Unsetenv("PORT")
	os.Unsetenv("STORE_DRIVER")
	os.Unsetenv("LLM_PROVIDER")

	cfg, err := Load("dev")
	if err != nil {
		t.Fatalf("Load() failed without config.yaml: %v", err)
	}

	if cfg.Port != "3443" {
		t.Errorf("expected default Port=3443, got %s", cfg.Port)
	}
	if cfg.Store.Driver != StoreDriverMemory {
		t.Errorf("expected default store driver %q, got %q", StoreDriverMemory, cfg.Store.Driver)
	}
	if cfg.LLM.Provider != "openai" {
		t.Errorf("expected default LLM provider openai, got %s", cfg.LLM.Provider)
	}
}

func TestLoad_RejectsUnknownStoreDriver(t *testing.T) {
	tmpDir := t.TempDir()

	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() {
		os.Chdir(originalDir)
	})

	t.Setenv("STORE_DRIVER", "redis")

	if _, err := Load("dev"); err == nil {
		t.Fatal("expected error for unknown store driver, got nil")
	}
}
