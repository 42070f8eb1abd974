package config

import (
	"flag"
	"os"
	"testing"
)

// resetFlagSet создаёт новый FlagSet перед каждым вызовом NewConfig,
// чтобы избежать повторной регистрации одних и тех же флагов между тестами.
func resetFlagSet(t *testing.T) {
	t.Helper()
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	// подавляем вывод парсера флагов в тестах
	flag.CommandLine.SetOutput(os.Stderr)
}

func TestNewConfig_DefaultsWhenEnvEmpty(t *testing.T) {
	t.Setenv("DATABASE_URI", "")
	t.Setenv("AUTH_SECRET", "")
	t.Setenv("BASE_URL", "")
	t.Setenv("ENABLE_HTTPS", "")
	t.Setenv("TEMPLATE_KEY", "")
	t.Setenv("MATCH_THRESHOLD", "")

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.AuthSecret != "dev-secret-key" {
		t.Fatalf("AuthSecret default expected 'dev-secret-key', got %q", cfg.AuthSecret)
	}
	if cfg.BaseURL != "localhost:8081" {
		t.Fatalf("BaseURL default expected 'localhost:8081', got %q", cfg.BaseURL)
	}
	if cfg.ServerURL != "http://localhost:8081" {
		t.Fatalf("ServerURL default expected 'http://localhost:8081', got %q", cfg.ServerURL)
	}
	if cfg.MatchThreshold != 75 {
		t.Fatalf("MatchThreshold default expected 75, got %v", cfg.MatchThreshold)
	}
	key, err := cfg.TemplateKey()
	if err != nil {
		t.Fatalf("dev template key must decode: %v", err)
	}
	if len(key) != 32 {
		t.Fatalf("template key must be 32 bytes, got %d", len(key))
	}
}

func TestNewConfig_BaseURLAndHTTPS(t *testing.T) {
	t.Setenv("BASE_URL", "example.com:443")
	t.Setenv("ENABLE_HTTPS", "true")
	t.Setenv("AUTH_SECRET", "top")
	t.Setenv("TEMPLATE_KEY", "")
	t.Setenv("MATCH_THRESHOLD", "80")

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.ServerURL != "https://example.com:443" {
		t.Fatalf("ServerURL expected https://example.com:443, got %q", cfg.ServerURL)
	}
	if cfg.AuthSecret != "top" {
		t.Fatalf("AuthSecret expected 'top', got %q", cfg.AuthSecret)
	}
	if cfg.MatchThreshold != 80 {
		t.Fatalf("MatchThreshold expected 80, got %v", cfg.MatchThreshold)
	}
}

func TestNewConfig_InvalidBaseURLFallsBack(t *testing.T) {
	t.Setenv("BASE_URL", "http://with-scheme:8080/path")
	t.Setenv("ENABLE_HTTPS", "")
	t.Setenv("TEMPLATE_KEY", "")
	t.Setenv("MATCH_THRESHOLD", "")

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.BaseURL != "localhost:8081" {
		t.Fatalf("invalid BASE_URL must fall back, got %q", cfg.BaseURL)
	}
}

func TestNewConfig_ThresholdOutOfRangeFallsBack(t *testing.T) {
	for _, v := range []string{"-5", "0", "150"} {
		t.Setenv("MATCH_THRESHOLD", v)
		t.Setenv("BASE_URL", "")
		t.Setenv("TEMPLATE_KEY", "")

		resetFlagSet(t)
		cfg := NewConfig()
		if cfg.MatchThreshold != 75 {
			t.Fatalf("MATCH_THRESHOLD=%s must fall back to 75, got %v", v, cfg.MatchThreshold)
		}
	}
}

func TestConfig_TemplateKeyValidation(t *testing.T) {
	cfg := &Config{TemplateKeyHex: "not-hex"}
	if _, err := cfg.TemplateKey(); err == nil {
		t.Fatalf("non-hex key must fail")
	}

	cfg = &Config{TemplateKeyHex: "aabb"}
	if _, err := cfg.TemplateKey(); err == nil {
		t.Fatalf("short key must fail")
	}
}
