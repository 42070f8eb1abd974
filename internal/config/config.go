package config

import (
	"encoding/hex"
	"flag"
	"fmt"
	"regexp"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// devTemplateKey — ключ для локальной разработки (64 hex-символа = 32 байта).
// В бою обязан приходить из TEMPLATE_KEY.
const devTemplateKey = "6469616c6f6775652d6465762d6b65792d646f2d6e6f742d7573652d70726f64"

type Config struct {
	// Server-side settings
	DatabaseDSN string `env:"DATABASE_URI"`
	AuthSecret  string `env:"AUTH_SECRET"`

	// Shared settings
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`
	ServerURL   string `env:"-"`

	// Biometric settings
	TemplateKeyHex string  `env:"TEMPLATE_KEY"`
	MatchThreshold float64 `env:"MATCH_THRESHOLD"`
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags работают ТОЛЬКО если переменные из env не заданы
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT")
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "base URL of the BioAttend server (host:port)")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "enable HTTPS")
	flag.StringVar(&cfg.TemplateKeyHex, "template-key", cfg.TemplateKeyHex, "hex-ключ AES-256 для блобов шаблонов")
	flag.Float64Var(&cfg.MatchThreshold, "threshold", cfg.MatchThreshold, "порог совпадения отпечатка, проценты")

	flag.Parse()

	// Defaults
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = "dev-secret-key"
	}
	if cfg.TemplateKeyHex == "" {
		cfg.TemplateKeyHex = devTemplateKey
	}
	if cfg.MatchThreshold <= 0 || cfg.MatchThreshold > 100 {
		cfg.MatchThreshold = 75
	}

	// validate BaseURL: must be in "address:port" (no scheme, no path). Otherwise use default.
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = "localhost:8081"
	}

	if cfg.EnableHTTPS {
		cfg.ServerURL = "https://" + cfg.BaseURL
	} else {
		cfg.ServerURL = "http://" + cfg.BaseURL
	}

	return cfg
}

// TemplateKey декодирует hex-ключ шифрования шаблонов и проверяет длину.
func (c *Config) TemplateKey() ([]byte, error) {
	key, err := hex.DecodeString(c.TemplateKeyHex)
	if err != nil {
		return nil, fmt.Errorf("TEMPLATE_KEY is not valid hex: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("TEMPLATE_KEY must decode to 32 bytes, got %d", len(key))
	}
	return key, nil
}
