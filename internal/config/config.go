package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is resolved from defaults, then an optional YAML file, then
// environment variables; the environment wins.
type Config struct {
	APIBaseURL         string        `yaml:"api_base_url"`
	RequestTimeout     time.Duration `yaml:"request_timeout"`
	TaxRate            float64       `yaml:"tax_rate"`
	AddressLimit       int           `yaml:"address_limit"`
	PaymentMethodLimit int           `yaml:"payment_method_limit"`
	SessionDir         string        `yaml:"session_dir"`
	RedisAddr          string        `yaml:"redis_addr"`
	SessionID          string        `yaml:"session_id"`
}

func defaults() Config {
	return Config{
		APIBaseURL:         "http://localhost:3000",
		RequestTimeout:     30 * time.Second,
		TaxRate:            0.08, // deployment-dependent, 0.13 regions override this
		AddressLimit:       3,
		PaymentMethodLimit: 3,
		SessionDir:         defaultSessionDir(),
		SessionID:          "default",
	}
}

func defaultSessionDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return dir + "/go_shop/session"
	}
	return os.TempDir() + "/go_shop-session"
}

// Load builds the config. path may be empty to skip the YAML overlay.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.APIBaseURL = getEnv("GO_SHOP_API_URL", cfg.APIBaseURL)
	cfg.SessionDir = getEnv("GO_SHOP_SESSION_DIR", cfg.SessionDir)
	cfg.RedisAddr = getEnv("GO_SHOP_REDIS_ADDR", cfg.RedisAddr)
	cfg.SessionID = getEnv("GO_SHOP_SESSION_ID", cfg.SessionID)
	if v := os.Getenv("GO_SHOP_TAX_RATE"); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("parse GO_SHOP_TAX_RATE: %w", err)
		}
		cfg.TaxRate = rate
	}
	if v := os.Getenv("GO_SHOP_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse GO_SHOP_REQUEST_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}

	if cfg.TaxRate < 0 || cfg.TaxRate >= 1 {
		return Config{}, fmt.Errorf("tax rate %v out of range", cfg.TaxRate)
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
