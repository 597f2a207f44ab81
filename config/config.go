package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the application configuration
type Config struct {
	APIBaseURL      string        // WQAM API server base URL
	Port            string        // Service port
	APITimeout      time.Duration // Outbound request timeout
	SessionCacheTTL time.Duration // Resolved-identity cache TTL
	SecureCookies   bool          // Secure attribute on session cookies
	LoginRate       float64       // Login attempts per second per IP
	LoginBurst      int           // Login attempt burst per IP
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	config := &Config{
		APIBaseURL:      getEnv("WQAM_API_URL", "http://localhost:4000"),
		Port:            getEnv("PORT", "8080"),
		APITimeout:      15 * time.Second,
		SessionCacheTTL: 30 * time.Second,
		SecureCookies:   true,
		LoginRate:       1,
		LoginBurst:      5,
	}

	if v := os.Getenv("API_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid API_TIMEOUT format: %w", err)
		}
		config.APITimeout = d
	}

	if v := os.Getenv("SESSION_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_CACHE_TTL format: %w", err)
		}
		config.SessionCacheTTL = d
	}

	if v := os.Getenv("SECURE_COOKIES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SECURE_COOKIES format: %w", err)
		}
		config.SecureCookies = b
	}

	if v := os.Getenv("LOGIN_RATE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid LOGIN_RATE format: %w", err)
		}
		config.LoginRate = f
	}

	if v := os.Getenv("LOGIN_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid LOGIN_BURST format: %w", err)
		}
		config.LoginBurst = n
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("WQAM_API_URL cannot be empty")
	}

	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}

	if c.APITimeout <= 0 {
		return fmt.Errorf("API_TIMEOUT must be positive")
	}

	if c.SessionCacheTTL <= 0 {
		return fmt.Errorf("SESSION_CACHE_TTL must be positive")
	}

	if c.LoginRate <= 0 || c.LoginBurst <= 0 {
		return fmt.Errorf("LOGIN_RATE and LOGIN_BURST must be positive")
	}

	return nil
}

// getEnv retrieves an environment variable or returns a fallback value
func getEnv(key, fallback string) string {
	// Check for _FILE suffix
	if fileValue := os.Getenv(key + "_FILE"); fileValue != "" {
		content, err := os.ReadFile(fileValue)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
