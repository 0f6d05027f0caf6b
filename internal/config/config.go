// Package config provides configuration for the strategy engine.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"

	"github.com/hagglekit/strategy-engine/internal/policy"
)

// Config holds the strategy engine configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Database
	DatabaseURL string

	// Policy selection and thresholds
	PolicyType string
	PolicyFile string
	Policy     policy.Config

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables, then overlays the
// optional YAML policy file named by POLICY_FILE so rule thresholds can be
// changed as data without a rebuild.
func Load() (*Config, error) {
	defaults := policy.DefaultConfig()

	cfg := &Config{
		HTTPPort:    getEnvInt("HTTP_PORT", 8080),
		DatabaseURL: getEnv("DATABASE_URL", "file:strategy.db?cache=shared&mode=rwc"),
		PolicyType:  getEnv("POLICY_TYPE", "rule-based"),
		PolicyFile:  getEnv("POLICY_FILE", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Policy: policy.Config{
			SentimentAcceptRatio: getEnvFloat("SENTIMENT_ACCEPT_RATIO", defaults.SentimentAcceptRatio),
			LowballRatio:         getEnvFloat("LOWBALL_RATIO", defaults.LowballRatio),
			OfferThreshold:       getEnvInt("OFFER_THRESHOLD", defaults.OfferThreshold),
			StandardConcession:   getEnvFloat("STANDARD_CONCESSION", defaults.StandardConcession),
			FinalConcession:      getEnvFloat("FINAL_CONCESSION", defaults.FinalConcession),
			PriceStep:            getEnvFloat("PRICE_STEP", defaults.PriceStep),
		},
	}

	if cfg.PolicyFile != "" {
		if err := cfg.loadPolicyFile(cfg.PolicyFile); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// policyFile is the YAML shape of an external policy file.
type policyFile struct {
	PolicyType string         `yaml:"policy_type"`
	Policy     *policy.Config `yaml:"policy"`
}

func (c *Config) loadPolicyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read policy file: %w", err)
	}

	var f policyFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("failed to parse policy file: %w", err)
	}

	if f.PolicyType != "" {
		c.PolicyType = f.PolicyType
	}
	if f.Policy != nil {
		c.Policy = *f.Policy
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if floatVal, err := strconv.ParseFloat(val, 64); err == nil {
			return floatVal
		}
	}
	return defaultVal
}
