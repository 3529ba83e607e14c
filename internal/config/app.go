package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// AppConfig holds the process-level configuration read from the environment.
// All values are fixed at startup and never change mid-session.
type AppConfig struct {
	OpenAI              OpenAIConfig
	ResultsDir          string
	InterviewConfigPath string
}

// OpenAIConfig holds the settings for the OpenAI API client
type OpenAIConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// LoadAppConfig loads the application configuration from environment variables
func LoadAppConfig() *AppConfig {
	return &AppConfig{
		OpenAI: OpenAIConfig{
			APIKey:      os.Getenv("OPENAI_API_KEY"),
			Model:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			MaxTokens:   getEnvAsInt("OPENAI_MAX_TOKENS", 800),
			Temperature: getEnvAsFloat("OPENAI_TEMPERATURE", 0.7),
			Timeout:     getEnvAsDuration("OPENAI_TIMEOUT", 60*time.Second),
		},
		ResultsDir:          getEnv("RESULTS_DIR", "candidate_responses"),
		InterviewConfigPath: getEnv("INTERVIEW_CONFIG", "config/interview.yaml"),
	}
}

// Validate checks that the configuration is usable. The API key itself is
// never printed or persisted anywhere.
func (c *AppConfig) Validate() error {
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}

	if c.OpenAI.MaxTokens <= 0 {
		return fmt.Errorf("OPENAI_MAX_TOKENS must be positive")
	}

	if c.OpenAI.Temperature < 0 || c.OpenAI.Temperature > 2 {
		return fmt.Errorf("OPENAI_TEMPERATURE must be between 0 and 2")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
