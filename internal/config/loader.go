package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load loads the interview configuration from a YAML file. A missing file is
// not an error: the built-in defaults are used instead.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("error reading file %s: %w", filename, err)
	}

	config := Default()
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("error parsing YAML: %w", err)
	}

	// Validate the configuration
	err = validateConfig(config)
	if err != nil {
		return nil, fmt.Errorf("error validating configuration: %w", err)
	}

	return config, nil
}

// validateConfig checks the configuration for consistency
func validateConfig(config *Config) error {
	if config.Interview.MaxExchanges <= 0 {
		return fmt.Errorf("max_exchanges must be greater than 0")
	}

	if config.Interview.FollowupBudget < 0 {
		return fmt.Errorf("followup_budget cannot be negative")
	}

	if config.Interview.HistoryWindow <= 0 {
		return fmt.Errorf("history_window must be greater than 0")
	}

	if config.Seniority.JuniorMaxYears <= 0 {
		return fmt.Errorf("junior_max_years must be greater than 0")
	}

	if config.Seniority.MidMaxYears <= config.Seniority.JuniorMaxYears {
		return fmt.Errorf("mid_max_years (%v) must be greater than junior_max_years (%v)",
			config.Seniority.MidMaxYears, config.Seniority.JuniorMaxYears)
	}

	if config.Seniority.SeniorMaxYears <= config.Seniority.MidMaxYears {
		return fmt.Errorf("senior_max_years (%v) must be greater than mid_max_years (%v)",
			config.Seniority.SeniorMaxYears, config.Seniority.MidMaxYears)
	}

	if config.Retry.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be at least 1")
	}

	if config.Retry.BackoffSeconds < 0 {
		return fmt.Errorf("backoff_seconds cannot be negative")
	}

	return nil
}
