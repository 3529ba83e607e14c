package config

import "time"

// Config represents the interview configuration
type Config struct {
	Interview InterviewConfig `yaml:"interview"`
	Seniority SeniorityConfig `yaml:"seniority"`
	Retry     RetryConfig     `yaml:"retry"`
}

// InterviewConfig contains the general interview limits
type InterviewConfig struct {
	MaxExchanges   int `yaml:"max_exchanges"`
	FollowupBudget int `yaml:"followup_budget"`
	HistoryWindow  int `yaml:"history_window"`
}

// SeniorityConfig contains the experience thresholds for the seniority tiers.
// A candidate with fewer years than junior_max_years is junior, and so on;
// anyone at or above senior_max_years is expert.
type SeniorityConfig struct {
	JuniorMaxYears float64 `yaml:"junior_max_years"`
	MidMaxYears    float64 `yaml:"mid_max_years"`
	SeniorMaxYears float64 `yaml:"senior_max_years"`
}

// RetryConfig contains the retry policy for calls to the AI service
type RetryConfig struct {
	MaxAttempts    int `yaml:"max_attempts"`
	BackoffSeconds int `yaml:"backoff_seconds"`
}

// Default returns the built-in configuration used when no YAML file is present
func Default() *Config {
	return &Config{
		Interview: InterviewConfig{
			MaxExchanges:   6,
			FollowupBudget: 1,
			HistoryWindow:  3,
		},
		Seniority: SeniorityConfig{
			JuniorMaxYears: 2,
			MidMaxYears:    5,
			SeniorMaxYears: 9,
		},
		Retry: RetryConfig{
			MaxAttempts:    3,
			BackoffSeconds: 2,
		},
	}
}

// Convenience accessors
func (c *Config) GetMaxExchanges() int {
	return c.Interview.MaxExchanges
}

func (c *Config) GetFollowupBudget() int {
	return c.Interview.FollowupBudget
}

func (c *Config) GetHistoryWindow() int {
	return c.Interview.HistoryWindow
}

func (c *Config) GetMaxAttempts() int {
	return c.Retry.MaxAttempts
}

func (c *Config) GetBackoff() time.Duration {
	return time.Duration(c.Retry.BackoffSeconds) * time.Second
}
