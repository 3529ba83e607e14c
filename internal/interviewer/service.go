package interviewer

import (
	"context"
	"errors"
	"strings"
	"time"

	"techhire-interview-bot/internal/api"
	"techhire-interview-bot/internal/config"
	"techhire-interview-bot/internal/metrics"
	"techhire-interview-bot/internal/storage"
)

// ErrGenerationFailed is returned only when not even a fallback question can
// be produced (the tech stack is empty)
var ErrGenerationFailed = errors.New("question generation failed")

// Tier is the coarse experience bucket driving the question style
type Tier string

const (
	TierJunior Tier = "junior"
	TierMid    Tier = "mid"
	TierSenior Tier = "senior"
	TierExpert Tier = "expert"
)

// TierFor maps years of experience onto a seniority tier. The mapping is a
// pure function of its inputs; boundary values resolve to the higher tier.
func TierFor(years float64, thresholds config.SeniorityConfig) Tier {
	switch {
	case years < thresholds.JuniorMaxYears:
		return TierJunior
	case years < thresholds.MidMaxYears:
		return TierMid
	case years < thresholds.SeniorMaxYears:
		return TierSenior
	default:
		return TierExpert
	}
}

// Service generates interview questions. It keeps no state between calls:
// every question is a function of the profile, the exchange history and the
// (non-deterministic) AI response.
type Service struct {
	client  api.Client
	cfg     *config.Config
	metrics *metrics.Metrics
}

// New creates a question generator service
func New(client api.Client, cfg *config.Config, m *metrics.Metrics) *Service {
	return &Service{
		client:  client,
		cfg:     cfg,
		metrics: m,
	}
}

// GenerateQuestion produces the next question and the topic it targets.
// When the AI service stays unreachable past the retry budget, a canned
// template keyed by seniority tier takes over so the interview never stalls.
func (s *Service) GenerateQuestion(ctx context.Context, profile *storage.CandidateProfile, exchanges []storage.QAExchange) (string, string, error) {
	topic := NextTopic(profile.TechStack, exchanges)
	if topic == "" {
		return "", "", ErrGenerationFailed
	}

	tier := TierFor(profile.YearsExperience, s.cfg.Seniority)
	prompt := s.buildQuestionPrompt(profile, exchanges, topic, tier)

	question, err := s.complete(ctx, prompt)
	if err != nil {
		s.metrics.IncrementFallbacksUsed()
		return fallbackQuestion(tier, topic), topic, nil
	}

	return question, topic, nil
}

// GenerateFollowUp produces a deeper question on a topic already probed
func (s *Service) GenerateFollowUp(ctx context.Context, profile *storage.CandidateProfile, exchanges []storage.QAExchange, topic string) (string, error) {
	if topic == "" {
		return "", ErrGenerationFailed
	}

	tier := TierFor(profile.YearsExperience, s.cfg.Seniority)
	prompt := s.buildFollowUpPrompt(profile, exchanges, topic, tier)

	question, err := s.complete(ctx, prompt)
	if err != nil {
		s.metrics.IncrementFallbacksUsed()
		return fallbackFollowUp(tier, topic), nil
	}

	return question, nil
}

// NextTopic selects the tech stack entry to probe next: the first entry not
// yet covered, or round-robin over the stack once everything has been touched
func NextTopic(techStack []string, exchanges []storage.QAExchange) string {
	if len(techStack) == 0 {
		return ""
	}

	covered := make(map[string]bool, len(exchanges))
	for _, ex := range exchanges {
		covered[strings.ToLower(ex.Topic)] = true
	}

	for _, tech := range techStack {
		if !covered[strings.ToLower(tech)] {
			return tech
		}
	}

	return techStack[len(exchanges)%len(techStack)]
}

// complete calls the AI service with the configured retry budget and a fixed
// backoff between attempts
func (s *Service) complete(ctx context.Context, prompt string) (string, error) {
	messages := []api.Message{
		{Role: "system", Content: prompt},
	}

	var lastErr error
	for attempt := 0; attempt < s.cfg.GetMaxAttempts(); attempt++ {
		if attempt > 0 {
			time.Sleep(s.cfg.GetBackoff())
		}

		response, err := s.client.Complete(ctx, messages)
		s.metrics.IncrementAPICall(err == nil)
		if err != nil {
			lastErr = err
			continue
		}

		return strings.TrimSpace(response), nil
	}

	return "", lastErr
}
