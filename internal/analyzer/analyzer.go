package analyzer

import (
	"context"
	"fmt"
	"log"
	"strings"

	"techhire-interview-bot/internal/api"
	"techhire-interview-bot/internal/storage"
)

// hedging phrases that mark an answer as surface-level regardless of length
var hedgePhrases = []string{
	"idk",
	"i don't know",
	"i dont know",
	"dunno",
	"no idea",
	"not sure",
	"i guess",
	"maybe",
}

// Service classifies answers. The depth signal is asked from the AI service
// first; a deterministic text heuristic takes over whenever the service fails
// or answers outside the expected vocabulary, so analysis itself never fails.
type Service struct {
	client    api.Client
	sentiment SentimentClient
}

// New creates an analyzer. The sentiment collaborator is optional; pass nil
// to skip tone labeling entirely.
func New(client api.Client, sentiment SentimentClient) *Service {
	return &Service{
		client:    client,
		sentiment: sentiment,
	}
}

// Analyze classifies one answer. It returns a result object and leaves all
// session bookkeeping to the caller.
func (s *Service) Analyze(ctx context.Context, question, answer, topic string) storage.AnalysisResult {
	result := storage.AnalysisResult{
		CoveredTopic: topic,
		DepthSignal:  s.classifyDepth(ctx, question, answer),
	}

	// Sentiment is an optional extra: if the collaborator fails, the label
	// is simply absent rather than failing the whole analysis.
	if s.sentiment != nil {
		sentiment, err := s.sentiment.Classify(ctx, answer)
		if err != nil {
			log.Printf("sentiment analysis unavailable: %v", err)
		} else {
			result.Sentiment = sentiment
		}
	}

	return result
}

// classifyDepth asks the AI service for a depth label and falls back to the
// heuristic when the response is unusable
func (s *Service) classifyDepth(ctx context.Context, question, answer string) storage.DepthSignal {
	if s.client != nil {
		response, err := s.client.Complete(ctx, []api.Message{
			{Role: "system", Content: buildDepthPrompt(question, answer)},
		})
		if err == nil {
			if depth, ok := parseDepth(response); ok {
				return depth
			}
			log.Printf("unparseable depth classification %q, using heuristic", response)
		}
	}

	return heuristicDepth(answer)
}

// buildDepthPrompt asks for exactly one word out of the fixed vocabulary
func buildDepthPrompt(question, answer string) string {
	var prompt strings.Builder

	prompt.WriteString("You are a technical interviewer rating the depth of a candidate's answer.\n\n")
	prompt.WriteString(fmt.Sprintf("QUESTION: %s\n", question))
	prompt.WriteString(fmt.Sprintf("ANSWER: %s\n\n", answer))
	prompt.WriteString("Rate the technical depth of the answer:\n")
	prompt.WriteString("- SURFACE: vague, evasive or trivially short, no real substance\n")
	prompt.WriteString("- ADEQUATE: correct and concrete but without notable depth\n")
	prompt.WriteString("- DEEP: detailed, covers trade-offs, edge cases or internals\n\n")
	prompt.WriteString("Respond with exactly one word: SURFACE, ADEQUATE or DEEP.")

	return prompt.String()
}

// parseDepth extracts a depth signal from the model response. The response
// must name exactly one of the three labels; anything else is rejected.
func parseDepth(response string) (storage.DepthSignal, bool) {
	upper := strings.ToUpper(strings.TrimSpace(response))

	labels := map[string]storage.DepthSignal{
		"SURFACE":  storage.DepthSurface,
		"ADEQUATE": storage.DepthAdequate,
		"DEEP":     storage.DepthDeep,
	}

	if depth, ok := labels[upper]; ok {
		return depth, true
	}

	// Tolerate short sentences around the label as long as only one label appears
	var found storage.DepthSignal
	count := 0
	for label, depth := range labels {
		if strings.Contains(upper, label) {
			found = depth
			count++
		}
	}
	if count == 1 {
		return found, true
	}

	return "", false
}

// heuristicDepth is the deterministic fallback classification: hedging or a
// handful of words reads as surface, a long concrete answer as deep.
func heuristicDepth(answer string) storage.DepthSignal {
	lower := strings.ToLower(strings.TrimSpace(answer))
	for _, hedge := range hedgePhrases {
		if strings.Contains(lower, hedge) {
			return storage.DepthSurface
		}
	}

	words := len(strings.Fields(lower))
	switch {
	case words < 8:
		return storage.DepthSurface
	case words >= 60:
		return storage.DepthDeep
	default:
		return storage.DepthAdequate
	}
}
