package analyzer

import (
	"context"
	"fmt"
	"strings"

	"techhire-interview-bot/internal/api"
	"techhire-interview-bot/internal/storage"
)

// SentimentClient labels the tone of an answer. Implementations may fail;
// the analyzer treats that as a missing label, never as a fatal error.
type SentimentClient interface {
	Classify(ctx context.Context, text string) (storage.Sentiment, error)
}

// AISentiment classifies tone through the generative AI service
type AISentiment struct {
	client api.Client
}

// NewAISentiment creates a sentiment collaborator on top of the AI client
func NewAISentiment(client api.Client) *AISentiment {
	return &AISentiment{client: client}
}

// Classify returns one of the three fixed sentiment labels
func (a *AISentiment) Classify(ctx context.Context, text string) (storage.Sentiment, error) {
	// Very short answers carry no usable tone
	if len(strings.Fields(text)) < 2 {
		return storage.SentimentNeutral, nil
	}

	var prompt strings.Builder
	prompt.WriteString("Analyze the emotional tone of this technical interview answer:\n\n")
	prompt.WriteString(fmt.Sprintf("ANSWER: %s\n\n", text))
	prompt.WriteString("Respond with exactly one word: POSITIVE, NEUTRAL or NEGATIVE.")

	response, err := a.client.Complete(ctx, []api.Message{
		{Role: "system", Content: prompt.String()},
	})
	if err != nil {
		return "", fmt.Errorf("error classifying sentiment: %w", err)
	}

	switch strings.ToUpper(strings.TrimSpace(response)) {
	case "POSITIVE":
		return storage.SentimentPositive, nil
	case "NEUTRAL":
		return storage.SentimentNeutral, nil
	case "NEGATIVE":
		return storage.SentimentNegative, nil
	default:
		return "", fmt.Errorf("unexpected sentiment label: %q", response)
	}
}
