package api

import (
	"context"
	"errors"
)

// Message is one chat message sent to the AI service
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client abstracts the generative AI service so tests can substitute a
// scripted fake for the real API.
type Client interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// ErrEmptyResponse is returned when the service answers with no usable text
var ErrEmptyResponse = errors.New("empty response from AI service")
