package storage

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// SessionState represents the state of the conversation state machine
type SessionState string

const (
	StateGreeting          SessionState = "greeting"
	StateCollectingProfile SessionState = "collecting_profile"
	StateAsking            SessionState = "asking"
	StateAwaitingAnswer    SessionState = "awaiting_answer"
	StateAnalyzing         SessionState = "analyzing"
	StateDeciding          SessionState = "deciding"
	StateSaving            SessionState = "saving"
	StateDone              SessionState = "done"
	StateAborted           SessionState = "aborted"
)

// DepthSignal classifies the technical depth of an answer
type DepthSignal string

const (
	DepthSurface  DepthSignal = "surface"
	DepthAdequate DepthSignal = "adequate"
	DepthDeep     DepthSignal = "deep"
)

// Sentiment is the optional tone label attached by the sentiment collaborator
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// CandidateProfile holds the data collected before the technical questions.
// It is created once and never modified afterwards.
type CandidateProfile struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	YearsExperience float64  `json:"years_experience"`
	DesiredRole     string   `json:"desired_role"`
	TechStack       []string `json:"tech_stack"`
}

// AnalysisResult is the outcome of analyzing one answer
type AnalysisResult struct {
	CoveredTopic string      `json:"covered_topic"`
	DepthSignal  DepthSignal `json:"depth_signal"`
	Sentiment    Sentiment   `json:"sentiment,omitempty"`
}

// QAExchange is one question, its answer and the attached analysis
type QAExchange struct {
	Topic     string         `json:"topic"`
	Question  string         `json:"question"`
	Answer    string         `json:"answer"`
	Analysis  AnalysisResult `json:"analysis"`
	CreatedAt time.Time      `json:"created_at"`
}

// Session represents one complete candidate interview, from greeting to save
type Session struct {
	ID        string       `json:"session_id"`
	Profile   CandidateProfile `json:"profile"`
	Exchanges []QAExchange `json:"exchanges"`
	State     SessionState `json:"state"`
	StartedAt time.Time    `json:"started_at"`
	EndedAt   *time.Time   `json:"ended_at,omitempty"`
	Complete  bool         `json:"complete"`
}

// NewSession creates a fresh session in the greeting state
func NewSession() *Session {
	return &Session{
		ID:        uuid.New().String(),
		State:     StateGreeting,
		StartedAt: time.Now().UTC(),
	}
}

// AppendExchange appends one exchange to the session log. Exchanges are
// append-only: nothing is ever reordered or removed.
func (s *Session) AppendExchange(ex QAExchange) {
	s.Exchanges = append(s.Exchanges, ex)
}

// CoveredTopics returns the set of topics probed so far, in first-occurrence
// order. The set is derived from the exchange log and never stored, so it
// cannot drift from it.
func (s *Session) CoveredTopics() []string {
	seen := make(map[string]bool, len(s.Exchanges))
	var topics []string
	for _, ex := range s.Exchanges {
		key := strings.ToLower(ex.Topic)
		if !seen[key] {
			seen[key] = true
			topics = append(topics, ex.Topic)
		}
	}
	return topics
}

// TopicDepth returns the best depth signal reached for a topic, or an empty
// signal when the topic has not been probed yet
func (s *Session) TopicDepth(topic string) DepthSignal {
	var best DepthSignal
	for _, ex := range s.Exchanges {
		if !strings.EqualFold(ex.Topic, topic) {
			continue
		}
		if depthRank(ex.Analysis.DepthSignal) > depthRank(best) {
			best = ex.Analysis.DepthSignal
		}
	}
	return best
}

// Seal marks the session as finished. Calling Seal twice keeps the original
// end timestamp so that re-saving a sealed session is byte-identical.
func (s *Session) Seal(complete bool) {
	if s.EndedAt == nil {
		now := time.Now().UTC()
		s.EndedAt = &now
	}
	s.Complete = complete
}

func depthRank(d DepthSignal) int {
	switch d {
	case DepthSurface:
		return 1
	case DepthAdequate:
		return 2
	case DepthDeep:
		return 3
	default:
		return 0
	}
}
