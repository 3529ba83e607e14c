package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func sampleSession() *Session {
	s := NewSession()
	s.Profile = CandidateProfile{
		Name:            "Jane Doe",
		Email:           "jane@example.com",
		YearsExperience: 6,
		DesiredRole:     "Backend Developer",
		TechStack:       []string{"Go", "Postgres"},
	}
	s.AppendExchange(QAExchange{
		Topic:    "Go",
		Question: "How does the scheduler work?",
		Answer:   "Goroutines are multiplexed onto OS threads...",
		Analysis: AnalysisResult{
			CoveredTopic: "Go",
			DepthSignal:  DepthDeep,
			Sentiment:    SentimentPositive,
		},
		CreatedAt: time.Now().UTC(),
	})
	s.AppendExchange(QAExchange{
		Topic:    "Postgres",
		Question: "When would you add an index?",
		Answer:   "idk",
		Analysis: AnalysisResult{
			CoveredTopic: "Postgres",
			DepthSignal:  DepthSurface,
		},
		CreatedAt: time.Now().UTC(),
	})
	return s
}

func TestCoveredTopicsDerivedFromExchanges(t *testing.T) {
	s := sampleSession()

	got := s.CoveredTopics()
	want := []string{"Go", "Postgres"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CoveredTopics() = %v, want %v", got, want)
	}

	// A repeated topic (case-variant) must not create a duplicate entry
	s.AppendExchange(QAExchange{
		Topic:     "go",
		Question:  "Follow-up on channels?",
		Answer:    "Buffered vs unbuffered...",
		Analysis:  AnalysisResult{CoveredTopic: "go", DepthSignal: DepthAdequate},
		CreatedAt: time.Now().UTC(),
	})

	got = s.CoveredTopics()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CoveredTopics() after duplicate topic = %v, want %v", got, want)
	}
}

func TestTopicDepthKeepsBestSignal(t *testing.T) {
	s := sampleSession()

	if got := s.TopicDepth("Postgres"); got != DepthSurface {
		t.Errorf("TopicDepth(Postgres) = %q, want %q", got, DepthSurface)
	}

	s.AppendExchange(QAExchange{
		Topic:    "postgres",
		Question: "Deeper on indexes?",
		Answer:   "B-tree vs GIN...",
		Analysis: AnalysisResult{CoveredTopic: "postgres", DepthSignal: DepthAdequate},
	})

	if got := s.TopicDepth("Postgres"); got != DepthAdequate {
		t.Errorf("TopicDepth(Postgres) after follow-up = %q, want %q", got, DepthAdequate)
	}

	if got := s.TopicDepth("Redis"); got != DepthSignal("") {
		t.Errorf("TopicDepth(unprobed topic) = %q, want empty", got)
	}
}

func TestSealIsIdempotent(t *testing.T) {
	s := sampleSession()
	s.Seal(true)
	first := *s.EndedAt

	s.Seal(true)
	if !s.EndedAt.Equal(first) {
		t.Errorf("second Seal() changed EndedAt from %v to %v", first, s.EndedAt)
	}
}

func TestSaveIsByteIdenticalForSealedSession(t *testing.T) {
	store := NewStore(t.TempDir())

	s := sampleSession()
	s.State = StateDone
	s.Seal(true)

	path, err := store.Save(s)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	firstBytes, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading transcript: %v", err)
	}

	if _, err := store.Save(s); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}
	secondBytes, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading transcript: %v", err)
	}

	if !bytes.Equal(firstBytes, secondBytes) {
		t.Error("re-saving a sealed session produced different bytes")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	s := sampleSession()
	s.State = StateDone
	s.Seal(true)

	if _, err := store.Save(s); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := store.Load(s.ID)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !reflect.DeepEqual(loaded.Profile, s.Profile) {
		t.Errorf("Profile = %+v, want %+v", loaded.Profile, s.Profile)
	}
	if loaded.State != s.State || loaded.Complete != s.Complete {
		t.Errorf("State/Complete = %v/%v, want %v/%v", loaded.State, loaded.Complete, s.State, s.Complete)
	}
	if len(loaded.Exchanges) != len(s.Exchanges) {
		t.Fatalf("Exchanges count = %d, want %d", len(loaded.Exchanges), len(s.Exchanges))
	}
	for i := range s.Exchanges {
		want, got := s.Exchanges[i], loaded.Exchanges[i]
		if got.Topic != want.Topic || got.Question != want.Question || got.Answer != want.Answer {
			t.Errorf("exchange %d = %+v, want %+v", i, got, want)
		}
		if !reflect.DeepEqual(got.Analysis, want.Analysis) {
			t.Errorf("exchange %d analysis = %+v, want %+v", i, got.Analysis, want.Analysis)
		}
		if !got.CreatedAt.Equal(want.CreatedAt) {
			t.Errorf("exchange %d timestamp = %v, want %v", i, got.CreatedAt, want.CreatedAt)
		}
	}
	if !loaded.StartedAt.Equal(s.StartedAt) {
		t.Errorf("StartedAt = %v, want %v", loaded.StartedAt, s.StartedAt)
	}
}

func TestSentimentOmittedWhenAbsent(t *testing.T) {
	store := NewStore(t.TempDir())

	s := sampleSession()
	s.State = StateDone
	s.Seal(true)

	path, err := store.Save(s)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading transcript: %v", err)
	}

	// The second exchange has no sentiment label; its analysis object must
	// not carry an empty sentiment field
	if strings.Count(string(data), `"sentiment"`) != 1 {
		t.Errorf("transcript should contain exactly one sentiment field:\n%s", data)
	}
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	ids, err := store.List()
	if err != nil {
		t.Fatalf("List() on empty store error = %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("List() on empty store = %v, want empty", ids)
	}

	s := sampleSession()
	s.Seal(true)
	if _, err := store.Save(s); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// An unrelated file must not be listed
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("writing unrelated file: %v", err)
	}

	ids, err = store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(ids) != 1 || ids[0] != s.ID {
		t.Errorf("List() = %v, want [%s]", ids, s.ID)
	}
}
