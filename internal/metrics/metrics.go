package metrics

import (
	"sync"
	"time"
)

// Metrics counts what happened during the process lifetime
type Metrics struct {
	mu                 sync.RWMutex
	sessionsStarted    int64
	sessionsCompleted  int64
	sessionsAborted    int64
	questionsAsked     int64
	followUpsAsked     int64
	fallbacksUsed      int64
	apiCallsTotal      int64
	apiCallsSuccessful int64
	lastUpdateTime     time.Time
}

// Snapshot is a copyable view of the counters
type Snapshot struct {
	SessionsStarted    int64
	SessionsCompleted  int64
	SessionsAborted    int64
	QuestionsAsked     int64
	FollowUpsAsked     int64
	FallbacksUsed      int64
	APICallsTotal      int64
	APICallsSuccessful int64
	LastUpdateTime     time.Time
}

func NewMetrics() *Metrics {
	return &Metrics{
		lastUpdateTime: time.Now(),
	}
}

func (m *Metrics) IncrementSessionsStarted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessionsStarted++
	m.lastUpdateTime = time.Now()
}

func (m *Metrics) IncrementSessionsCompleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessionsCompleted++
	m.lastUpdateTime = time.Now()
}

func (m *Metrics) IncrementSessionsAborted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessionsAborted++
	m.lastUpdateTime = time.Now()
}

func (m *Metrics) IncrementQuestionsAsked() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.questionsAsked++
	m.lastUpdateTime = time.Now()
}

func (m *Metrics) IncrementFollowUpsAsked() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.followUpsAsked++
	m.lastUpdateTime = time.Now()
}

func (m *Metrics) IncrementFallbacksUsed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallbacksUsed++
	m.lastUpdateTime = time.Now()
}

func (m *Metrics) IncrementAPICall(success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apiCallsTotal++
	if success {
		m.apiCallsSuccessful++
	}
	m.lastUpdateTime = time.Now()
}

func (m *Metrics) GetSnapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{
		SessionsStarted:    m.sessionsStarted,
		SessionsCompleted:  m.sessionsCompleted,
		SessionsAborted:    m.sessionsAborted,
		QuestionsAsked:     m.questionsAsked,
		FollowUpsAsked:     m.followUpsAsked,
		FallbacksUsed:      m.fallbacksUsed,
		APICallsTotal:      m.apiCallsTotal,
		APICallsSuccessful: m.apiCallsSuccessful,
		LastUpdateTime:     m.lastUpdateTime,
	}
}
