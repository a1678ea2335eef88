package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu                 sync.RWMutex
	SessionsStarted    int64
	ReportsRendered    int64
	TextAnswersScored  int64
	ExcelAnswersScored int64
	DuplicatesIgnored  int64
	UploadsRejected    int64
	ScoringFailures    int64
	APICallsTotal      int64
	APICallsSuccessful int64
	LastUpdateTime     time.Time
}

func NewMetrics() *Metrics {
	return &Metrics{
		LastUpdateTime: time.Now(),
	}
}

func (m *Metrics) IncrementSessionsStarted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SessionsStarted++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementReportsRendered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReportsRendered++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementTextAnswersScored() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TextAnswersScored++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementExcelAnswersScored() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ExcelAnswersScored++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementDuplicatesIgnored() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesIgnored++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementUploadsRejected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UploadsRejected++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementScoringFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ScoringFailures++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementAPICall(success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.APICallsTotal++
	if success {
		m.APICallsSuccessful++
	}
	m.LastUpdateTime = time.Now()
}

// Snapshot копия счетчиков без мьютекса
type Snapshot struct {
	SessionsStarted    int64
	ReportsRendered    int64
	TextAnswersScored  int64
	ExcelAnswersScored int64
	DuplicatesIgnored  int64
	UploadsRejected    int64
	ScoringFailures    int64
	APICallsTotal      int64
	APICallsSuccessful int64
	LastUpdateTime     time.Time
}

func (m *Metrics) GetSnapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{
		SessionsStarted:    m.SessionsStarted,
		ReportsRendered:    m.ReportsRendered,
		TextAnswersScored:  m.TextAnswersScored,
		ExcelAnswersScored: m.ExcelAnswersScored,
		DuplicatesIgnored:  m.DuplicatesIgnored,
		UploadsRejected:    m.UploadsRejected,
		ScoringFailures:    m.ScoringFailures,
		APICallsTotal:      m.APICallsTotal,
		APICallsSuccessful: m.APICallsSuccessful,
		LastUpdateTime:     m.LastUpdateTime,
	}
}
